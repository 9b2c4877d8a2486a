// Package yaml provides a YAML parser implementation for the config package.
//
// This package uses github.com/goccy/go-yaml and walks its AST, so every
// value of the resulting tree carries the file and line it was read from.
//
// Usage:
//
//	parser := yaml.NewParser()
//	root, err := parser.Parse(data, config.ParseOptions{Filename: "app.yaml"})
//
// Mapping rules:
//   - plain scalars may hold substitutions: ${a.b}, ${?a.b}, "http://${host}"
//   - quoted scalars and block literals are always literal strings
//   - `<<` merge keys become fallbacks of the mapping that holds them
//   - anchors and aliases are followed
//   - `!include name` is replaced by the object returned by the Includer
package yaml
