// Package config provides an immutable configuration tree and typed queries over it.
//
// A Config wraps a root Object. Values are addressed with dotted paths and
// read through typed getters that tell apart three situations:
//   - the path is absent (ErrMissing)
//   - the path is present but null (ErrNull, or a *Null from GetValue)
//   - the tree still holds substitutions (ErrNotResolved); call Resolve first
//
// # Layering
//
// Configs are combined with WithFallback: settings of the receiver win, the
// fallback fills in what is missing or null. Environment variables become a
// layer through EnvVariablesAsConfig.
//
//	overrides.WithFallback(defaults)
//
// # Extension points
//
//   - Parser: builds a tree from raw data (see config/parser/yaml)
//   - DataFetcher: retrieves raw config data (see config/fetcher/file)
//   - Includer: loads included documents
//   - Transformer: converts values before the kind check of typed getters
//   - Validator and Defaulter: applied by Provider after decoding a section
//
// # Example
//
//	cfg, err := config.Parse(yamlparser.NewParser(), fetcher, config.ParseOptions{Filename: "app.yaml"})
//	if err != nil { ... }
//	cfg, err = cfg.Resolve()
//	port, err := cfg.GetInt("server.port")
package config
