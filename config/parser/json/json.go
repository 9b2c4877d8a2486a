// Package json parses JSON and JSON-with-comments documents for the config package.
//
// Comments and trailing commas are stripped with github.com/tidwall/jsonc,
// which keeps byte offsets intact; the result is valid YAML and goes through
// the YAML tree builder, so values keep their line numbers. JSON strings are
// quoted and therefore never hold substitutions.
package json

import (
	"github.com/0xalexb/hjarta-config/config"
	yamlparser "github.com/0xalexb/hjarta-config/config/parser/yaml"

	"github.com/tidwall/jsonc"
)

// Parser implements config.Parser for JSON and JSONC data.
type Parser struct {
	yaml *yamlparser.Parser
}

// NewParser creates a new JSON parser instance.
func NewParser() *Parser {
	return &Parser{yaml: yamlparser.NewParser()}
}

// Parse parses a JSON object into a config object.
func (p *Parser) Parse(data []byte, opts config.ParseOptions) (*config.Object, error) {
	return p.yaml.Parse(jsonc.ToJSON(data), opts)
}
