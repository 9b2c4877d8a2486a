// Package toml parses TOML documents for the config package using
// github.com/pelletier/go-toml/v2.
//
// TOML tables carry no stable member order once decoded, so keys are sorted.
// Dates and times become strings. Origins name the file but not the line.
package toml

import (
	"errors"
	"fmt"

	"github.com/0xalexb/hjarta-config/config"

	"github.com/pelletier/go-toml/v2"
)

// Parser implements config.Parser for TOML data.
type Parser struct{}

// NewParser creates a new TOML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a TOML document into a config object.
func (p *Parser) Parse(data []byte, opts config.ParseOptions) (*config.Object, error) {
	var doc map[string]any

	err := toml.Unmarshal(data, &doc)
	if err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, _ := decodeErr.Position()

			return nil, fmt.Errorf("%w: %s: %s", config.ErrParse, opts.Origin().WithLine(row).Description(), decodeErr.Error())
		}

		return nil, fmt.Errorf("%w: %w", config.ErrParse, err)
	}

	origin := opts.Origin().WithLine(0)

	if doc == nil {
		return config.EmptyObject(origin), nil
	}

	v, err := config.FromAny(origin, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrParse, err)
	}

	obj, ok := v.(*config.Object)
	if !ok {
		return nil, fmt.Errorf("%w: document did not decode to a table", config.ErrBugOrBroken)
	}

	return obj, nil
}
