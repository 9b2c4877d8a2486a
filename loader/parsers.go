package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/0xalexb/hjarta-config/config"
	jsonparser "github.com/0xalexb/hjarta-config/config/parser/json"
	tomlparser "github.com/0xalexb/hjarta-config/config/parser/toml"
	yamlparser "github.com/0xalexb/hjarta-config/config/parser/yaml"
)

// ErrUnknownFormat is returned for files whose extension has no parser.
var ErrUnknownFormat = errors.New("unknown configuration format")

// ParserFor picks a parser from the file extension.
//
//nolint:ireturn // callers only need the interface
func ParserFor(path string) (config.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlparser.NewParser(), nil
	case ".json", ".jsonc":
		return jsonparser.NewParser(), nil
	case ".toml":
		return tomlparser.NewParser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}
