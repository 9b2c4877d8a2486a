package config

import (
	"fmt"
	"log/slog"

	"github.com/goccy/go-yaml"
)

// Parser builds a value tree from raw configuration data.
type Parser interface {
	Parse(data []byte, opts ParseOptions) (*Object, error)
}

// ParseOptions is passed to a Parser.
type ParseOptions struct {
	// Filename names the source in origins; empty for in-memory data.
	Filename string
	// OriginDescription overrides the origin text when no filename applies.
	OriginDescription string
	// Includer resolves include directives. Nil disables includes.
	Includer Includer
}

// Origin returns the origin for the document root.
func (o ParseOptions) Origin() *Origin {
	if o.Filename != "" {
		return NewFileOrigin(o.Filename, 1)
	}

	if o.OriginDescription != "" {
		return NewOrigin(o.OriginDescription)
	}

	return NewOrigin("unnamed source")
}

// Includer loads the object named by an include directive.
type Includer interface {
	Include(name string, from ParseOptions) (*Object, error)
}

// DataFetcher defines an interface for reading configuration data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Parse fetches data and parses it into an unresolved Config.
func Parse(parser Parser, fetcher DataFetcher, opts ParseOptions) (*Config, error) {
	data, err := fetcher.Fetch()
	if err != nil {
		return nil, fmt.Errorf("reading data error: %w", err)
	}

	root, err := parser.Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}

	return New(root), nil
}

// Provider returns a function that decodes the section at path of a
// resolved Config into target, sets defaults, and validates it.
// An empty path decodes the whole tree.
func Provider[T any](target *T, path string) func(*Config) (*T, error) {
	return func(cfg *Config) (*T, error) {
		err := Decode(cfg, path, target)
		if err != nil {
			return nil, fmt.Errorf("decoding error: %w", err)
		}

		targetDefaulter, isDefaulter := any(target).(Defaulter)
		if isDefaulter {
			changed := targetDefaulter.SetDefaults()
			if changed {
				slog.Info("defaults applied", slog.String("path", path))
			}
		}

		targetValidatable, isValidatable := any(target).(Validator)
		if isValidatable {
			err := targetValidatable.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating error: %w", err)
			}
		}

		return target, nil
	}
}

// Decode copies the section at path into target using yaml struct tags.
func Decode(cfg *Config, path string, target any) error {
	section := cfg.Root()

	if path != "" {
		obj, err := cfg.GetObject(path)
		if err != nil {
			return err
		}

		section = obj
	}

	data, err := yaml.Marshal(section.Unwrapped())
	if err != nil {
		return fmt.Errorf("encoding section %q: %w", path, err)
	}

	err = yaml.Unmarshal(data, target)
	if err != nil {
		return fmt.Errorf("decoding section %q: %w", path, err)
	}

	return nil
}
