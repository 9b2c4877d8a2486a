package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/0xalexb/hjarta-config/config"
)

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher implements config.DataFetcher for one configuration file.
// The file is read once at construction; its path names the origins of the parsed tree.
type Fetcher struct {
	filepath string
	data     []byte
}

// NewFetcher returns a constructor that reads the file at fpath.
// The constructor form lets an Fx container decide when the read happens.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanPath := filepath.Clean(fpath)

		stat, err := os.Stat(cleanPath)
		if err != nil {
			return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
		}

		if stat.IsDir() {
			return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
		}

		data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and validated
		if err != nil {
			return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
		}

		return &Fetcher{
			filepath: cleanPath,
			data:     data,
		}, nil
	}
}

// Fetch returns a copy of the cached file contents.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}

// Path returns the cleaned file path.
func (f *Fetcher) Path() string {
	return f.filepath
}

// ParseOptions returns parse options naming this file, with includer for include directives.
func (f *Fetcher) ParseOptions(includer config.Includer) config.ParseOptions {
	return config.ParseOptions{
		Filename: f.filepath,
		Includer: includer,
	}
}

// Load parses the cached contents with parser. The result is not resolved.
func (f *Fetcher) Load(parser config.Parser, includer config.Includer) (*config.Config, error) {
	cfg, err := config.Parse(parser, f, f.ParseOptions(includer))
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", f.filepath, err)
	}

	return cfg, nil
}
