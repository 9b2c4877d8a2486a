package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/0xalexb/hjarta-config/config"
)

// ErrIncludeCycle is returned when a file includes itself, directly or not.
var ErrIncludeCycle = errors.New("include cycle")

// FileIncluder resolves include directives against the filesystem.
// Relative names are taken from the directory of the including file, or
// from BaseDir for in-memory documents.
type FileIncluder struct {
	BaseDir string
	chain   []string
}

// NewFileIncluder creates an includer rooted at baseDir.
func NewFileIncluder(baseDir string) *FileIncluder {
	return &FileIncluder{BaseDir: baseDir}
}

// Include implements config.Includer.
func (i *FileIncluder) Include(name string, from config.ParseOptions) (*config.Object, error) {
	path := name

	if !filepath.IsAbs(path) {
		dir := i.BaseDir
		if from.Filename != "" {
			dir = filepath.Dir(from.Filename)
		}

		path = filepath.Join(dir, name)
	}

	path = filepath.Clean(path)

	if slices.Contains(i.chain, path) || path == filepath.Clean(from.Filename) {
		return nil, fmt.Errorf("%w: %q", ErrIncludeCycle, path)
	}

	nested := &FileIncluder{BaseDir: i.BaseDir, chain: append(slices.Clone(i.chain), path)}
	if from.Filename != "" {
		nested.chain = append(nested.chain, filepath.Clean(from.Filename))
	}

	cfg, err := LoadFile(path, nested)
	if err != nil {
		return nil, err
	}

	return cfg.Root(), nil
}
