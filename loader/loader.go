package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/0xalexb/hjarta-config/config"
	filefetcher "github.com/0xalexb/hjarta-config/config/fetcher/file"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrBadPattern is returned for a malformed glob pattern.
var ErrBadPattern = errors.New("bad glob pattern")

// DefaultWatchDebounce is how long Watch waits for file events to settle before reloading.
const DefaultWatchDebounce = 100 * time.Millisecond

// Layer is one configuration source: a file, or with Glob set a pattern
// whose matches are layered in lexical order.
type Layer struct {
	Path string
	Glob bool
}

// Options holds the layers and resolve settings of a Loader.
type Options struct {
	Layers          []Layer
	WatchDebounce   time.Duration
	Env             config.EnvSource
	EnvFallback     bool
	ResolveOptions  []config.ResolveOption
	SkipResolve     bool
	DisableIncludes bool
}

// Option defines a function type for applying loader options.
type Option func(*Options)

// WithFiles adds configuration files. Files added later override files added earlier.
func WithFiles(paths ...string) Option {
	return func(opts *Options) {
		for _, path := range paths {
			opts.Layers = append(opts.Layers, Layer{Path: path, Glob: false})
		}
	}
}

// WithGlob adds every file matching the patterns, in lexical order. Patterns
// support ** as in conf.d/**/*.yaml. A pattern matching nothing adds nothing.
func WithGlob(patterns ...string) Option {
	return func(opts *Options) {
		for _, pattern := range patterns {
			opts.Layers = append(opts.Layers, Layer{Path: pattern, Glob: true})
		}
	}
}

// WithWatchDebounce sets how long Watch waits for file events to settle.
func WithWatchDebounce(d time.Duration) Option {
	return func(opts *Options) {
		opts.WatchDebounce = d
	}
}

// WithEnv sets the environment consulted for substitutions missing from the files.
func WithEnv(env config.EnvSource) Option {
	return func(opts *Options) {
		opts.Env = env
	}
}

// WithEnvFallback also places every environment variable as the lowest layer,
// so cfg.GetString("HOME") works. Requires WithEnv.
func WithEnvFallback(enabled bool) Option {
	return func(opts *Options) {
		opts.EnvFallback = enabled
	}
}

// WithResolveOptions passes options to Config.Resolve.
func WithResolveOptions(resolveOpts ...config.ResolveOption) Option {
	return func(opts *Options) {
		opts.ResolveOptions = append(opts.ResolveOptions, resolveOpts...)
	}
}

// WithoutResolve returns the merged tree without resolving substitutions.
func WithoutResolve() Option {
	return func(opts *Options) {
		opts.SkipResolve = true
	}
}

// WithoutIncludes makes include directives fail instead of reading files.
func WithoutIncludes() Option {
	return func(opts *Options) {
		opts.DisableIncludes = true
	}
}

// Loader merges configuration layers and resolves the result.
type Loader struct {
	options Options
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &Loader{options: options}
}

// Load reads every file, merges them so later files win, adds the
// environment layer if requested, and resolves substitutions.
func (l *Loader) Load() (*config.Config, error) {
	merged := config.Empty("merged configuration")

	var includer config.Includer
	if !l.options.DisableIncludes {
		includer = NewFileIncluder("")
	}

	files, err := l.Files()
	if err != nil {
		return nil, err
	}

	for _, path := range files {
		layer, err := LoadFile(path, includer)
		if err != nil {
			return nil, err
		}

		slog.Debug("config layer loaded", slog.String("file", path), slog.Int("keys", layer.Root().Len()))

		merged, err = layer.WithFallback(merged)
		if err != nil {
			return nil, fmt.Errorf("merging %q: %w", path, err)
		}
	}

	resolveOpts := l.options.ResolveOptions

	if l.options.Env != nil {
		if l.options.EnvFallback {
			merged, err = merged.WithFallback(config.EnvVariablesAsConfig(l.options.Env))
			if err != nil {
				return nil, fmt.Errorf("merging environment: %w", err)
			}

			slog.Debug("environment layer added")
		}

		resolveOpts = append([]config.ResolveOption{config.WithEnvironment(l.options.Env)}, resolveOpts...)
	}

	if l.options.SkipResolve {
		return merged, nil
	}

	resolved, err := merged.Resolve(resolveOpts...)
	if err != nil {
		return nil, fmt.Errorf("resolving configuration: %w", err)
	}

	return resolved, nil
}

// Files expands the layers into the list of files to read, lowest
// precedence first.
func (l *Loader) Files() ([]string, error) {
	var files []string

	for _, layer := range l.options.Layers {
		if !layer.Glob {
			files = append(files, layer.Path)

			continue
		}

		if !doublestar.ValidatePathPattern(layer.Path) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, layer.Path)
		}

		matches, err := doublestar.FilepathGlob(layer.Path, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrBadPattern, layer.Path, err)
		}

		if len(matches) == 0 {
			slog.Debug("glob matched no files", slog.String("pattern", layer.Path))
		}

		slices.Sort(matches)
		files = append(files, matches...)
	}

	return files, nil
}

// LoadFile parses one file with the parser matching its extension.
// The result is not resolved.
func LoadFile(path string, includer config.Includer) (*config.Config, error) {
	parser, err := ParserFor(path)
	if err != nil {
		return nil, err
	}

	fetcher, err := filefetcher.NewFetcher(path)()
	if err != nil {
		return nil, err
	}

	return fetcher.Load(parser, includer)
}
