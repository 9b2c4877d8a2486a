package hjarta

import (
	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/inspect"
	"github.com/0xalexb/hjarta-config/loader"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules      []fx.Option
	Sections     []fx.Option
	ConfigModule fx.Option
	LogLevel     string
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithConfig makes the application load its configuration with a loader
// built from opts and supply the resolved *config.Config. A later call
// replaces an earlier one.
func WithConfig(opts ...loader.Option) Option {
	return func(o *Options) {
		o.ConfigModule = loader.NewModule(opts...)
	}
}

// WithSection supplies *T decoded from the section at path of the loaded
// configuration. Defaults and validation run when T implements
// config.Defaulter or config.Validator.
func WithSection[T any](path string) Option {
	return func(o *Options) {
		o.Sections = append(o.Sections, fx.Provide(config.Provider(new(T), path)))
	}
}

// WithInspector serves the loaded configuration read-only over HTTP.
// Without options the listener reads its settings from the "inspect" section.
func WithInspector(opts ...inspect.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, inspect.NewModule(opts...))
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}
