package config

// ResolveOptions controls substitution resolution.
type ResolveOptions struct {
	AllowUnresolved bool
	Env             EnvSource
}

// ResolveOption configures ResolveOptions.
type ResolveOption func(*ResolveOptions)

// WithAllowUnresolved lets resolution leave substitutions it cannot
// resolve in place instead of failing. The result then reports
// IsResolved() == false.
func WithAllowUnresolved(allow bool) ResolveOption {
	return func(opts *ResolveOptions) {
		opts.AllowUnresolved = allow
	}
}

// WithEnvironment makes substitutions missing from the source fall back to
// variables of env.
func WithEnvironment(env EnvSource) ResolveOption {
	return func(opts *ResolveOptions) {
		opts.Env = env
	}
}

func applyResolveOptions(opts []ResolveOption) ResolveOptions {
	var options ResolveOptions

	for _, apply := range opts {
		apply(&options)
	}

	return options
}

// Resolve replaces every substitution using the Config itself as the
// lookup source. When nothing needed resolving the receiver is returned.
func (c *Config) Resolve(opts ...ResolveOption) (*Config, error) {
	return c.ResolveWith(c, opts...)
}

// ResolveWith replaces every substitution by looking paths up in source
// instead of the receiver. A nil source counts as an empty config. When
// nothing needed resolving the receiver is returned.
func (c *Config) ResolveWith(source *Config, opts ...ResolveOption) (*Config, error) {
	sourceRoot := EmptyObject(c.Origin())
	if source != nil {
		sourceRoot = source.root
	}

	resolved, err := resolveObject(c.root, sourceRoot, applyResolveOptions(opts))
	if err != nil {
		return nil, err
	}

	return c.wrap(resolved), nil
}

// IsResolved reports whether the tree is free of substitutions.
func (c *Config) IsResolved() bool {
	return c.root.ResolveStatus() == Resolved
}
