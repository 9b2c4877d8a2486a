package config

// WithFallback returns a Config where settings missing or null in the
// receiver are taken from other. A nil fallback returns the receiver.
// Where the receiver still holds a substitution the merge is delayed until
// Resolve, so an optional substitution without a target exposes the
// fallback value.
func (c *Config) WithFallback(other Mergeable) (*Config, error) {
	return c.rewrapMerged(c.root.WithFallback(other))
}

// rewrapMerged turns the result of an object merge back into a Config.
// Merging two objects always yields an object, so anything else is a bug.
func (c *Config) rewrapMerged(merged Value) (*Config, error) {
	obj, ok := merged.(*Object)
	if !ok {
		return nil, newError(ErrBugOrBroken, merged.Origin(), "",
			"creating new object from an object merge did not return an object, got %s", merged.Type())
	}

	return c.wrap(obj), nil
}

// WithValue returns a Config with value stored at path.
func (c *Config) WithValue(expr string, value Value) (*Config, error) {
	path, err := ParsePath(expr)
	if err != nil {
		return nil, err
	}

	return c.wrap(c.root.WithValue(path, value)), nil
}

// WithoutPath returns a Config with path removed.
func (c *Config) WithoutPath(expr string) (*Config, error) {
	path, err := ParsePath(expr)
	if err != nil {
		return nil, err
	}

	return c.wrap(c.root.WithoutPath(path)), nil
}

// WithOnlyPath returns a Config holding only path and its subtree.
func (c *Config) WithOnlyPath(expr string) (*Config, error) {
	path, err := ParsePath(expr)
	if err != nil {
		return nil, err
	}

	return c.wrap(c.root.WithOnlyPath(path)), nil
}

// AtKey places the root under key: {key: root}.
func (c *Config) AtKey(key string) *Config {
	return c.AtKeyWithOrigin(c.Origin(), key)
}

// AtKeyWithOrigin places the root under key and gives the new root origin.
func (c *Config) AtKeyWithOrigin(origin *Origin, key string) *Config {
	root := newObject(origin, []string{key}, map[string]Value{key: c.root})

	return &Config{root: root, transformer: c.transformer}
}

// AtPath places the root under path, e.g. "a.b" yields {a: {b: root}}.
func (c *Config) AtPath(expr string) (*Config, error) {
	path, err := ParsePath(expr)
	if err != nil {
		return nil, err
	}

	root, _ := wrapAtPath(c.Origin(), path, c.root).(*Object)

	return &Config{root: root, transformer: c.transformer}, nil
}
