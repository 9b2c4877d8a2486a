package config

// Config is an immutable handle over one root Object. Every structural
// operation returns a new Config; the receiver is never modified, so a
// Config can be shared between goroutines once built.
type Config struct {
	root        *Object
	transformer Transformer
}

// New wraps root in a Config using DefaultTransformer.
func New(root *Object) *Config {
	if root == nil {
		root = EmptyObject(NewOrigin("empty config"))
	}

	return &Config{root: root, transformer: DefaultTransformer{}}
}

// Empty returns a Config without any settings.
func Empty(description string) *Config {
	return New(EmptyObject(NewOrigin(description)))
}

// Root returns the root object.
func (c *Config) Root() *Object {
	return c.root
}

// Origin returns the origin of the root object.
func (c *Config) Origin() *Origin {
	return c.root.Origin()
}

// IsEmpty reports whether the root has no members.
func (c *Config) IsEmpty() bool {
	return c.root.IsEmpty()
}

// WithTransformer returns a Config using t for the value transform step of typed getters.
func (c *Config) WithTransformer(t Transformer) *Config {
	return &Config{root: c.root, transformer: t}
}

func (c *Config) wrap(root *Object) *Config {
	if root == c.root {
		return c
	}

	return &Config{root: root, transformer: c.transformer}
}

func (c *Config) toFallbackValue() Value {
	return c.root
}

// CheckValid validates the receiver against a reference config.
func (c *Config) CheckValid(_ *Config, _ ...string) error {
	return newError(ErrNotImplemented, c.Origin(), "", "CheckValid is not implemented")
}
