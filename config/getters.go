package config

// GetValue returns the value at path. An explicit null is returned as a
// *Null rather than reported as an error.
func (c *Config) GetValue(expr string) (Value, error) {
	path, err := ParsePath(expr)
	if err != nil {
		return nil, err
	}

	return c.findOrNull(path, TypeUnspecified)
}

// GetAnyRef returns the plain Go representation of the value at path.
func (c *Config) GetAnyRef(expr string) (any, error) {
	v, err := c.find(expr, TypeUnspecified)
	if err != nil {
		return nil, err
	}

	return v.Unwrapped(), nil
}

// GetBool returns the boolean at path.
func (c *Config) GetBool(expr string) (bool, error) {
	v, err := c.find(expr, TypeBoolean)
	if err != nil {
		return false, err
	}

	b, ok := v.(*Boolean)
	if !ok {
		return false, narrowError(v, expr)
	}

	return b.Bool(), nil
}

// GetInt returns the number at path as an int within the 32-bit range.
func (c *Config) GetInt(expr string) (int, error) {
	n, err := c.getNumber(expr)
	if err != nil {
		return 0, err
	}

	return n.IntValueRangeChecked(expr)
}

// GetLong returns the number at path as an int64.
func (c *Config) GetLong(expr string) (int64, error) {
	n, err := c.getNumber(expr)
	if err != nil {
		return 0, err
	}

	return n.LongValue(), nil
}

// GetDouble returns the number at path as a float64.
func (c *Config) GetDouble(expr string) (float64, error) {
	n, err := c.getNumber(expr)
	if err != nil {
		return 0, err
	}

	return n.DoubleValue(), nil
}

// GetNumber returns the number node at path.
func (c *Config) GetNumber(expr string) (*Number, error) {
	return c.getNumber(expr)
}

func (c *Config) getNumber(expr string) (*Number, error) {
	v, err := c.find(expr, TypeNumber)
	if err != nil {
		return nil, err
	}

	n, ok := v.(*Number)
	if !ok {
		return nil, narrowError(v, expr)
	}

	return n, nil
}

// GetString returns the string at path.
func (c *Config) GetString(expr string) (string, error) {
	v, err := c.find(expr, TypeString)
	if err != nil {
		return "", err
	}

	s, ok := v.(*String)
	if !ok {
		return "", narrowError(v, expr)
	}

	return s.Text(), nil
}

// GetObject returns the object at path.
func (c *Config) GetObject(expr string) (*Object, error) {
	v, err := c.find(expr, TypeObject)
	if err != nil {
		return nil, err
	}

	obj, ok := v.(*Object)
	if !ok {
		return nil, narrowError(v, expr)
	}

	return obj, nil
}

// GetConfig returns the object at path wrapped in a Config that keeps the
// receiver's transformer.
func (c *Config) GetConfig(expr string) (*Config, error) {
	obj, err := c.GetObject(expr)
	if err != nil {
		return nil, err
	}

	return &Config{root: obj, transformer: c.transformer}, nil
}

// GetList returns the list at path.
func (c *Config) GetList(expr string) (*List, error) {
	v, err := c.find(expr, TypeList)
	if err != nil {
		return nil, err
	}

	list, ok := v.(*List)
	if !ok {
		return nil, narrowError(v, expr)
	}

	return list, nil
}

// narrowError reports a value whose kind tag matched but whose node type did not.
func narrowError(v Value, path string) error {
	return newError(ErrBugOrBroken, v.Origin(), path, "%s: value of kind %s has unexpected node type %T", path, v.Type(), v)
}
