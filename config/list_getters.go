package config

// listPolicy decodes one unwrapped list element into T. The accepted source
// types of each policy define the widening rules: narrower integers are
// accepted wherever a wider integer or a double is requested.
type listPolicy[T any] struct {
	convert func(elem any) (T, bool)
}

//nolint:gochecknoglobals // immutable policy table
var (
	boolPolicy = listPolicy[bool]{convert: func(elem any) (bool, bool) {
		b, ok := elem.(bool)

		return b, ok
	}}
	intPolicy = listPolicy[int]{convert: func(elem any) (int, bool) {
		i, ok := elem.(int)

		return i, ok
	}}
	longPolicy = listPolicy[int64]{convert: func(elem any) (int64, bool) {
		switch n := elem.(type) {
		case int64:
			return n, true
		case int:
			return int64(n), true
		default:
			return 0, false
		}
	}}
	doublePolicy = listPolicy[float64]{convert: func(elem any) (float64, bool) {
		switch n := elem.(type) {
		case float64:
			return n, true
		case int64:
			return float64(n), true
		case int:
			return float64(n), true
		default:
			return 0, false
		}
	}}
	stringPolicy = listPolicy[string]{convert: func(elem any) (string, bool) {
		s, ok := elem.(string)

		return s, ok
	}}
)

func homogeneousList[T any](c *Config, expr string, policy listPolicy[T]) ([]T, error) {
	list, err := c.GetList(expr)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, list.Len())

	for _, v := range list.values {
		elem, ok := policy.convert(v.Unwrapped())
		if !ok {
			return nil, newError(ErrWrongType, list.Origin(), expr,
				"%s: the list did not contain only the desired type", expr)
		}

		out = append(out, elem)
	}

	return out, nil
}

// GetBoolList returns a list of booleans.
func (c *Config) GetBoolList(expr string) ([]bool, error) {
	return homogeneousList(c, expr, boolPolicy)
}

// GetIntList returns a list of 32-bit integers.
func (c *Config) GetIntList(expr string) ([]int, error) {
	return homogeneousList(c, expr, intPolicy)
}

// GetLongList returns a list of 64-bit integers; 32-bit elements are widened.
func (c *Config) GetLongList(expr string) ([]int64, error) {
	return homogeneousList(c, expr, longPolicy)
}

// GetDoubleList returns a list of doubles; integer elements are widened.
func (c *Config) GetDoubleList(expr string) ([]float64, error) {
	return homogeneousList(c, expr, doublePolicy)
}

// GetStringList returns a list of strings.
func (c *Config) GetStringList(expr string) ([]string, error) {
	return homogeneousList(c, expr, stringPolicy)
}

// GetObjectList returns a list whose elements are all objects.
func (c *Config) GetObjectList(expr string) ([]*Object, error) {
	list, err := c.GetList(expr)
	if err != nil {
		return nil, err
	}

	out := make([]*Object, 0, list.Len())

	for _, v := range list.values {
		obj, ok := v.(*Object)
		if !ok {
			return nil, newError(ErrWrongType, v.Origin(), expr,
				"%s: the list does not contain only objects", expr)
		}

		out = append(out, obj)
	}

	return out, nil
}

// GetConfigList returns a list whose elements are all objects, each wrapped in a Config.
func (c *Config) GetConfigList(expr string) ([]*Config, error) {
	objects, err := c.GetObjectList(expr)
	if err != nil {
		return nil, err
	}

	out := make([]*Config, len(objects))
	for i, obj := range objects {
		out[i] = &Config{root: obj, transformer: c.transformer}
	}

	return out, nil
}
