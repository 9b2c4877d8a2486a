package config

import (
	"errors"
	"slices"
	"strings"
)

// find locates the value at path; null values fail with ErrNull.
func (c *Config) find(expr string, expected ValueType) (Value, error) {
	path, err := ParsePath(expr)
	if err != nil {
		return nil, err
	}

	v, err := c.findOrNull(path, expected)
	if err != nil {
		return nil, err
	}

	if v.Type() == TypeNull {
		return nil, nullError(v.Origin(), path.Render(), expected)
	}

	return v, nil
}

// findOrNull locates the value at path and returns explicit nulls as values.
func (c *Config) findOrNull(path Path, expected ValueType) (Value, error) {
	v, err := findInObject(c.root, path, expected, path, c.transformer)

	return v, reinterpretUnresolved(c.root, path, err)
}

// reinterpretUnresolved replaces any failure met while descending an
// unresolved tree with ErrNotResolved: placeholders in such a tree can look
// absent or mistyped, so the raw error would be misleading.
func reinterpretUnresolved(root *Object, path Path, err error) error {
	if err == nil || root.ResolveStatus() == Resolved {
		return err
	}

	if errors.Is(err, ErrBadPath) {
		return err
	}

	return notResolvedError(path.Render())
}

func findInObject(obj *Object, path Path, expected ValueType, original Path, t Transformer) (Value, error) {
	key := path.First()
	next := path.Remainder()

	if next.Empty() {
		return findKeyOrNull(obj, key, expected, original, t)
	}

	consumed := original.SubPath(0, original.Length()-next.Length())

	v, err := findKeyOrNull(obj, key, TypeObject, consumed, t)
	if err != nil {
		return nil, err
	}

	child, ok := v.(*Object)
	if !ok {
		// an explicit null where an object was needed
		return nil, nullError(v.Origin(), consumed.Render(), TypeObject)
	}

	return findInObject(child, next, expected, original, t)
}

func findKeyOrNull(obj *Object, key string, expected ValueType, original Path, t Transformer) (Value, error) {
	v, ok := obj.Get(key)
	if !ok {
		return nil, missingError(original.Render())
	}

	if v.Type() == TypeUnresolved {
		return nil, notResolvedError(original.Render())
	}

	if expected == TypeUnspecified {
		return v, nil
	}

	v = t.Transform(v, expected)

	if v.Type() != expected && v.Type() != TypeNull {
		return nil, wrongTypeError(v.Origin(), original.Render(), expected, v.Type())
	}

	return v, nil
}

func (c *Config) hasPathPeek(expr string) (Value, error) {
	path, err := ParsePath(expr)
	if err != nil {
		return nil, err
	}

	v, err := c.root.peekPath(path)
	if err == nil && v != nil && v.Type() == TypeUnresolved {
		err = notResolvedError(path.Render())
	}

	if err != nil {
		if c.root.ResolveStatus() == Resolved {
			return nil, err
		}

		return nil, notResolvedError(path.Render())
	}

	return v, nil
}

// HasPath reports whether path exists and is not null.
func (c *Config) HasPath(expr string) (bool, error) {
	v, err := c.hasPathPeek(expr)
	if err != nil {
		return false, err
	}

	return v != nil && v.Type() != TypeNull, nil
}

// HasPathOrNull reports whether path exists, even if its value is null.
func (c *Config) HasPathOrNull(expr string) (bool, error) {
	v, err := c.hasPathPeek(expr)
	if err != nil {
		return false, err
	}

	return v != nil, nil
}

// IsNull reports whether path holds an explicit null. A missing path fails with ErrMissing.
func (c *Config) IsNull(expr string) (bool, error) {
	path, err := ParsePath(expr)
	if err != nil {
		return false, err
	}

	v, err := c.findOrNull(path, TypeUnspecified)
	if err != nil {
		return false, err
	}

	return v.Type() == TypeNull, nil
}

// Entry is one leaf of a flattened config.
type Entry struct {
	Path  string
	Value Value
}

// EntrySet flattens the tree into its non-null leaves, sorted by path.
// Objects are descended; lists are leaves.
func (c *Config) EntrySet() []Entry {
	var entries []Entry

	collectEntries(&entries, Path{}, c.root)

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Path, b.Path)
	})

	return entries
}

func collectEntries(entries *[]Entry, parent Path, obj *Object) {
	for _, f := range obj.Fields() {
		path := parent.Append(f.Key)

		switch v := f.Value.(type) {
		case *Object:
			collectEntries(entries, path, v)
		case *Null:
			// nulls are conceptually not in a config
		default:
			*entries = append(*entries, Entry{Path: path.Render(), Value: v})
		}
	}
}
