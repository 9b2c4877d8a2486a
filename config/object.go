package config

import (
	"maps"
	"slices"
	"strings"
)

// Field is one key/value member of an Object.
type Field struct {
	Key   string
	Value Value
}

// Object is an immutable mapping from keys to values that remembers
// insertion order. Structural methods return a new Object that shares every
// untouched child with the receiver; when nothing changes the receiver
// itself is returned.
type Object struct {
	origin *Origin
	keys   []string
	values map[string]Value
	status ResolveStatus
}

// NewObject creates an object from fields. A repeated key keeps its first
// position and its last value.
func NewObject(origin *Origin, fields ...Field) *Object {
	keys := make([]string, 0, len(fields))
	values := make(map[string]Value, len(fields))

	for _, f := range fields {
		if _, exists := values[f.Key]; !exists {
			keys = append(keys, f.Key)
		}

		values[f.Key] = f.Value
	}

	return newObject(origin, keys, values)
}

// EmptyObject creates an object without members.
func EmptyObject(origin *Origin) *Object {
	return newObject(origin, nil, map[string]Value{})
}

func newObject(origin *Origin, keys []string, values map[string]Value) *Object {
	status := Resolved

	for _, v := range values {
		if v.ResolveStatus() != Resolved {
			status = Unresolved

			break
		}
	}

	return &Object{origin: origin, keys: keys, values: values, status: status}
}

// Get returns the value stored directly under key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]

	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	return slices.Clone(o.keys)
}

// Fields returns the members in insertion order.
func (o *Object) Fields() []Field {
	out := make([]Field, len(o.keys))
	for i, k := range o.keys {
		out[i] = Field{Key: k, Value: o.values[k]}
	}

	return out
}

// Len returns the number of members.
func (o *Object) Len() int { return len(o.keys) }

// IsEmpty reports whether the object has no members.
func (o *Object) IsEmpty() bool { return len(o.keys) == 0 }

func (o *Object) Origin() *Origin              { return o.origin }
func (o *Object) Type() ValueType              { return TypeObject }
func (o *Object) ResolveStatus() ResolveStatus { return o.status }
func (o *Object) toFallbackValue() Value       { return o }

func (o *Object) Unwrapped() any {
	out := make(map[string]any, len(o.keys))
	for _, k := range o.keys {
		out[k] = o.values[k].Unwrapped()
	}

	return out
}

func (o *Object) Render() string {
	parts := make([]string, len(o.keys))
	for i, k := range o.keys {
		parts[i] = renderKey(k) + ":" + o.values[k].Render()
	}

	return "{" + strings.Join(parts, ",") + "}"
}

// ToConfig wraps the object in a Config.
func (o *Object) ToConfig() *Config {
	return New(o)
}

func (o *Object) withKeyValue(key string, v Value) *Object {
	if old, ok := o.values[key]; ok && old == v {
		return o
	}

	values := maps.Clone(o.values)
	if values == nil {
		values = map[string]Value{}
	}

	keys := o.keys
	if _, exists := values[key]; !exists {
		keys = append(slices.Clone(o.keys), key)
	}

	values[key] = v

	return newObject(o.origin, keys, values)
}

func (o *Object) withoutKey(key string) *Object {
	if _, ok := o.values[key]; !ok {
		return o
	}

	values := maps.Clone(o.values)
	delete(values, key)

	keys := slices.DeleteFunc(slices.Clone(o.keys), func(k string) bool { return k == key })

	return newObject(o.origin, keys, values)
}

// peekPath walks path without type checks. A missing key or a non-object
// in the middle of the path yields (nil, nil); walking through a
// placeholder fails with ErrNotResolved.
func (o *Object) peekPath(path Path) (Value, error) {
	v, ok := o.values[path.First()]
	if !ok {
		return nil, nil
	}

	rest := path.Remainder()
	if rest.Empty() {
		return v, nil
	}

	switch child := v.(type) {
	case *Object:
		return child.peekPath(rest)
	case *Substitution, *Concatenation, *DelayedMerge:
		return nil, notResolvedError(path.Render())
	default:
		return nil, nil
	}
}

// WithValue returns an object with value stored at path, creating
// intermediate objects and replacing non-objects along the way.
func (o *Object) WithValue(path Path, value Value) *Object {
	key := path.First()
	rest := path.Remainder()

	if rest.Empty() {
		return o.withKeyValue(key, value)
	}

	if child, ok := o.values[key].(*Object); ok {
		return o.withKeyValue(key, child.WithValue(rest, value))
	}

	return o.withKeyValue(key, wrapAtPath(value.Origin(), rest, value))
}

// WithoutPath returns an object with path removed. Parents emptied by the
// removal are kept as empty objects.
func (o *Object) WithoutPath(path Path) *Object {
	key := path.First()
	rest := path.Remainder()

	v, ok := o.values[key]
	if !ok {
		return o
	}

	if rest.Empty() {
		return o.withoutKey(key)
	}

	child, isObject := v.(*Object)
	if !isObject {
		return o
	}

	return o.withKeyValue(key, child.WithoutPath(rest))
}

// WithOnlyPath returns an object holding only path and what lies beneath it.
// If path does not exist the result is empty.
func (o *Object) WithOnlyPath(path Path) *Object {
	only := o.withOnlyPathOrNil(path)
	if only == nil {
		return EmptyObject(o.origin)
	}

	return only
}

func (o *Object) withOnlyPathOrNil(path Path) *Object {
	key := path.First()
	rest := path.Remainder()

	v, ok := o.values[key]
	if !ok {
		return nil
	}

	if !rest.Empty() {
		child, isObject := v.(*Object)
		if !isObject {
			return nil
		}

		sub := child.withOnlyPathOrNil(rest)
		if sub == nil {
			return nil
		}

		v = sub
	}

	return newObject(o.origin, []string{key}, map[string]Value{key: v})
}

// WithFallback merges other beneath the receiver. Keys of the receiver win
// unless their value is null; nested objects are merged recursively.
// A fallback that is not an object, or nil, leaves the receiver unchanged.
func (o *Object) WithFallback(other Mergeable) Value {
	if isNilMergeable(other) {
		return o
	}

	fallback, ok := other.toFallbackValue().(*Object)
	if !ok || fallback == o {
		return o
	}

	var (
		keys    []string
		values  map[string]Value
		changed bool
	)

	for _, key := range fallback.keys {
		theirs := fallback.values[key]

		mine, exists := o.values[key]
		if exists {
			theirs = mergeValues(mine, theirs)
			if theirs == mine {
				continue
			}
		}

		if !changed {
			keys = slices.Clone(o.keys)
			values = maps.Clone(o.values)
			changed = true
		}

		if !exists {
			keys = append(keys, key)
		}

		values[key] = theirs
	}

	if !changed {
		return o
	}

	return newObject(o.origin, keys, values)
}

// mergeValues puts fallback beneath mine. When either side still holds a
// placeholder the merge is delayed until resolution, except that a
// resolved scalar or null in mine decides the outcome right away.
func mergeValues(mine, fallback Value) Value {
	switch m := mine.(type) {
	case *Null:
		return fallback
	case *Object:
		if fallback.Type() == TypeUnresolved {
			return NewDelayedMerge(m.origin, m, fallback)
		}

		return m.WithFallback(fallback)
	default:
		if mine.Type() == TypeUnresolved {
			return NewDelayedMerge(mine.Origin(), mine, fallback)
		}

		return mine
	}
}

func isNilMergeable(m Mergeable) bool {
	switch v := m.(type) {
	case nil:
		return true
	case *Config:
		return v == nil
	case *Object:
		return v == nil
	default:
		return false
	}
}

func wrapAtPath(origin *Origin, path Path, value Value) Value {
	keys := path.keys
	out := value

	for i := len(keys) - 1; i >= 0; i-- {
		out = newObject(origin, []string{keys[i]}, map[string]Value{keys[i]: out})
	}

	return out
}
