package config

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// Transformer converts a located value towards the kind a getter asked for.
// It returns the value unchanged when no conversion applies; the caller then
// reports the kind mismatch.
type Transformer interface {
	Transform(v Value, requested ValueType) Value
}

// DefaultTransformer parses strings into numbers, booleans and null, and
// turns objects with only non-negative integer keys into lists. It never
// turns numbers or booleans into strings.
type DefaultTransformer struct{}

// Transform implements Transformer.
func (DefaultTransformer) Transform(v Value, requested ValueType) Value {
	switch value := v.(type) {
	case *String:
		return transformString(value, requested)
	case *Object:
		if requested == TypeList {
			if list, ok := objectAsList(value); ok {
				return list
			}
		}
	}

	return v
}

// LenientTransformer behaves like DefaultTransformer and also renders
// numbers and booleans when a string is requested.
type LenientTransformer struct{}

// Transform implements Transformer.
func (LenientTransformer) Transform(v Value, requested ValueType) Value {
	if requested == TypeString {
		switch v.(type) {
		case *Number, *Boolean:
			return NewString(v.Origin(), v.Render(), Unquoted)
		}
	}

	return DefaultTransformer{}.Transform(v, requested)
}

func transformString(s *String, requested ValueType) Value {
	text := s.Text()

	switch requested {
	case TypeNumber:
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return NewInteger(s.Origin(), n)
		}

		if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return NewDouble(s.Origin(), f)
		}
	case TypeBoolean:
		switch strings.ToLower(text) {
		case "true", "yes", "on":
			return NewBoolean(s.Origin(), true)
		case "false", "no", "off":
			return NewBoolean(s.Origin(), false)
		}
	case TypeNull:
		if text == "null" {
			return NewNull(s.Origin())
		}
	}

	return s
}

func objectAsList(obj *Object) (*List, bool) {
	type indexed struct {
		index int
		value Value
	}

	items := make([]indexed, 0, obj.Len())

	for _, f := range obj.Fields() {
		i, err := strconv.Atoi(f.Key)
		if err != nil || i < 0 {
			continue
		}

		items = append(items, indexed{index: i, value: f.Value})
	}

	if len(items) == 0 {
		return nil, false
	}

	slices.SortFunc(items, func(a, b indexed) int { return a.index - b.index })

	values := make([]Value, len(items))
	for i, item := range items {
		values[i] = item.value
	}

	return NewList(obj.Origin(), values), true
}
