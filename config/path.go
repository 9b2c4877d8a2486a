package config

import (
	"slices"
	"strings"
)

// Path is an ordered sequence of keys. The zero value is the empty path,
// which only appears as the remainder of a single-key path.
type Path struct {
	keys []string
}

// NewPath builds a path from already-split keys.
func NewPath(keys ...string) Path {
	return Path{keys: slices.Clone(keys)}
}

// ParsePath parses a dotted path expression such as `a.b."c.d"`.
// Double quotes protect dots and whitespace inside a key.
func ParsePath(expr string) (Path, error) {
	var (
		keys    []string
		current strings.Builder
		quoted  bool
		inQuote bool
	)

	for i := 0; i < len(expr); i++ {
		c := expr[i]

		switch {
		case inQuote && c == '\\' && i+1 < len(expr):
			i++
			current.WriteByte(expr[i])
		case c == '"':
			inQuote = !inQuote
			quoted = true
		case inQuote:
			current.WriteByte(c)
		case c == '.':
			if current.Len() == 0 && !quoted {
				return Path{}, badPath(expr, "path has a leading, trailing or two adjacent '.'")
			}

			keys = append(keys, current.String())
			current.Reset()

			quoted = false
		case c == ' ' || c == '\t':
			return Path{}, badPath(expr, "unquoted whitespace is not allowed in a path")
		default:
			current.WriteByte(c)
		}
	}

	if inQuote {
		return Path{}, badPath(expr, "unterminated quote")
	}

	if current.Len() == 0 && !quoted {
		return Path{}, badPath(expr, "path has a leading, trailing or two adjacent '.'")
	}

	keys = append(keys, current.String())

	return Path{keys: keys}, nil
}

func badPath(expr, reason string) *Error {
	return newError(ErrBadPath, nil, expr, "invalid path '%s': %s", expr, reason)
}

// First returns the head key.
func (p Path) First() string {
	if len(p.keys) == 0 {
		return ""
	}

	return p.keys[0]
}

// Remainder returns the path without its head; empty for single-key paths.
func (p Path) Remainder() Path {
	if len(p.keys) <= 1 {
		return Path{}
	}

	return Path{keys: p.keys[1:]}
}

// Last returns the final key.
func (p Path) Last() string {
	if len(p.keys) == 0 {
		return ""
	}

	return p.keys[len(p.keys)-1]
}

// Parent returns the path without its last key.
func (p Path) Parent() Path {
	if len(p.keys) <= 1 {
		return Path{}
	}

	return Path{keys: p.keys[:len(p.keys)-1]}
}

// Prepend returns prefix followed by p.
func (p Path) Prepend(prefix Path) Path {
	keys := make([]string, 0, len(prefix.keys)+len(p.keys))
	keys = append(keys, prefix.keys...)
	keys = append(keys, p.keys...)

	return Path{keys: keys}
}

// Append returns p followed by key.
func (p Path) Append(key string) Path {
	keys := make([]string, 0, len(p.keys)+1)
	keys = append(keys, p.keys...)
	keys = append(keys, key)

	return Path{keys: keys}
}

// SubPath returns the keys in [from, to).
func (p Path) SubPath(from, to int) Path {
	return Path{keys: p.keys[from:to]}
}

// Length returns the number of keys.
func (p Path) Length() int {
	return len(p.keys)
}

// Empty reports whether the path has no keys.
func (p Path) Empty() bool {
	return len(p.keys) == 0
}

// Keys returns a copy of the keys.
func (p Path) Keys() []string {
	return slices.Clone(p.keys)
}

// Equal reports whether both paths have the same keys.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p.keys, other.keys)
}

// Render renders the path so that ParsePath(p.Render()) equals p.
func (p Path) Render() string {
	var b strings.Builder

	for i, key := range p.keys {
		if i > 0 {
			b.WriteByte('.')
		}

		b.WriteString(renderKey(key))
	}

	return b.String()
}

func (p Path) String() string {
	return p.Render()
}

func renderKey(key string) string {
	if key == "" || strings.ContainsAny(key, ".\" \t\\") {
		escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(key)

		return `"` + escaped + `"`
	}

	return key
}
