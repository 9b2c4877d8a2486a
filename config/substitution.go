package config

import (
	"strings"
)

// ParseSubstitutions turns text holding ${path} or ${?path} references into
// a *Substitution (whole text is one reference), a *Concatenation (text
// mixes literals and references) or a plain *String.
func ParseSubstitutions(origin *Origin, text string, quoting Quoting) (Value, error) {
	if !strings.Contains(text, "${") {
		return NewString(origin, text, quoting), nil
	}

	var parts []Value

	rest := text

	for rest != "" {
		start := strings.Index(rest, "${")
		if start < 0 {
			parts = append(parts, NewString(origin, rest, quoting))

			break
		}

		if start > 0 {
			parts = append(parts, NewString(origin, rest[:start], quoting))
		}

		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return nil, newError(ErrParse, origin, "", "unterminated substitution in %q", text)
		}

		inner := strings.TrimSpace(rest[start+2 : start+end])
		optional := strings.HasPrefix(inner, "?")
		inner = strings.TrimPrefix(inner, "?")

		path, err := ParsePath(inner)
		if err != nil {
			return nil, newError(ErrParse, origin, inner, "invalid substitution %q: %v", text, err)
		}

		parts = append(parts, NewSubstitution(origin, path, optional))
		rest = rest[start+end+1:]
	}

	if len(parts) == 1 {
		return parts[0], nil
	}

	return NewConcatenation(origin, parts), nil
}
