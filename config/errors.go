package config

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of them,
// so callers branch with errors.Is.
var (
	// ErrMissing is returned when a requested key is absent.
	ErrMissing = errors.New("missing")
	// ErrNull is returned when a key is present but set to null where a value was required.
	ErrNull = errors.New("null")
	// ErrWrongType is returned when a value exists but has the wrong type.
	ErrWrongType = errors.New("wrong type")
	// ErrNumericOverflow is returned when a number does not fit the requested width.
	ErrNumericOverflow = errors.New("numeric overflow")
	// ErrNotResolved is returned when querying a tree that still holds substitutions.
	ErrNotResolved = errors.New("not resolved")
	// ErrBugOrBroken signals an internal invariant violation.
	ErrBugOrBroken = errors.New("bug or broken")
	// ErrNotImplemented is returned by functionality that does not exist yet.
	ErrNotImplemented = errors.New("not implemented")
	// ErrBadPath is returned when a path expression cannot be parsed.
	ErrBadPath = errors.New("bad path")
	// ErrUnresolvedSubstitution is returned when a substitution cannot be resolved.
	ErrUnresolvedSubstitution = errors.New("unresolved substitution")
	// ErrParse is returned by parsers for malformed input.
	ErrParse = errors.New("parse error")
)

// Error is a classified configuration error.
type Error struct {
	Kind    error
	Path    string
	Origin  *Origin
	Message string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Error()
	}

	if e.Origin != nil {
		return e.Origin.Description() + ": " + msg
	}

	return msg
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, origin *Origin, path, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Path:    path,
		Origin:  origin,
		Message: fmt.Sprintf(format, args...),
	}
}

func missingError(path string) *Error {
	return newError(ErrMissing, nil, path, "no configuration setting found for key '%s'", path)
}

func nullError(origin *Origin, path string, expected ValueType) *Error {
	if expected == TypeUnspecified {
		return newError(ErrNull, origin, path, "configuration key '%s' is set to null", path)
	}

	return newError(ErrNull, origin, path,
		"configuration key '%s' is set to null but expected %s", path, expected)
}

func wrongTypeError(origin *Origin, path string, expected, actual ValueType) *Error {
	return newError(ErrWrongType, origin, path, "%s has type %s rather than %s", path, actual, expected)
}

func notResolvedError(path string) *Error {
	return newError(ErrNotResolved, nil, path,
		"%s has not been resolved, you need to call Config.Resolve()", path)
}
