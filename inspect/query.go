package inspect

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/0xalexb/hjarta-config/config"
)

// ErrUnknownType is returned for a type name no getter serves.
var ErrUnknownType = errors.New("unknown value type")

// Result is the answer to one query.
type Result struct {
	Path   string `json:"path"`
	Type   string `json:"type"`
	Value  any    `json:"value"`
	Origin string `json:"origin,omitempty"`
}

type getter func(cfg *config.Config, path string) (any, error)

//nolint:gochecknoglobals // immutable lookup table
var getters = map[string]getter{
	"bool":        func(cfg *config.Config, path string) (any, error) { return cfg.GetBool(path) },
	"int":         func(cfg *config.Config, path string) (any, error) { return cfg.GetInt(path) },
	"long":        func(cfg *config.Config, path string) (any, error) { return cfg.GetLong(path) },
	"double":      func(cfg *config.Config, path string) (any, error) { return cfg.GetDouble(path) },
	"string":      func(cfg *config.Config, path string) (any, error) { return cfg.GetString(path) },
	"bool-list":   func(cfg *config.Config, path string) (any, error) { return cfg.GetBoolList(path) },
	"int-list":    func(cfg *config.Config, path string) (any, error) { return cfg.GetIntList(path) },
	"long-list":   func(cfg *config.Config, path string) (any, error) { return cfg.GetLongList(path) },
	"double-list": func(cfg *config.Config, path string) (any, error) { return cfg.GetDoubleList(path) },
	"string-list": func(cfg *config.Config, path string) (any, error) { return cfg.GetStringList(path) },
	"list": func(cfg *config.Config, path string) (any, error) {
		list, err := cfg.GetList(path)
		if err != nil {
			return nil, err
		}

		return list.Unwrapped(), nil
	},
	"object": func(cfg *config.Config, path string) (any, error) {
		obj, err := cfg.GetObject(path)
		if err != nil {
			return nil, err
		}

		return obj.Unwrapped(), nil
	},
}

// Types lists the type names accepted by Query.
func Types() []string {
	return []string{
		"bool", "int", "long", "double", "string", "list", "object",
		"bool-list", "int-list", "long-list", "double-list", "string-list",
	}
}

// Query reads path from cfg. An empty kind returns the raw value, nulls
// included; any other kind goes through the matching typed getter.
func Query(cfg *config.Config, path, kind string) (Result, error) {
	v, err := cfg.GetValue(path)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Path:   path,
		Type:   v.Type().String(),
		Value:  v.Unwrapped(),
		Origin: v.Origin().Description(),
	}

	if kind == "" {
		return result, nil
	}

	get, ok := getters[strings.ToLower(kind)]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownType, kind)
	}

	result.Value, err = get(cfg, path)
	if err != nil {
		return Result{}, err
	}

	result.Type = strings.ToLower(kind)

	return result, nil
}

// StatusFor maps a query error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, config.ErrBadPath), errors.Is(err, ErrUnknownType):
		return http.StatusBadRequest
	case errors.Is(err, config.ErrMissing):
		return http.StatusNotFound
	case errors.Is(err, config.ErrNotResolved):
		return http.StatusConflict
	case errors.Is(err, config.ErrNull), errors.Is(err, config.ErrWrongType), errors.Is(err, config.ErrNumericOverflow):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
