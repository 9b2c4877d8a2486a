package config

import (
	"os"
	"slices"
	"strings"
)

// EnvSource is a flat key/value source such as the process environment.
type EnvSource interface {
	Vars() map[string]string
}

// OSEnv reads the process environment.
type OSEnv struct{}

// Vars returns a snapshot of os.Environ.
func (OSEnv) Vars() map[string]string {
	env := os.Environ()
	out := make(map[string]string, len(env))

	for _, kv := range env {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			continue
		}

		out[key] = value
	}

	return out
}

// MapEnv is an EnvSource backed by a map.
type MapEnv map[string]string

// Vars returns the map itself.
func (m MapEnv) Vars() map[string]string {
	return m
}

// EnvVariablesAsConfigObject snapshots src into a resolved object holding
// one quoted string per variable. Keys are added in sorted order.
func EnvVariablesAsConfigObject(src EnvSource) *Object {
	vars := src.Vars()

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	values := make(map[string]Value, len(keys))
	for _, k := range keys {
		values[k] = NewString(NewOrigin("env var "+k), vars[k], Quoted)
	}

	// a flat string source has no substitution syntax, so the result is always resolved
	return &Object{
		origin: NewOrigin("env variables"),
		keys:   keys,
		values: values,
		status: Resolved,
	}
}

// EnvVariablesAsConfig is EnvVariablesAsConfigObject wrapped in a Config.
func EnvVariablesAsConfig(src EnvSource) *Config {
	return New(EnvVariablesAsConfigObject(src))
}
