package config_test

import (
	"testing"

	"github.com/0xalexb/hjarta-config/config"

	"github.com/stretchr/testify/require"
)

func testOrigin() *config.Origin {
	return config.NewOrigin("test")
}

func fromMap(t *testing.T, m map[string]any) *config.Config {
	t.Helper()

	v, err := config.FromAny(testOrigin(), m)
	require.NoError(t, err)

	obj, ok := v.(*config.Object)
	require.True(t, ok)

	return config.New(obj)
}

func subst(t *testing.T, expr string) *config.Substitution {
	t.Helper()

	path, err := config.ParsePath(expr)
	require.NoError(t, err)

	return config.NewSubstitution(testOrigin(), path, false)
}

func optionalSubst(t *testing.T, expr string) *config.Substitution {
	t.Helper()

	path, err := config.ParsePath(expr)
	require.NoError(t, err)

	return config.NewSubstitution(testOrigin(), path, true)
}

// scenarioTree is {a: {b: {c: 1}}, x: null, list: [1, 2, 3]}.
func scenarioTree(t *testing.T) *config.Config {
	t.Helper()

	return fromMap(t, map[string]any{
		"a":    map[string]any{"b": map[string]any{"c": 1}},
		"x":    nil,
		"list": []any{1, 2, 3},
	})
}
