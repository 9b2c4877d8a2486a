package config_test

import (
	"testing"

	"github.com/0xalexb/hjarta-config/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_HomogeneousLists(t *testing.T) {
	t.Parallel()

	cfg := fromMap(t, map[string]any{
		"bools":   []any{true, false},
		"ints":    []any{1, 2},
		"longs":   []any{int64(1) << 40, 7},
		"doubles": []any{1.5, 2, int64(1) << 40},
		"strings": []any{"a", "b"},
		"mixed":   []any{1, "two"},
		"empty":   []any{},
	})

	bools, err := cfg.GetBoolList("bools")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, bools)

	ints, err := cfg.GetIntList("ints")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ints)

	longs, err := cfg.GetLongList("longs")
	require.NoError(t, err)
	assert.Equal(t, []int64{1 << 40, 7}, longs)

	doubles, err := cfg.GetDoubleList("doubles")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2, 1 << 40}, doubles)

	strs, err := cfg.GetStringList("strings")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, strs)

	empty, err := cfg.GetLongList("empty")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestConfig_HomogeneousLists_Mismatch(t *testing.T) {
	t.Parallel()

	cfg := fromMap(t, map[string]any{
		"mixed":   []any{1, "two"},
		"longs":   []any{int64(1) << 40},
		"doubles": []any{1.5},
		"nulls":   []any{nil},
	})

	testCases := []struct {
		name  string
		query func() error
	}{
		{name: "int list with a string", query: func() error { _, err := cfg.GetIntList("mixed"); return err }},
		{name: "string list with a number", query: func() error { _, err := cfg.GetStringList("mixed"); return err }},
		{name: "int list with a long", query: func() error { _, err := cfg.GetIntList("longs"); return err }},
		{name: "long list with a double", query: func() error { _, err := cfg.GetLongList("doubles"); return err }},
		{name: "bool list with a null", query: func() error { _, err := cfg.GetBoolList("nulls"); return err }},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := testCase.query()
			require.ErrorIs(t, err, config.ErrWrongType)
			assert.Contains(t, err.Error(), "did not contain only the desired type")
		})
	}
}

func TestConfig_LongListWidening(t *testing.T) {
	t.Parallel()

	ints := []int32{-3, 0, 1, 2, 1 << 20}
	values := make([]config.Value, len(ints))

	for i, n := range ints {
		values[i] = config.NewInt(testOrigin(), n)
	}

	cfg := config.New(config.NewObject(testOrigin(),
		config.Field{Key: "small", Value: config.NewList(testOrigin(), values)},
	))

	longs, err := cfg.GetLongList("small")
	require.NoError(t, err)
	require.Len(t, longs, len(ints))

	for i, n := range ints {
		assert.Equal(t, int64(n), longs[i])
	}
}

func TestConfig_ObjectAndConfigLists(t *testing.T) {
	t.Parallel()

	cfg := fromMap(t, map[string]any{
		"servers": []any{
			map[string]any{"host": "a", "port": 1},
			map[string]any{"host": "b", "port": 2},
		},
		"mixed": []any{map[string]any{"host": "a"}, "b"},
	})

	objects, err := cfg.GetObjectList("servers")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, []string{"host", "port"}, objects[0].Keys())

	configs, err := cfg.GetConfigList("servers")
	require.NoError(t, err)
	require.Len(t, configs, 2)

	port, err := configs[1].GetInt("port")
	require.NoError(t, err)
	assert.Equal(t, 2, port)

	_, err = cfg.GetObjectList("mixed")
	require.ErrorIs(t, err, config.ErrWrongType)

	_, err = cfg.GetConfigList("mixed")
	require.ErrorIs(t, err, config.ErrWrongType)

	_, err = cfg.GetConfigList("missing")
	require.ErrorIs(t, err, config.ErrMissing)
}
