package config_test

import (
	"math"
	"testing"
	"time"

	"github.com/0xalexb/hjarta-config/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrigin_Description(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		origin *config.Origin
		want   string
		line   int
	}{
		{name: "synthetic", origin: config.NewOrigin("env variables"), want: "env variables", line: -1},
		{name: "file with line", origin: config.NewFileOrigin("app.yaml", 3), want: "app.yaml: 3", line: 3},
		{name: "file without line", origin: config.NewFileOrigin("app.toml", 0), want: "app.toml", line: -1},
		{name: "moved line", origin: config.NewFileOrigin("app.yaml", 3).WithLine(9), want: "app.yaml: 9", line: 9},
		{name: "nil", origin: nil, want: "unknown origin", line: -1},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testInfo.want, testInfo.origin.Description())
			assert.Equal(t, testInfo.line, testInfo.origin.Line())
		})
	}
}

func TestValue_Render(t *testing.T) {
	t.Parallel()

	o := testOrigin()

	tests := []struct {
		name  string
		value config.Value
		want  string
		kind  config.ValueType
	}{
		{name: "null", value: config.NewNull(o), want: "null", kind: config.TypeNull},
		{name: "bool", value: config.NewBoolean(o, true), want: "true", kind: config.TypeBoolean},
		{name: "int", value: config.NewInt(o, -4), want: "-4", kind: config.TypeNumber},
		{name: "double", value: config.NewDouble(o, 0.25), want: "0.25", kind: config.TypeNumber},
		{name: "string", value: config.NewString(o, "hi", config.Quoted), want: `"hi"`, kind: config.TypeString},
		{name: "substitution", value: subst(t, "a.b"), want: "${a.b}", kind: config.TypeUnresolved},
		{
			name: "list",
			value: config.NewList(o, []config.Value{
				config.NewInt(o, 1), config.NewString(o, "x", config.Quoted),
			}),
			want: `[1,"x"]`,
			kind: config.TypeList,
		},
		{
			name: "object with dotted key",
			value: config.NewObject(o,
				config.Field{Key: "a.b", Value: config.NewBoolean(o, false)},
				config.Field{Key: "c", Value: config.NewNull(o)},
			),
			want: `{"a.b":false,c:null}`,
			kind: config.TypeObject,
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testInfo.want, testInfo.value.Render())
			assert.Equal(t, testInfo.kind, testInfo.value.Type())
		})
	}
}

func TestNumber_Widths(t *testing.T) {
	t.Parallel()

	o := testOrigin()

	assert.Equal(t, config.NumberInt, config.NewInteger(o, math.MaxInt32).Kind())
	assert.Equal(t, config.NumberLong, config.NewInteger(o, math.MaxInt32+1).Kind())
	assert.Equal(t, config.NumberInt, config.NewInteger(o, math.MinInt32).Kind())

	assert.Equal(t, 7, config.NewInt(o, 7).Unwrapped())
	assert.Equal(t, int64(7), config.NewLong(o, 7).Unwrapped())
	assert.Equal(t, int64(2), config.NewDouble(o, 2.9).LongValue())
}

func TestObject_NewObject_RepeatedKey(t *testing.T) {
	t.Parallel()

	o := testOrigin()
	obj := config.NewObject(o,
		config.Field{Key: "a", Value: config.NewInt(o, 1)},
		config.Field{Key: "b", Value: config.NewInt(o, 2)},
		config.Field{Key: "a", Value: config.NewInt(o, 3)},
	)

	assert.Equal(t, []string{"a", "b"}, obj.Keys())

	v, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, "3", v.Render())
}

func TestObject_ResolveStatus(t *testing.T) {
	t.Parallel()

	o := testOrigin()
	inner := config.NewObject(o, config.Field{Key: "s", Value: subst(t, "x")})
	outer := config.NewObject(o, config.Field{Key: "inner", Value: inner})

	assert.Equal(t, config.Unresolved, inner.ResolveStatus())
	assert.Equal(t, config.Unresolved, outer.ResolveStatus())

	cleaned := outer.WithoutPath(config.NewPath("inner", "s"))
	assert.Equal(t, config.Resolved, cleaned.ResolveStatus())
}

func TestFromAny(t *testing.T) {
	t.Parallel()

	stamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	v, err := config.FromAny(testOrigin(), map[string]any{
		"u8":    uint8(200),
		"u64":   uint64(math.MaxUint64),
		"f32":   float32(1.5),
		"stamp": stamp,
	})
	require.NoError(t, err)

	obj, ok := v.(*config.Object)
	require.True(t, ok)

	cfg := obj.ToConfig()

	u8, err := cfg.GetInt("u8")
	require.NoError(t, err)
	assert.Equal(t, 200, u8)

	u64, err := cfg.GetNumber("u64")
	require.NoError(t, err)
	assert.Equal(t, config.NumberDouble, u64.Kind())

	f32, err := cfg.GetDouble("f32")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, f32, 1e-9)

	s, err := cfg.GetString("stamp")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T03:04:05Z", s)

	_, err = config.FromAny(testOrigin(), struct{}{})
	require.ErrorIs(t, err, config.ErrWrongType)
}

func TestParseSubstitutions(t *testing.T) {
	t.Parallel()

	o := testOrigin()

	plain, err := config.ParseSubstitutions(o, "just text", config.Unquoted)
	require.NoError(t, err)
	assert.IsType(t, &config.String{}, plain)

	single, err := config.ParseSubstitutions(o, "${?a.b}", config.Unquoted)
	require.NoError(t, err)

	sub, ok := single.(*config.Substitution)
	require.True(t, ok)
	assert.True(t, sub.Optional())
	assert.Equal(t, "a.b", sub.Path().Render())

	mixed, err := config.ParseSubstitutions(o, "x-${a}-y", config.Unquoted)
	require.NoError(t, err)

	concat, ok := mixed.(*config.Concatenation)
	require.True(t, ok)
	assert.Len(t, concat.Parts(), 3)
	assert.Equal(t, "x-${a}-y", concat.Render())

	_, err = config.ParseSubstitutions(o, "${a", config.Unquoted)
	require.ErrorIs(t, err, config.ErrParse)

	_, err = config.ParseSubstitutions(o, "${a..b}", config.Unquoted)
	require.ErrorIs(t, err, config.ErrParse)
}

func TestNewDelayedMerge_Flattens(t *testing.T) {
	t.Parallel()

	o := config.NewOrigin("test")
	path, err := config.ParsePath("a")
	require.NoError(t, err)

	inner := config.NewDelayedMerge(o, config.NewSubstitution(o, path, true), config.NewInt(o, 1))
	outer := config.NewDelayedMerge(o, inner, config.NewInt(o, 2))

	assert.Len(t, outer.Layers(), 3)
	assert.Equal(t, config.TypeUnresolved, outer.Type())
	assert.Equal(t, config.Unresolved, outer.ResolveStatus())
	assert.Equal(t, "${?a} over 1 over 2", outer.Render())
}
