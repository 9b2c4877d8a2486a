package config_test

import (
	"errors"
	"testing"

	"github.com/0xalexb/hjarta-config/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	changed bool
	err     error
}

func (s *serverConfig) SetDefaults() bool {
	if s.Host == "" {
		s.Host = "localhost"
		s.changed = true
	}

	return s.changed
}

func (s *serverConfig) Validate() error {
	return s.err
}

type plainConfig struct {
	Name string   `yaml:"name"`
	Tags []string `yaml:"tags"`
}

type mockParser struct {
	parseFunc func(data []byte, opts config.ParseOptions) (*config.Object, error)
}

func (m *mockParser) Parse(data []byte, opts config.ParseOptions) (*config.Object, error) {
	return m.parseFunc(data, opts)
}

type mockDataFetcher struct {
	fetchFunc func() ([]byte, error)
}

func (m *mockDataFetcher) Fetch() ([]byte, error) {
	return m.fetchFunc()
}

func TestProvider_DecodesSection(t *testing.T) {
	t.Parallel()

	cfg := fromMap(t, map[string]any{
		"server": map[string]any{"host": "example.com", "port": 8080},
	})

	target := &serverConfig{}

	result, err := config.Provider(target, "server")(cfg)
	require.NoError(t, err)
	assert.Same(t, target, result)
	assert.Equal(t, "example.com", result.Host)
	assert.Equal(t, 8080, result.Port)
	assert.False(t, result.changed)
}

func TestProvider_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg := fromMap(t, map[string]any{"server": map[string]any{"port": 1}})

	result, err := config.Provider(&serverConfig{}, "server")(cfg)
	require.NoError(t, err)
	assert.Equal(t, "localhost", result.Host)
	assert.True(t, result.changed)
}

func TestProvider_Errors(t *testing.T) {
	t.Parallel()

	errInvalid := errors.New("invalid")

	tests := []struct {
		name    string
		cfg     *config.Config
		target  *serverConfig
		path    string
		wantErr error
	}{
		{
			name:    "missing section",
			cfg:     fromMap(t, map[string]any{}),
			target:  &serverConfig{},
			path:    "server",
			wantErr: config.ErrMissing,
		},
		{
			name:    "section is not an object",
			cfg:     fromMap(t, map[string]any{"server": "nope"}),
			target:  &serverConfig{},
			path:    "server",
			wantErr: config.ErrWrongType,
		},
		{
			name:    "validation fails",
			cfg:     fromMap(t, map[string]any{"server": map[string]any{"host": "h"}}),
			target:  &serverConfig{err: errInvalid},
			path:    "server",
			wantErr: errInvalid,
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			result, err := config.Provider(testInfo.target, testInfo.path)(testInfo.cfg)

			require.Error(t, err)
			assert.ErrorIs(t, err, testInfo.wantErr)
			assert.Nil(t, result)
		})
	}
}

func TestDecode_WholeTree(t *testing.T) {
	t.Parallel()

	cfg := fromMap(t, map[string]any{"name": "svc", "tags": []any{"a", "b"}})

	var target plainConfig

	require.NoError(t, config.Decode(cfg, "", &target))
	assert.Equal(t, plainConfig{Name: "svc", Tags: []string{"a", "b"}}, target)
}

func TestParse(t *testing.T) {
	t.Parallel()

	errFetch := errors.New("fetch failed")
	errParse := errors.New("parse failed")

	var gotOpts config.ParseOptions

	parser := &mockParser{parseFunc: func(data []byte, opts config.ParseOptions) (*config.Object, error) {
		gotOpts = opts

		if string(data) == "bad" {
			return nil, errParse
		}

		return config.NewObject(opts.Origin(),
			config.Field{Key: "raw", Value: config.NewString(opts.Origin(), string(data), config.Quoted)},
		), nil
	}}

	cfg, err := config.Parse(parser, &mockDataFetcher{fetchFunc: func() ([]byte, error) {
		return []byte("hello"), nil
	}}, config.ParseOptions{Filename: "app.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "app.yaml", gotOpts.Filename)

	raw, err := cfg.GetString("raw")
	require.NoError(t, err)
	assert.Equal(t, "hello", raw)

	_, err = config.Parse(parser, &mockDataFetcher{fetchFunc: func() ([]byte, error) {
		return nil, errFetch
	}}, config.ParseOptions{})
	require.ErrorIs(t, err, errFetch)

	_, err = config.Parse(parser, &mockDataFetcher{fetchFunc: func() ([]byte, error) {
		return []byte("bad"), nil
	}}, config.ParseOptions{})
	require.ErrorIs(t, err, errParse)
}

func TestParseOptions_Origin(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "app.yaml: 1", config.ParseOptions{Filename: "app.yaml"}.Origin().Description())
	assert.Equal(t, "inline", config.ParseOptions{OriginDescription: "inline"}.Origin().Description())
	assert.Equal(t, "unnamed source", config.ParseOptions{}.Origin().Description())
}

func TestConfig_CheckValid(t *testing.T) {
	t.Parallel()

	cfg := scenarioTree(t)

	err := cfg.CheckValid(config.Empty("reference"))
	require.ErrorIs(t, err, config.ErrNotImplemented)
}
