package json

import (
	"testing"

	"github.com/0xalexb/hjarta-config/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse_JSONC(t *testing.T) {
	t.Parallel()

	data := []byte(`{
  // listener settings
  "server": {
    "host": "localhost",
    "port": 8080,
  },
  "tags": ["a", "b"],
  "debug": null
}`)

	root, err := NewParser().Parse(data, config.ParseOptions{Filename: "app.jsonc"})
	require.NoError(t, err)

	cfg := config.New(root)

	host, err := cfg.GetString("server.host")
	require.NoError(t, err)
	assert.Equal(t, "localhost", host)

	port, err := cfg.GetInt("server.port")
	require.NoError(t, err)
	assert.Equal(t, 8080, port)

	tags, err := cfg.GetStringList("tags")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tags)

	hasDebug, err := cfg.HasPath("debug")
	require.NoError(t, err)
	assert.False(t, hasDebug)

	v, err := cfg.GetValue("server.port")
	require.NoError(t, err)
	assert.Equal(t, 5, v.Origin().Line())
}

func TestParser_Parse_StringsAreLiteral(t *testing.T) {
	t.Parallel()

	root, err := NewParser().Parse([]byte(`{"a": "${b}"}`), config.ParseOptions{})
	require.NoError(t, err)

	cfg := config.New(root)
	assert.True(t, cfg.IsResolved())

	a, err := cfg.GetString("a")
	require.NoError(t, err)
	assert.Equal(t, "${b}", a)
}

func TestParser_Parse_ArrayRootFails(t *testing.T) {
	t.Parallel()

	_, err := NewParser().Parse([]byte(`[1, 2]`), config.ParseOptions{})

	require.Error(t, err)
}
