package inspect_test

import (
	"context"
	"net"
	"net/http"
	"testing"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/inspect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func freeAddr(t *testing.T) string {
	t.Helper()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	return ln.Addr().String()
}

func status(t *testing.T, url string) int {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req) //nolint:gosec // G704: test code, URL from test server
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode
}

func TestNewModule_WithOptions(t *testing.T) {
	t.Parallel()

	addr := freeAddr(t)

	app := fxtest.New(t,
		fx.Supply(testConfig(t)),
		inspect.NewModule(inspect.WithAddress(addr)),
	)

	app.RequireStart()

	assert.Equal(t, http.StatusOK, status(t, "http://"+addr+"/values/a.b.c"))
	assert.Equal(t, http.StatusNotFound, status(t, "http://"+addr+"/values/nope"))

	app.RequireStop()
}

func TestNewModule_ReadsSection(t *testing.T) {
	t.Parallel()

	addr := freeAddr(t)

	cfg := config.New(config.NewObject(config.NewOrigin("test"),
		config.Field{Key: "inspect", Value: config.NewObject(config.NewOrigin("test"),
			config.Field{Key: "address", Value: config.NewString(config.NewOrigin("test"), addr, config.Quoted)},
		)},
	))

	app := fxtest.New(t,
		fx.Supply(cfg),
		inspect.NewModule(),
	)

	app.RequireStart()

	assert.Equal(t, http.StatusOK, status(t, "http://"+addr+"/has/inspect.address"))

	app.RequireStop()
}

func TestNewModule_BadSection(t *testing.T) {
	t.Parallel()

	cfg := config.New(config.NewObject(config.NewOrigin("test"),
		config.Field{Key: "inspect", Value: config.NewInt(config.NewOrigin("test"), 1)},
	))

	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		inspect.NewModule(),
	)

	require.Error(t, app.Err())
	assert.Contains(t, app.Err().Error(), "rather than OBJECT")
}
