package inspect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/0xalexb/hjarta-config/config"
)

// ReadHeaderTimeout is the default timeout for reading request headers.
const ReadHeaderTimeout = 10 * time.Second

// Server serves one configuration over HTTP.
type Server struct {
	config     Config
	server     *http.Server
	listener   net.Listener
	onServeErr func()
}

// NewServer creates a Server exposing cfg. Settings get defaults and are
// validated. The onServeErr callback, if non-nil, is called when the
// background Serve goroutine encounters a fatal error.
func NewServer(cfg *config.Config, settings Config, onServeErr func()) (*Server, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	settings.SetDefaults()

	err := settings.Validate()
	if err != nil {
		return nil, err
	}

	return &Server{
		config: settings,
		server: &http.Server{ //nolint:exhaustruct // only relevant fields needed
			Addr:              settings.Address,
			Handler:           newRouter(cfg, settings),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		listener:   nil,
		onServeErr: onServeErr,
	}, nil
}

// Addr returns the address the server listens on once started.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}

	return s.server.Addr
}

// Start begins listening on TCP and serves requests in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	listenCfg := net.ListenConfig{} //nolint:exhaustruct // zero-value defaults are fine

	listener, err := listenCfg.Listen(ctx, "tcp", s.server.Addr)
	if err != nil {
		slog.Error("failed to listen", "address", s.server.Addr, "error", err)

		return fmt.Errorf("%w: %w", ErrListenFailed, err)
	}

	s.listener = listener

	slog.Info("serving configuration", "address", listener.Addr().String())

	go func() {
		serveErr := s.server.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("inspection listener error", "error", serveErr)

			if s.onServeErr != nil {
				s.onServeErr()
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	slog.Info("stopping inspection listener")

	err := s.server.Shutdown(ctx)
	if err != nil {
		slog.Error("shutdown failed", "error", err)

		return fmt.Errorf("%w: %w", ErrShutdownFailed, err)
	}

	return nil
}
