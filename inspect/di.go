package inspect

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/0xalexb/hjarta-config/config"

	"go.uber.org/fx"
)

// SectionPath is the configuration section the listener reads its own
// settings from when no options are given.
const SectionPath = "inspect"

// NewModule creates an Fx module serving the *config.Config found in the
// container. Options take precedence over the "inspect" section of that
// configuration; without either the default address is used.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(opts ...Option) fx.Option {
	return fx.Module("inspect",
		fx.Invoke(func(lifecycle fx.Lifecycle, shutdowner fx.Shutdowner, cfg *config.Config) error {
			settings, err := settingsFor(cfg, opts)
			if err != nil {
				return err
			}

			srv, err := NewServer(cfg, settings, func() {
				shutdownErr := shutdowner.Shutdown()
				if shutdownErr != nil {
					slog.Error("failed to trigger shutdown", "error", shutdownErr)
				}
			})
			if err != nil {
				return err
			}

			lifecycle.Append(fx.Hook{
				OnStart: srv.Start,
				OnStop:  srv.Stop,
			})

			return nil
		}),
	)
}

func settingsFor(cfg *config.Config, opts []Option) (Config, error) {
	var settings Config

	if len(opts) > 0 {
		for _, apply := range opts {
			apply(&settings)
		}

		return settings, nil
	}

	err := config.Decode(cfg, SectionPath, &settings)
	if err != nil && !errors.Is(err, config.ErrMissing) {
		return Config{}, fmt.Errorf("reading %q section: %w", SectionPath, err)
	}

	return settings, nil
}
