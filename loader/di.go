package loader

import (
	"log/slog"

	"github.com/0xalexb/hjarta-config/config"

	"go.uber.org/fx"
)

// NewModule creates an Fx module that supplies the loaded *config.Config.
// Sections are then decoded with config.Provider:
//
//	fx.Provide(config.Provider(&ServerConfig{}, "server"))
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(opts ...Option) fx.Option {
	return fx.Module("config",
		fx.Provide(func() (*config.Config, error) {
			cfg, err := New(opts...).Load()
			if err != nil {
				slog.Error("failed to load configuration", "error", err)

				return nil, err
			}

			return cfg, nil
		}),
	)
}
