package commands

import (
	hjarta "github.com/0xalexb/hjarta-config"
	"github.com/0xalexb/hjarta-config/inspect"

	"github.com/spf13/cobra"
)

func newServeCommand(flags *globalFlags) *cobra.Command {
	var (
		addr           string
		allowedOrigins []string
		rateLimit      float64
		burst          int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the configuration read-only over HTTP",
		Long: `Load the configuration once and serve it over HTTP until interrupted.

Routes: GET /entries, GET /values/{path}?type=T, GET /has/{path}, GET /metrics.
Without flags the listener settings come from the "inspect" section.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			loaderOpts, err := flags.loaderOptions()
			if err != nil {
				return err
			}

			var inspectOpts []inspect.Option
			if addr != "" {
				inspectOpts = append(inspectOpts, inspect.WithAddress(addr))
			}

			if len(allowedOrigins) > 0 {
				inspectOpts = append(inspectOpts, inspect.WithAllowedOrigins(allowedOrigins...))
			}

			if rateLimit > 0 {
				inspectOpts = append(inspectOpts, inspect.WithRateLimit(rateLimit, burst))
			}

			app := hjarta.NewApp(
				hjarta.WithLogLevel(flags.logLevel),
				hjarta.WithConfig(loaderOpts...),
				hjarta.WithInspector(inspectOpts...),
			)

			err = app.Err()
			if err != nil {
				return err //nolint:wrapcheck
			}

			app.Run()

			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, e.g. 127.0.0.1:7070")
	cmd.Flags().StringArrayVar(&allowedOrigins, "allow-origin", nil, "Origin allowed to read through CORS; repeat for more")
	cmd.Flags().Float64Var(&rateLimit, "rate-limit", 0, "Requests per second allowed (default 50)")
	cmd.Flags().IntVar(&burst, "burst", inspect.DefaultBurst, "Requests allowed above the rate limit")

	return cmd
}
