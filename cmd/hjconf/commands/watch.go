package commands

import (
	"bytes"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/inspect"

	"github.com/spf13/cobra"
)

func newWatchCommand(flags *globalFlags) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "watch PATH",
		Short: "Print the value at a path whenever it changes",
		Long: `Print the value at a path, then reload the configuration whenever one of its
files changes and print the value again if it differs. Runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := flags.loader()
			if err != nil {
				return err
			}

			cfg, err := l.Load()
			if err != nil {
				return err //nolint:wrapcheck
			}

			render := func(cfg *config.Config) ([]byte, error) {
				result, queryErr := inspect.Query(cfg, args[0], kind)
				if queryErr != nil {
					return nil, queryErr //nolint:wrapcheck
				}

				var buf bytes.Buffer

				printErr := printValue(&buf, result.Value)

				return buf.Bytes(), printErr
			}

			last, err := render(cfg)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(last)
			if err != nil {
				return err //nolint:wrapcheck
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return l.Watch(ctx, func(cfg *config.Config) { //nolint:wrapcheck
				out, renderErr := render(cfg)
				if renderErr != nil {
					slog.Warn("query failed after reload", "path", args[0], "error", renderErr)

					return
				}

				if bytes.Equal(out, last) {
					return
				}

				last = out

				_, writeErr := cmd.OutOrStdout().Write(out)
				if writeErr != nil {
					slog.Error("failed to print value", "error", writeErr)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "", "Read through the typed getter of this kind")

	return cmd
}
