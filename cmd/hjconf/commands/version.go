package commands

import (
	"fmt"

	hjarta "github.com/0xalexb/hjarta-config"

	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "version: %s\nengine: %s\ncompiled at: %s\n",
				hjarta.Version, hjarta.EngineVersion, hjarta.CompiledAt)

			return err //nolint:wrapcheck
		},
	}
}
