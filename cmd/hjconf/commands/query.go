package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/0xalexb/hjarta-config/inspect"

	"github.com/spf13/cobra"
)

func newGetCommand(flags *globalFlags) *cobra.Command {
	var (
		kind   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "get PATH",
		Short: "Print the value at a path",
		Long: `Print the value at a path. With --type the value goes through the typed
getter of that kind, so numeric strings become numbers and ranges are checked.

Types: ` + strings.Join(inspect.Types(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}

			result, err := inspect.Query(cfg, args[0], kind)
			if err != nil {
				return err
			}

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")

				return encoder.Encode(result) //nolint:wrapcheck
			}

			return printValue(cmd.OutOrStdout(), result.Value)
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "", "Read through the typed getter of this kind")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print path, type, value and origin as JSON")

	return cmd
}

func printValue(w io.Writer, value any) error {
	if s, ok := value.(string); ok {
		_, err := fmt.Fprintln(w, s)

		return err //nolint:wrapcheck
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding value: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err //nolint:wrapcheck
}

func newHasCommand(flags *globalFlags) *cobra.Command {
	var orNull bool

	cmd := &cobra.Command{
		Use:   "has PATH",
		Short: "Report whether a path is set",
		Long: `Report whether a path is set to a non-null value. With --or-null an explicit
null also counts as set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}

			has := cfg.HasPath
			if orNull {
				has = cfg.HasPathOrNull
			}

			found, err := has(args[0])
			if err != nil {
				return err //nolint:wrapcheck
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), found)

			return err //nolint:wrapcheck
		},
	}

	cmd.Flags().BoolVar(&orNull, "or-null", false, "Count explicit nulls as set")

	return cmd
}

func newEntriesCommand(flags *globalFlags) *cobra.Command {
	var withOrigin bool

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List every non-null setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			for _, entry := range cfg.EntrySet() {
				line := entry.Path + " = " + entry.Value.Render()
				if withOrigin {
					line += "  # " + entry.Value.Origin().Description()
				}

				_, err = fmt.Fprintln(out, line)
				if err != nil {
					return err //nolint:wrapcheck
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&withOrigin, "origin", false, "Append where each setting came from")

	return cmd
}
