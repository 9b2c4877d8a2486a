// Package commands provides the hjconf command tree.
package commands

import (
	"fmt"
	"log/slog"

	hjarta "github.com/0xalexb/hjarta-config"
	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/loader"
	"github.com/0xalexb/hjarta-config/logging"

	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	files           []string
	globs           []string
	dotenv          []string
	env             bool
	envLayer        bool
	allowUnresolved bool
	noIncludes      bool
	logLevel        string
	logFormat       string
}

// NewRootCommand builds the hjconf command tree.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "hjconf",
		Short: "Query layered configuration files",
		Long: `hjconf merges configuration files (YAML, JSON with comments, TOML) so that
later files override earlier ones, resolves ${path} substitutions, and answers
typed queries against the result.

Examples:
  hjconf -f defaults.toml -f app.yaml get server.port --type int
  hjconf -f app.yaml --env has database.password
  hjconf -f app.yaml --dotenv .env entries
  hjconf -f app.yaml -g 'conf.d/*.yaml' watch server.port`,
		Version:       hjarta.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := logging.NewLogger(logging.LoggerConfig{Level: flags.logLevel, Format: flags.logFormat}, cmd.ErrOrStderr())
			slog.SetDefault(logger)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("hjconf %s (engine %s, built %s)\n",
		hjarta.Version, hjarta.EngineVersion, hjarta.CompiledAt))

	persistent := rootCmd.PersistentFlags()
	persistent.StringArrayVarP(&flags.files, "file", "f", nil, "Configuration file; repeat to layer, later files win")
	persistent.StringArrayVarP(&flags.globs, "glob", "g", nil, "Glob of configuration files, e.g. 'conf.d/*.yaml'; layered after --file")
	persistent.StringArrayVar(&flags.dotenv, "dotenv", nil, "Dotenv file consulted for substitutions; repeat for more")
	persistent.BoolVar(&flags.env, "env", false, "Consult the process environment for substitutions")
	persistent.BoolVar(&flags.envLayer, "env-layer", false, "Also add environment variables as the lowest layer")
	persistent.BoolVar(&flags.allowUnresolved, "allow-unresolved", false, "Keep substitutions that cannot be resolved")
	persistent.BoolVar(&flags.noIncludes, "no-includes", false, "Fail on include directives instead of reading files")
	persistent.StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")
	persistent.StringVar(&flags.logFormat, "log-format", "text", "Log format (text|json)")

	rootCmd.AddCommand(
		newGetCommand(flags),
		newHasCommand(flags),
		newEntriesCommand(flags),
		newServeCommand(flags),
		newWatchCommand(flags),
		newVersionCommand(),
	)

	return rootCmd
}

// loaderOptions maps the global flags onto loader options.
func (f *globalFlags) loaderOptions() ([]loader.Option, error) {
	opts := []loader.Option{loader.WithFiles(f.files...), loader.WithGlob(f.globs...)}

	var sources loader.OverlayEnv

	if f.env {
		sources = append(sources, config.OSEnv{})
	}

	if len(f.dotenv) > 0 {
		dotenv, err := loader.DotenvSource(f.dotenv...)
		if err != nil {
			return nil, err
		}

		sources = append(sources, dotenv)
	}

	if len(sources) > 0 {
		opts = append(opts, loader.WithEnv(sources), loader.WithEnvFallback(f.envLayer))
	}

	if f.allowUnresolved {
		opts = append(opts, loader.WithResolveOptions(config.WithAllowUnresolved(true)))
	}

	if f.noIncludes {
		opts = append(opts, loader.WithoutIncludes())
	}

	return opts, nil
}

func (f *globalFlags) loader() (*loader.Loader, error) {
	opts, err := f.loaderOptions()
	if err != nil {
		return nil, err
	}

	return loader.New(opts...), nil
}

func (f *globalFlags) load() (*config.Config, error) {
	l, err := f.loader()
	if err != nil {
		return nil, err
	}

	return l.Load()
}
