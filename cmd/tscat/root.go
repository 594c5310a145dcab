package main

import (
	"time"

	"github.com/loopcontext/tscat"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	flagConfig    = "config"
	flagResources = "resources"
	flagVerbose   = "verbose"
)

// NewRootCommand creates the tscat command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tscat",
		Short: "Qt Linguist .ts catalog tool",
		Long: `tscat reads Qt Linguist translation sources (.ts), resolves messages with
the same fallbacks the tscat library applies at runtime, reports translation
progress and keeps .ts files in sync with Go sources.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String(flagConfig, "", "YAML file with the catalog configuration")
	rootCmd.PersistentFlags().StringP(flagResources, "r", tscat.DefaultResourcePath, "Directory with .ts files")
	rootCmd.PersistentFlags().BoolP(flagVerbose, "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newLookupCommand(),
		newCheckCommand(),
		newConvertCommand(),
		newExtractCommand(),
		newMergeCommand(),
	)

	return rootCmd
}

func newLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose, _ := cmd.Flags().GetBool(flagVerbose); verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        cmd.ErrOrStderr(),
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", "tscat").Logger()
}

// catalogConfig reads --config, then lets explicitly set flags win over the file.
func catalogConfig(cmd *cobra.Command, logger *zerolog.Logger) (tscat.Config, error) {
	var cfg tscat.Config
	flags := cmd.Flags()
	if path, _ := flags.GetString(flagConfig); path != "" {
		loaded, err := tscat.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
		logger.Debug().Str("path", path).Msg("config loaded")
	}

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == flagResources && (f.Changed || cfg.ResourcePath == "") {
			cfg.ResourcePath = f.Value.String()
		}
	})
	cfg.Logger = logger
	// the CLI resolves once and exits
	cfg.WatchChanges = false

	return cfg, nil
}
