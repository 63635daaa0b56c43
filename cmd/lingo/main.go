package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// options holds the command line flags shared by the subcommands
type options struct {
	configFile string
	provider   string
	port       string
	target     string
	file       string
}

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := newRootCommand(logger).Execute(); err != nil {
		logger.Error("Command failed", zap.Error(err))
		os.Exit(1)
	}
}

// newRootCommand creates the lingo command tree. Running it without a subcommand serves the widget.
func newRootCommand(logger *zap.Logger) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "lingo",
		Short: "Vocabulary widget that rotates word pairs",
		Long: `lingo shows a word in your native language, reveals its translation
after a countdown and then moves on to the next word.

Examples:
  lingo                              # Serve the widget (default)
  lingo serve --provider redis       # Serve words stored in redis
  lingo import --to sqlite           # Copy the vocabulary file into sqlite`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "display config file (yaml, json or toml)")
	setupServeFlags(rootCmd, opts)

	rootCmd.AddCommand(newServeCommand(opts, logger))
	rootCmd.AddCommand(newImportCommand(opts, logger))

	return rootCmd
}

func newServeCommand(opts *options, logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the widget over HTTP and Telegram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, logger)
		},
	}
	setupServeFlags(cmd, opts)
	return cmd
}

func setupServeFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.provider, "provider", "", "vocabulary provider (custom, postgres, sqlite, redis, openai)")
	cmd.Flags().StringVar(&opts.port, "port", "", "HTTP port (overrides HTTP_PORT)")
}

func newImportCommand(opts *options, logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store the vocabulary file in a database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts, logger)
		},
	}
	cmd.Flags().StringVar(&opts.target, "to", "", "destination store (postgres, sqlite, redis)")
	cmd.Flags().StringVar(&opts.file, "file", "", "vocabulary file (overrides VOCABULARY_FILE)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
