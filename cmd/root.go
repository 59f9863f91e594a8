// Package cmd defines the leadscout command-line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/finsignal/leadscout/internal/app"
	"github.com/finsignal/leadscout/internal/config"
	"github.com/finsignal/leadscout/internal/logging"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leadscout",
		Short: "Discovers and enriches business leads from filings and web search.",
		Long: `leadscout finds companies that may need short-term financing by
combining UCC-1 filing feeds with web search, then enriches each
candidate with contact information through a multi-step waterfall.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (YAML)")
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newDiscoverCmd())
	return cmd
}

// buildApp loads configuration and assembles the pipeline.
func buildApp() (*app.App, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return app.New(cfg, logger), nil
}

// Execute runs the CLI.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func syncLogger(logger *zap.Logger) {
	// Sync on stderr returns EINVAL on some platforms; nothing to do.
	_ = logger.Sync()
}
