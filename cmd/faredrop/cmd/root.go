// Package cmd implements the CLI commands for faredrop.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/config"
	"github.com/venkatadeepikapotu/faredrop-tracker/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "faredrop",
	Short: "Track flight prices and alert on drops",
	Long: "An API-first service that stores flight price watches, polls a fare\n" +
		"quote provider on a schedule, records price history and sends an alert\n" +
		"when a fare drops below a watch's threshold.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "configs/config.yaml", "config file path")

	rootCmd.AddCommand(
		serveCmd(),
		pollCmd(),
		reapCmd(),
		migrateCmd(),
		versionCommand(),
	)
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, logger.Service(log, "faredrop", Version), nil
}
