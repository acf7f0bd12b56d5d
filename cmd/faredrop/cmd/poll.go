package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/app"
)

func pollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Run one polling pass and print its summary",
		Long: "Poll every active watch once, record snapshots, send due alerts and\n" +
			"print the run summary as JSON. Intended for cron jobs and debugging.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			a, err := app.New(ctx, cfg, log, Version)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(context.WithoutCancel(ctx)); err != nil {
					log.Warn("closing resources", "error", err)
				}
			}()

			summary, err := a.Engine.RunPoll(ctx)
			if err != nil {
				return fmt.Errorf("polling: %w", err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
}
