package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/app"
)

func reapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reap",
		Short: "Delete price snapshots past their retention window",
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

			n, err := a.Engine.RunSnapshotReap(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d expired snapshots.\n", n)
			return nil
		},
	}
}
