package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/venkatadeepikapotu/faredrop-tracker/internal/api/client"
	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

func watchCmd() *cobra.Command {
	watchRoot := &cobra.Command{
		Use:   "watches",
		Short: "Manage price watches",
		Long: "Manage flight price watches. A watch follows one route and date and\n" +
			"triggers an alert when the cheapest fare drops below its threshold.",
	}

	watchRoot.AddCommand(
		watchListCmd(),
		watchGetCmd(),
		watchCreateCmd(),
		watchUpdateCmd(),
		watchEnableCmd(),
		watchDisableCmd(),
		watchDeleteCmd(),
		watchHistoryCmd(),
	)

	return watchRoot
}

func watchListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your watches",
		Example: `  fdt watches list
  fdt watches list --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			watches, err := c.ListWatches(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(watches)
			}
			if len(watches) == 0 {
				fmt.Println("No watches found.")
				return nil
			}
			return printWatchTable(os.Stdout, watches)
		},
	}
}

func watchGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show watch details",
		Example: `  fdt watches get 0b6c9a7e-5d1f-4c1a-9a57-1f0e2f3c4d5e
  fdt watches get 0b6c9a7e-5d1f-4c1a-9a57-1f0e2f3c4d5e --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			w, err := c.GetWatch(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(w)
			}
			return printWatchDetail(os.Stdout, w)
		},
	}
}

func watchCreateCmd() *cobra.Command {
	var (
		origin      string
		destination string
		departure   string
		returnDate  string
		threshold   float64
		currency    string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new watch",
		Long: "Create a watch for a route and departure date. Airport codes are\n" +
			"upper-cased by the server and the watch is active immediately.",
		Example: `  # One-way watch
  fdt watches create --from JFK --to LAX --depart 2026-12-20 --threshold 300

  # Round trip in euros
  fdt watches create --from CDG --to JFK --depart 2026-12-20 --return 2027-01-03 \
    --threshold 450 --currency EUR`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := &apiclient.CreateWatchRequest{
				Origin:        origin,
				Destination:   destination,
				DepartureDate: departure,
				Currency:      currency,
			}
			if returnDate != "" {
				req.ReturnDate = &returnDate
			}
			if cmd.Flags().Changed("threshold") {
				req.PriceThreshold = &threshold
			}

			c := newClient()
			created, err := c.CreateWatch(context.Background(), req)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(created)
			}
			fmt.Printf("Watch created: %s (%s)\n", created.Route(), created.WatchID)
			return nil
		},
	}
	cmd.Flags().StringVar(&origin, "from", "", "origin airport code")
	cmd.Flags().StringVar(&destination, "to", "", "destination airport code")
	cmd.Flags().StringVar(&departure, "depart", "", "departure date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&returnDate, "return", "", "return date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "alert when the fare drops below this price")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO currency code (default USD)")

	return cmd
}

func watchUpdateCmd() *cobra.Command {
	var (
		departure  string
		returnDate string
		threshold  float64
		active     bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a watch's threshold, dates or status",
		Example: `  fdt watches update 0b6c9a7e-5d1f-4c1a-9a57-1f0e2f3c4d5e --threshold 250
  fdt watches update 0b6c9a7e-5d1f-4c1a-9a57-1f0e2f3c4d5e --depart 2026-12-21 --active=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := &domain.WatchPatch{}
			flags := cmd.Flags()
			if flags.Changed("threshold") {
				patch.PriceThreshold = &threshold
			}
			if flags.Changed("depart") {
				patch.DepartureDate = &departure
			}
			if flags.Changed("return") {
				patch.ReturnDate = &returnDate
			}
			if flags.Changed("active") {
				patch.IsActive = &active
			}
			if patch.Empty() {
				return errors.New("nothing to update: pass at least one of --threshold, --depart, --return, --active")
			}

			c := newClient()
			updated, err := c.UpdateWatch(context.Background(), args[0], patch)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(updated)
			}
			return printWatchDetail(os.Stdout, updated)
		},
	}
	cmd.Flags().StringVar(&departure, "depart", "", "new departure date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&returnDate, "return", "", "new return date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "new alert threshold")
	cmd.Flags().BoolVar(&active, "active", true, "whether the watch is polled")

	return cmd
}

func watchEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "enable <id>",
		Short:   "Resume polling a watch",
		Example: `  fdt watches enable 0b6c9a7e-5d1f-4c1a-9a57-1f0e2f3c4d5e`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runWatchSetActive(args[0], true)
		},
	}
}

func watchDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "disable <id>",
		Short:   "Pause polling a watch",
		Example: `  fdt watches disable 0b6c9a7e-5d1f-4c1a-9a57-1f0e2f3c4d5e`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runWatchSetActive(args[0], false)
		},
	}
}

func watchDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a watch",
		Example: `  fdt watches delete 0b6c9a7e-5d1f-4c1a-9a57-1f0e2f3c4d5e`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			if err := c.DeleteWatch(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Watch %s deleted.\n", args[0])
			return nil
		},
	}
}

func watchHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <id>",
		Short: "Show recorded prices for a watch, newest first",
		Example: `  fdt watches history 0b6c9a7e-5d1f-4c1a-9a57-1f0e2f3c4d5e
  fdt watches history 0b6c9a7e-5d1f-4c1a-9a57-1f0e2f3c4d5e --limit 10 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			h, err := c.GetHistory(context.Background(), args[0], limit)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(h)
			}
			if h.Count == 0 {
				fmt.Println("No price history recorded yet.")
				return nil
			}
			return printHistoryTable(os.Stdout, h.Snapshots)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum snapshots to return (server default 50)")

	return cmd
}

func runWatchSetActive(id string, active bool) error {
	c := newClient()
	if _, err := c.UpdateWatch(context.Background(), id, &domain.WatchPatch{IsActive: &active}); err != nil {
		return err
	}

	action := "enabled"
	if !active {
		action = "disabled"
	}
	fmt.Printf("Watch %s %s.\n", id, action)
	return nil
}
