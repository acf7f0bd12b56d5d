package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func pollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Run a polling pass on the server now",
		Long: "Ask the server to poll every active watch immediately and wait for\n" +
			"the summary. The server must have api.enable_poll_trigger set.",
		Example: `  fdt poll`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			summary, err := c.TriggerPoll(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(summary)
			}
			return printPollSummary(os.Stdout, summary)
		},
	}
}
