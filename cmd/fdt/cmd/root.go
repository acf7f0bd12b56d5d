// Package cmd implements the fdt CLI commands.
package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/venkatadeepikapotu/faredrop-tracker/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "fdt",
		Short: "CLI client for FareDrop Tracker",
		Long: "fdt is a command-line client for the FareDrop Tracker API.\n" +
			"It lets you manage flight price watches, inspect price history,\n" +
			"check fare provider quota and trigger a polling run.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.fdt.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("token", "", "bearer token for the API (env FDT_TOKEN)")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		Duration("timeout", 30*time.Second, "per-request timeout (a poll trigger can take minutes)")

	for _, name := range []string{"server", "token", "output", "timeout"} {
		cobra.CheckErr(viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)))
	}

	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(quotaCmd())
	rootCmd.AddCommand(pollCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".fdt")
	}

	viper.SetEnvPrefix("FDT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"),
		apiclient.WithToken(viper.GetString("token")),
		apiclient.WithUserAgent("fdt"),
		apiclient.WithHTTPClient(&http.Client{Timeout: viper.GetDuration("timeout")}),
	)
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
