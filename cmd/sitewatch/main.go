package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sitewatch",
	Short: "Periodic website reachability monitor with Telegram alerts",
	Long: `sitewatch probes a list of URLs on a fixed interval and alerts a
Telegram chat when a site goes down, recovers, or has been down for more
than 24 hours. Configuration is taken from environment variables.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
