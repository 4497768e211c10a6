package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamed0406/sitewatch/internal/config"
	"github.com/hamed0406/sitewatch/internal/monitor"
)

// validateCmd checks the environment and URL list without probing anything.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and the URL list",
	Long: `Check that required credentials are set and the URL list parses.

Exit codes:
  0 - Configuration is valid
  1 - Configuration is invalid (details printed to stderr)`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	urls, err := monitor.LoadURLList(cfg.URLsFile)
	if err != nil {
		return fmt.Errorf("invalid url list: %w", err)
	}

	store := "file: " + cfg.StatusFile
	if cfg.DatabaseURL != "" {
		store = "postgres"
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  URL list:      %s (%d URLs)\n", cfg.URLsFile, len(urls))
	fmt.Printf("  Interval:      %s\n", cfg.CheckInterval)
	fmt.Printf("  Probe timeout: %s\n", cfg.ProbeTimeout)
	fmt.Printf("  Status store:  %s\n", store)
	return nil
}
