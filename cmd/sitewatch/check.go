package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/sitewatch/internal/config"
	"github.com/hamed0406/sitewatch/internal/logging"
	"github.com/hamed0406/sitewatch/internal/monitor"
)

// checkCmd runs exactly one cycle. Useful from a real crontab, or for
// smoke-testing credentials and the URL list.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a single check cycle and exit",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	st, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()
	if err := st.Load(ctx); err != nil {
		logger.Warn("status_load_error", zap.Error(err))
	}

	eng := monitor.NewEngine(logger, st, buildChecker(cfg), buildNotifier(cfg),
		cfg.URLsFile, cfg.ProbeTimeout, cfg.ProbePause)
	eng.RunCycle(ctx)

	if err := eng.Flush(ctx); err != nil {
		return fmt.Errorf("flush status: %w", err)
	}
	return nil
}
