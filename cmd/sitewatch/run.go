package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/sitewatch/internal/config"
	"github.com/hamed0406/sitewatch/internal/httpapi"
	"github.com/hamed0406/sitewatch/internal/logging"
	"github.com/hamed0406/sitewatch/internal/monitor"
	"github.com/hamed0406/sitewatch/internal/notify"
	"github.com/hamed0406/sitewatch/internal/probe"
	"github.com/hamed0406/sitewatch/internal/scheduler"
	"github.com/hamed0406/sitewatch/internal/store"
	"github.com/hamed0406/sitewatch/internal/store/file"
	"github.com/hamed0406/sitewatch/internal/store/postgres"
)

const flushTimeout = 10 * time.Second

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the monitor daemon",
	Long: `Run the monitor: one check cycle immediately, then one per interval.

The daemon persists status after any cycle that changed a record, and
flushes once more on SIGINT/SIGTERM before exiting.`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()
	if err := st.Load(ctx); err != nil {
		logger.Warn("status_load_error", zap.Error(err))
	}

	notifier := buildNotifier(cfg)
	eng := monitor.NewEngine(logger, st, buildChecker(cfg), notifier,
		cfg.URLsFile, cfg.ProbeTimeout, cfg.ProbePause)

	logger.Info("monitor_started",
		zap.String("urls_file", cfg.URLsFile),
		zap.Duration("interval", cfg.CheckInterval),
	)
	if err := notifier.Send(ctx, "Monitor Started",
		fmt.Sprintf("Watching %s\nInterval: %s\nTime: %s",
			cfg.URLsFile, cfg.CheckInterval, time.Now().UTC().Format(time.RFC3339))); err != nil {
		logger.Error("notify_error", zap.Error(err))
	}

	if cfg.StatusAddr != "" {
		api := httpapi.NewServer(logger, st)
		go func() {
			logger.Info("api_listen", zap.String("addr", cfg.StatusAddr))
			err := http.ListenAndServe(cfg.StatusAddr,
				api.Router(cfg.PublicAPIKeys, cfg.StatusRPM, cfg.StatusBurst))
			if err != nil && err != http.ErrServerClosed {
				logger.Error("api_error", zap.Error(err))
			}
		}()
	}

	go scheduler.NewRunner(logger, eng, cfg.CheckInterval).Run(ctx)

	<-ctx.Done()

	// Final persistence, mutually exclusive with any in-flight cycle.
	flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := eng.Flush(flushCtx); err != nil {
		logger.Error("final_flush_error", zap.Error(err))
	}
	logger.Info("monitor_stopped")
	return nil
}

func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (store.StatusStore, func(), error) {
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres store: %w", err)
		}
		return pg, pg.Close, nil
	}
	return file.New(cfg.StatusFile, logger), func() {}, nil
}

func buildNotifier(cfg config.Config) notify.Notifier {
	tg := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
	if slack := notify.NewSlack(cfg.SlackWebhook); slack != nil {
		return notify.Multi{tg, slack}
	}
	return tg
}

func buildChecker(cfg config.Config) probe.Checker {
	var chk probe.Checker = probe.NewHTTPChecker(cfg.ProbeTimeout)
	if cfg.RetryAttempts > 1 {
		chk = &probe.RetryChecker{
			Inner:    chk,
			Attempts: cfg.RetryAttempts,
			Backoff:  cfg.RetryBackoff,
		}
	}
	return chk
}
