package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Cycler is what the runner drives; satisfied by *monitor.Engine.
type Cycler interface {
	RunCycle(ctx context.Context)
}

// Runner invokes the engine once immediately, then on every tick.
// Cycles run on this goroutine, so they can never overlap: ticks that
// arrive while a cycle is still in flight coalesce in the ticker.
type Runner struct {
	Logger   *zap.Logger
	Engine   Cycler
	Interval time.Duration
}

func NewRunner(logger *zap.Logger, engine Cycler, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Runner{Logger: logger, Engine: engine, Interval: interval}
}

// Run blocks until ctx is cancelled. The first cycle happens before the
// ticker starts so state is fresh immediately, not after one interval.
func (r *Runner) Run(ctx context.Context) {
	r.Engine.RunCycle(ctx)

	t := time.NewTicker(r.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("runner_stopped")
			return
		case <-t.C:
			r.Engine.RunCycle(ctx)
		}
	}
}
