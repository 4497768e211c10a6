package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/sitewatch/internal/domain"
	"github.com/hamed0406/sitewatch/internal/notify"
	"github.com/hamed0406/sitewatch/internal/probe"
	"github.com/hamed0406/sitewatch/internal/store"
)

// ReminderAfter is how long a site must stay down after the last report
// before a repeat notification goes out.
const ReminderAfter = 24 * time.Hour

// Engine runs one check cycle: load the URL list, probe each URL,
// apply the transition policy against the store, notify on qualifying
// transitions, and persist when anything changed.
type Engine struct {
	Logger   *zap.Logger
	Store    store.StatusStore
	Checker  probe.Checker
	Notifier notify.Notifier

	URLsFile      string
	ProbeTimeout  time.Duration
	ProbePause    time.Duration // politeness pause between probes, not correctness
	ReminderAfter time.Duration

	// mu makes cycles and the shutdown flush mutually exclusive.
	mu sync.Mutex
}

func NewEngine(
	logger *zap.Logger,
	st store.StatusStore,
	checker probe.Checker,
	notifier notify.Notifier,
	urlsFile string,
	probeTimeout time.Duration,
	probePause time.Duration,
) *Engine {
	if probeTimeout <= 0 {
		probeTimeout = 5 * time.Second
	}
	return &Engine{
		Logger:        logger,
		Store:         st,
		Checker:       checker,
		Notifier:      notifier,
		URLsFile:      urlsFile,
		ProbeTimeout:  probeTimeout,
		ProbePause:    probePause,
		ReminderAfter: ReminderAfter,
	}
}

// RunCycle performs one full pass over the configured URLs. Failures are
// isolated per URL; nothing here aborts the rest of the cycle.
func (e *Engine) RunCycle(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	urls, err := LoadURLList(e.URLsFile)
	if err != nil {
		e.Logger.Warn("url_list_error", zap.String("path", e.URLsFile), zap.Error(err))
		return
	}

	start := time.Now()
	dirty := false
	for i, u := range urls {
		if i > 0 && e.ProbePause > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(e.ProbePause):
			}
		}
		if ctx.Err() != nil {
			break
		}

		cctx, cancel := context.WithTimeout(ctx, e.ProbeTimeout)
		out := e.Checker.Check(cctx, u)
		cancel()

		if e.apply(ctx, u, out) {
			dirty = true
		}
	}

	if dirty {
		if err := e.Store.Save(ctx); err != nil {
			// in-memory state stays authoritative; next save retries
			e.Logger.Error("status_save_error", zap.Error(err))
		}
	}

	e.Logger.Info("cycle_done",
		zap.Int("urls", len(urls)),
		zap.Bool("dirty", dirty),
		zap.Duration("took", time.Since(start)),
	)
}

// apply runs the transition policy for one URL and reports whether the
// stored record changed.
func (e *Engine) apply(ctx context.Context, url string, out probe.CheckResult) bool {
	now := time.Now().UTC()

	rec, ok := e.Store.Get(url)
	if !ok {
		// First sight: record the state, never alert (avoids a storm on
		// first run against an existing outage).
		e.Store.Upsert(domain.StatusRecord{URL: url, IsUp: out.Success, LastCheckDate: now})
		e.Logger.Info("first_seen", zap.String("url", url), zap.Bool("up", out.Success))
		return true
	}

	rec.LastCheckDate = now

	switch {
	case rec.IsUp && out.Success:
		// still up
		e.Store.Upsert(rec)
		return false

	case rec.IsUp && !out.Success:
		rec.IsUp = false
		rec.LastReportDate = &now
		e.Store.Upsert(rec)
		e.Logger.Warn("site_down", zap.String("url", url), zap.String("reason", out.Message))
		e.logDNS(url)
		e.send(ctx, "Website DOWN",
			fmt.Sprintf("URL: %s\nStatus: DOWN\nTime: %s", url, now.Format(time.RFC3339)))
		return true

	case !rec.IsUp && out.Success:
		rec.IsUp = true
		rec.LastReportDate = &now
		e.Store.Upsert(rec)
		e.Logger.Info("site_recovered", zap.String("url", url))
		e.send(ctx, "Website RECOVERED",
			fmt.Sprintf("URL: %s\nStatus: UP\nTime: %s", url, now.Format(time.RFC3339)))
		return true

	default: // still down
		if rec.LastReportDate == nil {
			// defensive: a down transition always sets it
			e.Store.Upsert(rec)
			return false
		}
		elapsed := now.Sub(*rec.LastReportDate)
		if elapsed < e.ReminderAfter {
			e.Store.Upsert(rec)
			return false
		}
		hours := int(elapsed.Hours())
		rec.LastReportDate = &now
		e.Store.Upsert(rec)
		e.Logger.Warn("site_still_down", zap.String("url", url), zap.Int("hours", hours))
		e.send(ctx, "Website STILL DOWN",
			fmt.Sprintf("URL: %s\nStatus: DOWN\nDown for: %d hours\nTime: %s",
				url, hours, now.Format(time.RFC3339)))
		return true
	}
}

// send is best-effort. The caller has already updated lastReportDate, so
// a failed delivery is not retried until the reminder threshold passes.
func (e *Engine) send(ctx context.Context, title, text string) {
	if e.Notifier == nil {
		return
	}
	if err := e.Notifier.Send(ctx, title, text); err != nil {
		e.Logger.Error("notify_error", zap.String("title", title), zap.Error(err))
	}
}

func (e *Engine) logDNS(target string) {
	dns := probe.CheckDNS(probe.ExtractHost(target))
	e.Logger.Info("dns_check",
		zap.String("domain", dns.Domain),
		zap.String("class", dns.Class),
		zap.Bool("has_a_or_aaaa", dns.HasAOrAAAA),
		zap.Strings("nameservers", dns.Nameservers),
		zap.String("cname", dns.CNAME),
		zap.String("resolver_error", dns.ResolverError),
	)
}

// Flush persists the store unconditionally. Used on shutdown; mutually
// exclusive with an in-flight cycle.
func (e *Engine) Flush(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Store.Save(ctx)
}
