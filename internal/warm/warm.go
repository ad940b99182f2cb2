// Package warm keeps the dashboard-critical cache keys populated by
// re-running the all-league today/live aggregates on an interval.
package warm

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"league-data-service/internal/domain"
	"league-data-service/internal/logging"
	"league-data-service/internal/metrics"
)

const defaultInterval = 2 * time.Minute

// Fetcher is the slice of the aggregator the warmer needs.
type Fetcher interface {
	AllTodayGames(ctx context.Context) map[domain.League]domain.FetchOutcome
	AllLiveGames(ctx context.Context) map[domain.League]domain.FetchOutcome
}

// Warmer runs aggregate fetches on an interval so interactive callers hit a
// warm cache instead of paying for upstream round trips.
type Warmer struct {
	fetcher  Fetcher
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the warm loop.
type Status struct {
	Cycles              int
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the warmer has had a recent success and is not
// failing repeatedly. A cycle counts as a success when at least one league
// resolved to something other than unavailable.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Warmer with sane defaults.
func New(fetcher Fetcher, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Warmer {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Warmer{
		fetcher:  fetcher,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins warming until the context is cancelled or Stop is called.
func (w *Warmer) Start(ctx context.Context) {
	w.startMu.Lock()
	if w.started {
		w.startMu.Unlock()
		return
	}
	w.started = true
	w.startMu.Unlock()

	w.ticker = time.NewTicker(w.interval)

	go func() {
		logging.Info(w.logger, "cache warmer started", logging.FieldDurationMS, w.interval.Milliseconds())
		// Initial cycle to warm the cache on boot.
		w.warmOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				w.stopTicker()
				logging.Info(w.logger, "cache warmer stopped")
				return
			case <-w.done:
				w.stopTicker()
				logging.Info(w.logger, "cache warmer stopped")
				return
			case <-w.ticker.C:
				w.warmOnce(ctx)
			}
		}
	}()
}

// Stop halts the warm loop.
func (w *Warmer) Stop(ctx context.Context) error {
	_ = ctx
	w.stopOnce.Do(func() {
		close(w.done)
		w.stopTicker()
	})
	return nil
}

func (w *Warmer) warmOnce(ctx context.Context) {
	start := time.Now()
	w.recordAttempt(start)

	today := w.fetcher.AllTodayGames(ctx)
	live := w.fetcher.AllLiveGames(ctx)

	resolved := 0
	for _, outcome := range today {
		if outcome.Source != domain.SourceUnavailable {
			resolved++
		}
	}
	for _, outcome := range live {
		if outcome.Source != domain.SourceUnavailable {
			resolved++
		}
	}

	var cycleErr error
	if resolved == 0 {
		cycleErr = firstError(today, live)
		w.recordFailure(cycleErr, start)
		logging.Warn(w.logger, "warm cycle resolved nothing",
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
			"error", cycleErr,
		)
	} else {
		w.recordSuccess(start)
		logging.Info(w.logger, "warm cycle complete",
			logging.FieldCount, resolved,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
	}
	w.metrics.RecordWarmCycle(time.Since(start), cycleErr)
}

func firstError(maps ...map[domain.League]domain.FetchOutcome) error {
	for _, m := range maps {
		for _, outcome := range m {
			if outcome.Error != "" {
				return warmError(outcome.Error)
			}
		}
	}
	return warmError("no league resolved")
}

type warmError string

func (e warmError) Error() string { return string(e) }

func (w *Warmer) stopTicker() {
	if w.ticker != nil {
		w.ticker.Stop()
	}
}

func (w *Warmer) recordAttempt(at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.Cycles++
	w.status.LastAttempt = at
}

func (w *Warmer) recordSuccess(at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.ConsecutiveFailures = 0
	w.status.LastError = ""
	w.status.LastSuccess = at
}

func (w *Warmer) recordFailure(err error, at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.ConsecutiveFailures++
	if err != nil {
		w.status.LastError = err.Error()
	}
	w.status.LastAttempt = at
}

// Status returns a snapshot of the warmer's recent health.
func (w *Warmer) Status() Status {
	w.statusMu.RLock()
	defer w.statusMu.RUnlock()
	return w.status
}
