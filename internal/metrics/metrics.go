package metrics

import (
	"sync"
	"time"
)

type leagueStats struct {
	upstreamCalls   int
	upstreamErrors  int
	lastCallLatency time.Duration
}

type cacheStats struct {
	hits        int
	misses      int
	staleServes int
}

// Recorder captures lightweight, in-memory metrics about upstream calls,
// cache behavior and per-league outcomes. It is intentionally simple so it
// can be swapped for a real backend later.
type Recorder struct {
	mu       sync.Mutex
	leagues  map[string]*leagueStats
	cache    cacheStats
	outcomes map[string]int
	otel     *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		leagues:  make(map[string]*leagueStats),
		outcomes: make(map[string]int),
		otel:     otel,
	}
}

// RecordUpstreamAttempt increments counters for an upstream call for a league
// and stores the last observed latency.
func (r *Recorder) RecordUpstreamAttempt(league, operation string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(league)
	r.mu.Lock()
	stats.upstreamCalls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.upstreamErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordUpstreamAttempt(league, operation, duration, err)
	}
}

// RecordCacheHit tracks a fresh cache hit that avoided an upstream call.
func (r *Recorder) RecordCacheHit(operation string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cache.hits++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCache(operation, "hit")
	}
}

// RecordCacheMiss tracks a request that had to go to the live path.
func (r *Recorder) RecordCacheMiss(operation string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cache.misses++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCache(operation, "miss")
	}
}

// RecordStaleServe tracks an expired entry served after a live failure.
func (r *Recorder) RecordStaleServe(operation string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cache.staleServes++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCache(operation, "stale")
	}
}

// RecordOutcome tracks the provenance of one league's result.
func (r *Recorder) RecordOutcome(league, source string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.outcomes[league+"/"+source]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordOutcome(league, source)
	}
}

// RecordPacerWait tracks time spent waiting for rate-limit clearance.
func (r *Recorder) RecordPacerWait(duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPacerWait(duration)
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordWarmCycle tracks cache-warmer cycles and errors.
func (r *Recorder) RecordWarmCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordWarmCycle(duration, err)
}

// UpstreamCalls returns the total upstream attempts recorded for a league.
func (r *Recorder) UpstreamCalls(league string) int {
	return r.Snapshot(league).UpstreamCalls
}

// UpstreamErrors returns the total failed attempts recorded for a league.
func (r *Recorder) UpstreamErrors(league string) int {
	return r.Snapshot(league).UpstreamErrors
}

// Outcomes returns how often a league resolved from the given source.
func (r *Recorder) Outcomes(league, source string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcomes[league+"/"+source]
}

// CacheHits returns the fresh-hit count across all operations.
func (r *Recorder) CacheHits() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.hits
}

// CacheMisses returns the miss count across all operations.
func (r *Recorder) CacheMisses() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.misses
}

// StaleServes returns how often stale entries were served as a fallback.
func (r *Recorder) StaleServes() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.staleServes
}

// Snapshot is a copy of the current stats for one league.
type Snapshot struct {
	UpstreamCalls   int
	UpstreamErrors  int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(league string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.leagues[league]; ok && stats != nil {
		return Snapshot{
			UpstreamCalls:   stats.upstreamCalls,
			UpstreamErrors:  stats.upstreamErrors,
			LastCallLatency: stats.lastCallLatency,
		}
	}
	return Snapshot{}
}

func (r *Recorder) ensureStats(league string) *leagueStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.leagues[league]
	if !ok {
		stats = &leagueStats{}
		r.leagues[league] = stats
	}
	return stats
}
