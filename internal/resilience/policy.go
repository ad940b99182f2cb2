// Package resilience decides how a single league request is served: fresh
// cache, live upstream call, stale cache, fallback dataset, or nothing.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"league-data-service/internal/cache"
	"league-data-service/internal/domain"
	"league-data-service/internal/fallback"
	"league-data-service/internal/logging"
	"league-data-service/internal/metrics"
	"league-data-service/internal/providers"
	"league-data-service/internal/ratelimit"
)

// ErrNotEntitled marks a live call skipped because the installation's
// entitlement gate is closed. It degrades like any upstream failure.
var ErrNotEntitled = errors.New("caller not entitled to live upstream data")

// Entitlement reports whether live upstream calls may be attempted at all.
type Entitlement interface {
	Entitled() bool
}

// Config wires a Policy. Cache, Pacer and Adapters are required; the rest
// default to permissive no-ops.
type Config struct {
	Cache       *cache.Store
	Pacer       *ratelimit.Pacer
	Adapters    map[domain.League]providers.LeagueAdapter
	Fallback    fallback.Dataset
	Entitlement Entitlement
	Logger      *slog.Logger
	Metrics     *metrics.Recorder

	// TTLs and Timeouts override the per-operation cache lifetimes and
	// upstream deadlines; missing operations use the provider defaults.
	TTLs     map[providers.Operation]time.Duration
	Timeouts map[providers.Operation]time.Duration

	// BreakerThreshold is the consecutive-failure count that opens a
	// league's circuit; BreakerCooldown is how long it stays open.
	BreakerThreshold uint32
	BreakerCooldown  time.Duration
}

// Policy wraps every adapter call with the degradation chain: fresh cache →
// live (entitlement, breaker, pacer, bounded call) → stale cache → fallback
// dataset → unavailable. It never loop-retries a failed call; staleness
// degradation is this system's substitute for retry.
type Policy struct {
	cache       *cache.Store
	pacer       *ratelimit.Pacer
	adapters    map[domain.League]providers.LeagueAdapter
	fallback    fallback.Dataset
	entitlement Entitlement
	breakers    map[domain.League]*gobreaker.CircuitBreaker
	logger      *slog.Logger
	metrics     *metrics.Recorder
	ttls        map[providers.Operation]time.Duration
	timeouts    map[providers.Operation]time.Duration
}

// NewPolicy constructs a Policy from cfg.
func NewPolicy(cfg Config) *Policy {
	leagues := make([]domain.League, 0, len(cfg.Adapters))
	for league := range cfg.Adapters {
		leagues = append(leagues, league)
	}
	return &Policy{
		cache:       cfg.Cache,
		pacer:       cfg.Pacer,
		adapters:    cfg.Adapters,
		fallback:    cfg.Fallback,
		entitlement: cfg.Entitlement,
		breakers:    newBreakers(leagues, cfg.BreakerThreshold, cfg.BreakerCooldown),
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		ttls:        cfg.TTLs,
		timeouts:    cfg.Timeouts,
	}
}

// Execute resolves one request to a FetchOutcome. Runtime failures never
// surface as errors; they are recorded on the outcome. The only fail-fast
// path is requesting an operation no adapter supports.
func (p *Policy) Execute(ctx context.Context, spec providers.RequestSpec) domain.FetchOutcome {
	adapter, ok := p.adapters[spec.League]
	if !ok || !adapter.Supports(spec.Op) {
		return p.finish(domain.FetchOutcome{
			League: spec.League,
			Source: domain.SourceUnavailable,
			Error:  fmt.Sprintf("%v: %s for %s", providers.ErrUnsupportedOperation, spec.Op, spec.League),
		})
	}

	key := cache.Key(spec)
	if entry, ok := p.cache.Get(key); ok {
		p.metrics.RecordCacheHit(string(spec.Op))
		return p.finish(domain.FetchOutcome{
			League: spec.League,
			Source: domain.SourceCache,
			Data:   entry.Data,
		})
	}
	p.metrics.RecordCacheMiss(string(spec.Op))

	// Duplicate concurrent requests for the same key join this load instead
	// of multiplying provider traffic.
	ch := p.cache.DoChan(key, func() (domain.Data, error) {
		return p.load(adapter, spec, key)
	})

	select {
	case res := <-ch:
		if res.Err == nil {
			data, _ := res.Val.(domain.Data)
			return p.finish(domain.FetchOutcome{
				League: spec.League,
				Source: domain.SourceLive,
				Data:   data,
			})
		}
		if !providers.Degradable(res.Err) {
			return p.finish(domain.FetchOutcome{
				League: spec.League,
				Source: domain.SourceUnavailable,
				Error:  res.Err.Error(),
			})
		}
		return p.degrade(ctx, spec, key, res.Err)
	case <-ctx.Done():
		// The caller gave up waiting; the load keeps running and may still
		// populate the cache for later callers.
		err := ctx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = &providers.TimeoutError{Op: spec.Op}
		}
		return p.finish(domain.FetchOutcome{
			League: spec.League,
			Source: domain.SourceUnavailable,
			Error:  err.Error(),
		})
	}
}

// load is the single-flight loader: entitlement gate, circuit breaker, pacer
// clearance, then the adapter call. Success writes the cache. It runs on a
// context detached from any caller deadline, bounded only by the
// operation's own timeout.
func (p *Policy) load(adapter providers.LeagueAdapter, spec providers.RequestSpec, key string) (domain.Data, error) {
	if p.entitlement != nil && !p.entitlement.Entitled() {
		return domain.Data{}, ErrNotEntitled
	}

	result, err := p.breakers[spec.League].Execute(func() (interface{}, error) {
		timeout := p.timeoutFor(spec.Op)
		loadCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		waitStart := time.Now()
		if err := p.pacer.Acquire(loadCtx); err != nil {
			return nil, &providers.TimeoutError{Op: spec.Op, Timeout: timeout}
		}
		p.metrics.RecordPacerWait(time.Since(waitStart))

		start := time.Now()
		data, err := adapter.Fetch(loadCtx, spec)
		p.metrics.RecordUpstreamAttempt(string(spec.League), string(spec.Op), time.Since(start), err)
		if err != nil {
			logging.Warn(p.logger, "upstream fetch failed",
				logging.FieldLeague, string(spec.League),
				logging.FieldOperation, string(spec.Op),
				"error", err,
			)
			return nil, err
		}
		return data, nil
	})
	if err != nil {
		return domain.Data{}, err
	}

	data, _ := result.(domain.Data)
	p.cache.Put(key, data, p.ttlFor(spec.Op))
	return data, nil
}

// degrade serves the best remaining source after a live failure: stale cache
// first, then the fallback dataset, else unavailable. The triggering error
// is recorded on the outcome either way so callers can flag staleness.
func (p *Policy) degrade(ctx context.Context, spec providers.RequestSpec, key string, cause error) domain.FetchOutcome {
	if entry, ok := p.cache.GetStale(key); ok {
		p.metrics.RecordStaleServe(string(spec.Op))
		logging.Info(p.logger, "serving stale cache after live failure",
			logging.FieldLeague, string(spec.League),
			logging.FieldOperation, string(spec.Op),
			logging.FieldCacheKey, key,
		)
		return p.finish(domain.FetchOutcome{
			League: spec.League,
			Source: domain.SourceCache,
			Data:   entry.Data,
			Error:  cause.Error(),
		})
	}

	if p.fallback != nil {
		data, ok, err := p.fallback.Lookup(ctx, spec)
		if err != nil {
			logging.Warn(p.logger, "fallback dataset lookup failed",
				logging.FieldLeague, string(spec.League),
				logging.FieldOperation, string(spec.Op),
				"error", err,
			)
		}
		if err == nil && ok {
			return p.finish(domain.FetchOutcome{
				League: spec.League,
				Source: domain.SourceFallback,
				Data:   data,
				Error:  cause.Error(),
			})
		}
	}

	return p.finish(domain.FetchOutcome{
		League: spec.League,
		Source: domain.SourceUnavailable,
		Error:  cause.Error(),
	})
}

func (p *Policy) finish(outcome domain.FetchOutcome) domain.FetchOutcome {
	p.metrics.RecordOutcome(string(outcome.League), string(outcome.Source))
	return outcome
}

func (p *Policy) ttlFor(op providers.Operation) time.Duration {
	if ttl, ok := p.ttls[op]; ok && ttl > 0 {
		return ttl
	}
	return providers.DefaultTTL(op)
}

func (p *Policy) timeoutFor(op providers.Operation) time.Duration {
	if d, ok := p.timeouts[op]; ok && d > 0 {
		return d
	}
	return providers.DefaultTimeout(op)
}
