// Package aggregator orchestrates concurrent per-league fetches for one
// logical operation and merges the outcomes keyed by league.
package aggregator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"league-data-service/internal/domain"
	"league-data-service/internal/fallback"
	"league-data-service/internal/logging"
	"league-data-service/internal/providers"
	"league-data-service/internal/resilience"
)

// How long a background snapshot write may take before being abandoned.
const persistTimeout = 2 * time.Second

// Config wires an Aggregator.
type Config struct {
	Policy *resilience.Policy

	// Leagues defaults to all supported leagues in fixed order.
	Leagues []domain.League

	// Snapshots, when set, receives every live result so the fallback
	// dataset stays current.
	Snapshots fallback.Snapshotter

	Logger *slog.Logger
}

// Aggregator fans a logical operation out across the leagues, one concurrent
// unit per league, and joins on all of them before returning. One league's
// failure never raises an error for the aggregate call; it is represented in
// that league's FetchOutcome.
type Aggregator struct {
	policy    *resilience.Policy
	leagues   []domain.League
	snapshots fallback.Snapshotter
	logger    *slog.Logger
}

// New constructs an Aggregator from cfg.
func New(cfg Config) *Aggregator {
	leagues := cfg.Leagues
	if len(leagues) == 0 {
		leagues = domain.AllLeagues()
	}
	return &Aggregator{
		policy:    cfg.Policy,
		leagues:   leagues,
		snapshots: cfg.Snapshots,
		logger:    cfg.Logger,
	}
}

// Leagues returns the leagues the aggregator fans out across.
func (a *Aggregator) Leagues() []domain.League {
	out := make([]domain.League, len(a.leagues))
	copy(out, a.leagues)
	return out
}

// Fetch resolves a single-league request through the resilience policy,
// skipping the fan-out. Live results are written through to the snapshot
// store when one is configured.
func (a *Aggregator) Fetch(ctx context.Context, spec providers.RequestSpec) domain.FetchOutcome {
	outcome := a.policy.Execute(ctx, spec)
	if outcome.Source == domain.SourceLive {
		a.persist(spec, outcome.Data)
	}
	return outcome
}

// FetchAllLeagues issues one policy-guarded call per league concurrently and
// waits for all of them. The returned map always contains exactly one
// outcome per league; a slow or failing league cannot block or corrupt the
// others' results.
func (a *Aggregator) FetchAllLeagues(ctx context.Context, op providers.Operation, filters map[string]string) map[domain.League]domain.FetchOutcome {
	results := make(map[domain.League]domain.FetchOutcome, len(a.leagues))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, league := range a.leagues {
		wg.Add(1)
		go func(league domain.League) {
			defer wg.Done()
			outcome := a.Fetch(ctx, providers.NewRequestSpec(op, league, filters))
			mu.Lock()
			results[league] = outcome
			mu.Unlock()
		}(league)
	}
	wg.Wait()

	return results
}

func (a *Aggregator) persist(spec providers.RequestSpec, data domain.Data) {
	if a.snapshots == nil || data.Empty() {
		return
	}
	// Detached context: snapshot upkeep should not inherit request deadlines.
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := a.snapshots.Store(ctx, spec, data); err != nil {
		logging.Warn(a.logger, "snapshot write-through failed",
			logging.FieldLeague, string(spec.League),
			logging.FieldOperation, string(spec.Op),
			"error", err,
		)
	}
}
