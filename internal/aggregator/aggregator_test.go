package aggregator

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"league-data-service/internal/cache"
	"league-data-service/internal/domain"
	"league-data-service/internal/license"
	"league-data-service/internal/metrics"
	"league-data-service/internal/providers"
	"league-data-service/internal/ratelimit"
	"league-data-service/internal/resilience"
	"league-data-service/internal/teststubs"
)

func newTestAggregator(t *testing.T, adapters map[domain.League]providers.LeagueAdapter, snapshots *teststubs.StubDataset) *Aggregator {
	t.Helper()

	leagues := make([]domain.League, 0, len(adapters))
	for _, league := range domain.AllLeagues() {
		if _, ok := adapters[league]; ok {
			leagues = append(leagues, league)
		}
	}

	policy := resilience.NewPolicy(resilience.Config{
		Cache:       cache.NewStore(),
		Pacer:       ratelimit.NewPacer(time.Millisecond),
		Adapters:    adapters,
		Entitlement: license.Always(true),
		Metrics:     metrics.NewRecorder(),
	})

	cfg := Config{Policy: policy, Leagues: leagues}
	if snapshots != nil {
		cfg.Snapshots = snapshots
	}
	return New(cfg)
}

func TestFetchAllLeaguesCompleteMap(t *testing.T) {
	adapters := map[domain.League]providers.LeagueAdapter{}
	for _, league := range domain.AllLeagues() {
		adapters[league] = &teststubs.StubAdapter{
			AdapterLeague: league,
			Data:          domain.Data{Games: []domain.Game{{ID: string(league) + "-1", League: league}}},
		}
	}
	agg := newTestAggregator(t, adapters, nil)

	results := agg.AllTodayGames(context.Background())

	if len(results) != len(domain.AllLeagues()) {
		t.Fatalf("expected one outcome per league, got %d", len(results))
	}
	for league, outcome := range results {
		if outcome.League != league {
			t.Fatalf("outcome for %s tagged %s", league, outcome.League)
		}
		if outcome.Source != domain.SourceLive {
			t.Fatalf("%s: expected live outcome, got %+v", league, outcome)
		}
	}
}

func TestFetchAllLeaguesIsolatesFailures(t *testing.T) {
	adapters := map[domain.League]providers.LeagueAdapter{
		domain.LeagueNBA: &teststubs.StubAdapter{
			AdapterLeague: domain.LeagueNBA,
			Data:          domain.Data{Games: []domain.Game{{ID: "nba-1"}}},
		},
		domain.LeagueNFL: &teststubs.StubAdapter{
			AdapterLeague: domain.LeagueNFL,
			Err:           &providers.UpstreamError{League: "nfl", Status: 503},
		},
	}
	agg := newTestAggregator(t, adapters, nil)

	results := agg.AllTodayGames(context.Background())

	if len(results) != 2 {
		t.Fatalf("expected outcomes for both leagues, got %d", len(results))
	}
	if results[domain.LeagueNBA].Source != domain.SourceLive {
		t.Fatalf("nba should succeed independently, got %+v", results[domain.LeagueNBA])
	}
	if results[domain.LeagueNFL].Source != domain.SourceUnavailable || results[domain.LeagueNFL].Error == "" {
		t.Fatalf("nfl failure should be recorded in its own outcome, got %+v", results[domain.LeagueNFL])
	}
}

func TestFetchAllLeaguesSlowLeagueDoesNotBlockOthers(t *testing.T) {
	adapters := map[domain.League]providers.LeagueAdapter{
		domain.LeagueNBA: &teststubs.StubAdapter{
			AdapterLeague: domain.LeagueNBA,
			Data:          domain.Data{Games: []domain.Game{{ID: "nba-1"}}},
		},
		domain.LeagueNHL: &teststubs.StubAdapter{
			AdapterLeague: domain.LeagueNHL,
			Delay:         5 * time.Second,
			Data:          domain.Data{Games: []domain.Game{{ID: "nhl-1"}}},
		},
	}
	agg := newTestAggregator(t, adapters, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	results := agg.AllTodayGames(ctx)

	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("fan-in should respect the caller deadline, took %s", elapsed)
	}
	if results[domain.LeagueNBA].Source != domain.SourceLive {
		t.Fatalf("fast league should resolve live, got %+v", results[domain.LeagueNBA])
	}
	if results[domain.LeagueNHL].Source != domain.SourceUnavailable {
		t.Fatalf("slow league should time out to unavailable, got %+v", results[domain.LeagueNHL])
	}
}

func TestFetchPersistsLiveResults(t *testing.T) {
	snapshots := &teststubs.StubDataset{}
	adapters := map[domain.League]providers.LeagueAdapter{
		domain.LeagueNBA: &teststubs.StubAdapter{
			AdapterLeague: domain.LeagueNBA,
			Data:          domain.Data{Teams: []domain.Team{{ID: "nba-team-1"}}},
		},
	}
	agg := newTestAggregator(t, adapters, snapshots)

	outcome := agg.Teams(context.Background(), domain.LeagueNBA)
	if outcome.Source != domain.SourceLive {
		t.Fatalf("expected live outcome, got %+v", outcome)
	}
	if snapshots.StoredCount() != 1 {
		t.Fatalf("expected one snapshot write-through, got %d", snapshots.StoredCount())
	}

	// The second call hits the cache; no second write-through.
	agg.Teams(context.Background(), domain.LeagueNBA)
	if snapshots.StoredCount() != 1 {
		t.Fatalf("cache hits must not write snapshots, got %d", snapshots.StoredCount())
	}
}

func TestLeaguesDefaultsToAll(t *testing.T) {
	agg := New(Config{})
	leagues := agg.Leagues()
	if len(leagues) != len(domain.AllLeagues()) {
		t.Fatalf("expected all leagues by default, got %v", leagues)
	}
	leagues[0] = "changed"
	if agg.Leagues()[0] == "changed" {
		t.Fatalf("Leagues must return a copy")
	}
}

func TestGameOddsBoundedParallelism(t *testing.T) {
	var current, peak atomic.Int32
	adapter := &oddsAdapter{current: &current, peak: &peak}
	agg := newTestAggregator(t, map[domain.League]providers.LeagueAdapter{domain.LeagueNHL: adapter}, nil)

	gameIDs := make([]string, 12)
	for i := range gameIDs {
		gameIDs[i] = string(rune('a' + i))
	}

	results := agg.GameOdds(context.Background(), domain.LeagueNHL, gameIDs, 3)

	if len(results) != len(gameIDs) {
		t.Fatalf("expected one outcome per game id, got %d", len(results))
	}
	for id, outcome := range results {
		if outcome.Source != domain.SourceLive {
			t.Fatalf("game %s: expected live outcome, got %+v", id, outcome)
		}
	}
	if peak.Load() > 3 {
		t.Fatalf("expected at most 3 in-flight lookups, saw %d", peak.Load())
	}
}

// oddsAdapter tracks peak concurrency across fetches.
type oddsAdapter struct {
	current *atomic.Int32
	peak    *atomic.Int32
}

func (a *oddsAdapter) League() domain.League                { return domain.LeagueNHL }
func (a *oddsAdapter) Supports(op providers.Operation) bool { return true }

func (a *oddsAdapter) Fetch(ctx context.Context, spec providers.RequestSpec) (domain.Data, error) {
	in := a.current.Add(1)
	for {
		p := a.peak.Load()
		if in <= p || a.peak.CompareAndSwap(p, in) {
			break
		}
	}
	time.Sleep(20 * time.Millisecond)
	a.current.Add(-1)

	gameID, _ := spec.Filter(providers.FilterGameID)
	return domain.Data{Odds: []domain.GameOdds{{League: spec.League, GameID: gameID}}}, nil
}
