package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderUpstreamCounters(t *testing.T) {
	rec := NewRecorder()

	rec.RecordUpstreamAttempt("nba", "games", 20*time.Millisecond, nil)
	rec.RecordUpstreamAttempt("nba", "games", 40*time.Millisecond, errors.New("503"))
	rec.RecordUpstreamAttempt("nfl", "teams", 10*time.Millisecond, nil)

	if got := rec.UpstreamCalls("nba"); got != 2 {
		t.Fatalf("expected 2 nba calls, got %d", got)
	}
	if got := rec.UpstreamErrors("nba"); got != 1 {
		t.Fatalf("expected 1 nba error, got %d", got)
	}
	if got := rec.UpstreamCalls("nfl"); got != 1 {
		t.Fatalf("expected 1 nfl call, got %d", got)
	}
	if snap := rec.Snapshot("nba"); snap.LastCallLatency != 40*time.Millisecond {
		t.Fatalf("expected last latency 40ms, got %s", snap.LastCallLatency)
	}
	if snap := rec.Snapshot("mlb"); snap.UpstreamCalls != 0 {
		t.Fatalf("expected empty snapshot for untouched league")
	}
}

func TestRecorderCacheCounters(t *testing.T) {
	rec := NewRecorder()
	rec.RecordCacheHit("games")
	rec.RecordCacheHit("teams")
	rec.RecordCacheMiss("games")
	rec.RecordStaleServe("games")

	if rec.CacheHits() != 2 || rec.CacheMisses() != 1 || rec.StaleServes() != 1 {
		t.Fatalf("unexpected cache counters: hits=%d misses=%d stale=%d",
			rec.CacheHits(), rec.CacheMisses(), rec.StaleServes())
	}
}

func TestRecorderOutcomes(t *testing.T) {
	rec := NewRecorder()
	rec.RecordOutcome("nba", "live")
	rec.RecordOutcome("nba", "live")
	rec.RecordOutcome("nba", "fallback")

	if rec.Outcomes("nba", "live") != 2 {
		t.Fatalf("expected 2 live outcomes, got %d", rec.Outcomes("nba", "live"))
	}
	if rec.Outcomes("nba", "fallback") != 1 {
		t.Fatalf("expected 1 fallback outcome")
	}
	if rec.Outcomes("nhl", "live") != 0 {
		t.Fatalf("expected 0 for untouched league")
	}
}

func TestRecorderNilSafe(t *testing.T) {
	var rec *Recorder
	// None of these may panic.
	rec.RecordUpstreamAttempt("nba", "games", time.Millisecond, nil)
	rec.RecordCacheHit("games")
	rec.RecordCacheMiss("games")
	rec.RecordStaleServe("games")
	rec.RecordOutcome("nba", "live")
	rec.RecordPacerWait(time.Millisecond)
	rec.RecordHTTPRequest("GET", "/games", 200, time.Millisecond)
	rec.RecordWarmCycle(time.Millisecond, nil)

	if rec.UpstreamCalls("nba") != 0 || rec.CacheHits() != 0 || rec.Outcomes("nba", "live") != 0 {
		t.Fatalf("expected zero counters on nil recorder")
	}
}
