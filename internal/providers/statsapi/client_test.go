package statsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"league-data-service/internal/domain"
	"league-data-service/internal/providers"
)

func newTestAdapter(t *testing.T, league domain.League, handler http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	adapter, err := New(Config{
		League:  league,
		BaseURL: srv.URL,
		APIKey:  "test-key",
	})
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	return adapter
}

func TestNewRejectsUnknownLeague(t *testing.T) {
	if _, err := New(Config{League: domain.League("xfl")}); err == nil {
		t.Fatalf("expected error for unknown league")
	}
}

func TestFetchGames(t *testing.T) {
	var gotPath, gotKey string
	adapter := newTestAdapter(t, domain.LeagueNBA, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		w.Write([]byte(`{"data":[{"id":7,"date":"2025-01-15T19:30:00Z","status":"Final","season":2024,
			"home_team":{"id":1,"name":"Celtics","city":"Boston","abbreviation":"BOS"},
			"away_team":{"id":2,"name":"Lakers","city":"Los Angeles","abbreviation":"LAL"},
			"home_score":112,"away_score":104}],"meta":{"total":1}}`))
	})

	data, err := adapter.Fetch(context.Background(), providers.NewRequestSpec(providers.OpGames, domain.LeagueNBA, nil))
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if gotPath != "/basketball/games" {
		t.Fatalf("expected league-scoped path, got %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("expected api key header, got %q", gotKey)
	}
	if len(data.Games) != 1 {
		t.Fatalf("expected one game, got %d", len(data.Games))
	}
	game := data.Games[0]
	if game.ID != "nba-7" || game.League != domain.LeagueNBA {
		t.Fatalf("unexpected game identity: %+v", game)
	}
	if game.Status != domain.StatusFinal || game.Score.Home != 112 {
		t.Fatalf("unexpected game state: %+v", game)
	}
	if game.HomeTeam.ID != "nba-team-1" || game.AwayTeam.Abbreviation != "LAL" {
		t.Fatalf("unexpected teams: %+v", game)
	}
	if game.Meta.Season != "2024" || game.Meta.UpstreamGameID != 7 {
		t.Fatalf("unexpected meta: %+v", game.Meta)
	}
}

func TestFetchLiveGamesSetsLiveQuery(t *testing.T) {
	var gotLive string
	adapter := newTestAdapter(t, domain.LeagueNHL, func(w http.ResponseWriter, r *http.Request) {
		gotLive = r.URL.Query().Get("live")
		w.Write([]byte(`{"data":[]}`))
	})

	if _, err := adapter.Fetch(context.Background(), providers.NewRequestSpec(providers.OpLiveGames, domain.LeagueNHL, nil)); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if gotLive != "true" {
		t.Fatalf("expected live=true query, got %q", gotLive)
	}
}

func TestFetchTodayGamesDefaultsDate(t *testing.T) {
	var gotDate string
	adapter := newTestAdapter(t, domain.LeagueMLB, func(w http.ResponseWriter, r *http.Request) {
		gotDate = r.URL.Query().Get("date")
		w.Write([]byte(`{"data":[]}`))
	})
	adapter.now = func() time.Time { return time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC) }
	adapter.loc = time.UTC

	if _, err := adapter.Fetch(context.Background(), providers.NewRequestSpec(providers.OpTodayGames, domain.LeagueMLB, nil)); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if gotDate != "2025-07-04" {
		t.Fatalf("expected today's date, got %q", gotDate)
	}
}

func TestFetchStandings(t *testing.T) {
	adapter := newTestAdapter(t, domain.LeagueNFL, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/american-football/standings" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"data":[{"rank":1,"team":{"id":5,"name":"Chiefs"},"wins":14,"losses":3,"win_pct":0.824,"conference":"AFC"}]}`))
	})

	data, err := adapter.Fetch(context.Background(), providers.NewRequestSpec(providers.OpStandings, domain.LeagueNFL, nil))
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(data.Standings) != 1 || data.Standings[0].Team.ID != "nfl-team-5" || data.Standings[0].Rank != 1 {
		t.Fatalf("unexpected standings: %+v", data.Standings)
	}
}

func TestFetchTeamStatsSortedByName(t *testing.T) {
	adapter := newTestAdapter(t, domain.LeagueNBA, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"team_id":3,"season":2024,"stats":{"rebounds":44.1,"assists":26.5,"points":117.2}}]}`))
	})

	data, err := adapter.Fetch(context.Background(), providers.NewRequestSpec(providers.OpTeamStats, domain.LeagueNBA, nil))
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(data.TeamStats) != 3 {
		t.Fatalf("expected three stat lines, got %d", len(data.TeamStats))
	}
	want := []string{"assists", "points", "rebounds"}
	for i, name := range want {
		if data.TeamStats[i].Name != name {
			t.Fatalf("expected stat %d to be %q, got %q", i, name, data.TeamStats[i].Name)
		}
	}
}

func TestFetchOdds(t *testing.T) {
	adapter := newTestAdapter(t, domain.LeagueNHL, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"game_id":9,"bookmakers":[{"name":"acme","markets":[{"name":"moneyline","home_odd":1.8,"away_odd":2.1}]}]}]}`))
	})

	data, err := adapter.Fetch(context.Background(), providers.NewRequestSpec(providers.OpOdds, domain.LeagueNHL, map[string]string{
		providers.FilterGameID: "9",
	}))
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(data.Odds) != 1 || data.Odds[0].GameID != "nhl-9" {
		t.Fatalf("unexpected odds: %+v", data.Odds)
	}
	if len(data.Odds[0].Lines) != 1 || data.Odds[0].Lines[0].Bookmaker != "acme" {
		t.Fatalf("unexpected lines: %+v", data.Odds[0].Lines)
	}
}

func TestFetchMapsUpstreamError(t *testing.T) {
	adapter := newTestAdapter(t, domain.LeagueNBA, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	})

	_, err := adapter.Fetch(context.Background(), providers.NewRequestSpec(providers.OpGames, domain.LeagueNBA, nil))
	upErr, ok := providers.AsUpstreamError(err)
	if !ok || upErr.Status != http.StatusServiceUnavailable {
		t.Fatalf("expected upstream 503, got %v", err)
	}
	if upErr.League != "nba" {
		t.Fatalf("expected league on error, got %q", upErr.League)
	}
}

func TestFetchMapsMalformedResponse(t *testing.T) {
	adapter := newTestAdapter(t, domain.LeagueNBA, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":`))
	})

	_, err := adapter.Fetch(context.Background(), providers.NewRequestSpec(providers.OpGames, domain.LeagueNBA, nil))
	var malformed *providers.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected malformed response error, got %v", err)
	}
}

func TestFetchRejectsMissingDataField(t *testing.T) {
	adapter := newTestAdapter(t, domain.LeagueNBA, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meta":{"total":0}}`))
	})

	_, err := adapter.Fetch(context.Background(), providers.NewRequestSpec(providers.OpGames, domain.LeagueNBA, nil))
	var malformed *providers.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected malformed response error for missing data, got %v", err)
	}
}

func TestFetchMapsTimeout(t *testing.T) {
	adapter := newTestAdapter(t, domain.LeagueNBA, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"data":[]}`))
	})
	adapter.timeouts = map[providers.Operation]time.Duration{providers.OpGames: 20 * time.Millisecond}

	_, err := adapter.Fetch(context.Background(), providers.NewRequestSpec(providers.OpGames, domain.LeagueNBA, nil))
	if !providers.IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestFetchRejectsLeagueMismatch(t *testing.T) {
	adapter := newTestAdapter(t, domain.LeagueNBA, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	})

	_, err := adapter.Fetch(context.Background(), providers.NewRequestSpec(providers.OpGames, domain.LeagueNFL, nil))
	if !errors.Is(err, providers.ErrUnsupportedOperation) {
		t.Fatalf("expected unsupported-operation error, got %v", err)
	}
}

func TestSupports(t *testing.T) {
	adapter := newTestAdapter(t, domain.LeagueNBA, func(w http.ResponseWriter, r *http.Request) {})
	for _, op := range providers.AllOperations() {
		if !adapter.Supports(op) {
			t.Fatalf("expected %s supported", op)
		}
	}
	if adapter.Supports(providers.Operation("scores")) {
		t.Fatalf("expected unknown op unsupported")
	}
}

func TestMapStatus(t *testing.T) {
	cases := map[string]domain.GameStatus{
		"Final":         domain.StatusFinal,
		"finished":      domain.StatusFinal,
		"In Progress":   domain.StatusInProgress,
		"halftime":      domain.StatusInProgress,
		"postponed":     domain.StatusPostponed,
		"cancelled":     domain.StatusCanceled,
		"scheduled":     domain.StatusScheduled,
		"anything else": domain.StatusScheduled,
	}
	for raw, want := range cases {
		if got := mapStatus(raw); got != want {
			t.Fatalf("mapStatus(%q) = %s, want %s", raw, got, want)
		}
	}
}
