package fallback

import (
	"context"
	"time"

	"league-data-service/internal/domain"
	"league-data-service/internal/providers"
)

// StaticDataset serves a deterministic in-memory snapshot, useful for local
// runs without a snapshot file and for bootstrapping tests.
type StaticDataset struct {
	now func() time.Time
}

// NewStatic creates a static dataset with a time source.
func NewStatic() *StaticDataset {
	return &StaticDataset{now: time.Now}
}

// Lookup answers team and game operations from fixture data; other
// operations report no record.
func (d *StaticDataset) Lookup(ctx context.Context, spec providers.RequestSpec) (domain.Data, bool, error) {
	_ = ctx

	switch spec.Op {
	case providers.OpTeams:
		return domain.Data{Teams: staticTeams(spec.League)}, true, nil
	case providers.OpGames, providers.OpTodayGames:
		return domain.Data{Games: d.staticGames(spec.League)}, true, nil
	}
	return domain.Data{}, false, nil
}

func (d *StaticDataset) staticGames(league domain.League) []domain.Game {
	teams := staticTeams(league)
	start := d.now().UTC().Truncate(time.Hour)
	return []domain.Game{
		{
			ID:        string(league) + "-static-1",
			League:    league,
			HomeTeam:  teams[0],
			AwayTeam:  teams[1],
			StartTime: start.Add(2 * time.Hour).Format(time.RFC3339),
			Status:    domain.StatusScheduled,
		},
	}
}

func staticTeams(league domain.League) []domain.Team {
	switch league {
	case domain.LeagueNFL:
		return []domain.Team{
			{ID: "nfl-team-static-1", League: league, Name: "Chiefs", City: "Kansas City", Abbreviation: "KC", Conference: "AFC", Division: "West"},
			{ID: "nfl-team-static-2", League: league, Name: "Eagles", City: "Philadelphia", Abbreviation: "PHI", Conference: "NFC", Division: "East"},
		}
	case domain.LeagueNBA:
		return []domain.Team{
			{ID: "nba-team-static-1", League: league, Name: "Celtics", City: "Boston", Abbreviation: "BOS", Conference: "East", Division: "Atlantic"},
			{ID: "nba-team-static-2", League: league, Name: "Lakers", City: "Los Angeles", Abbreviation: "LAL", Conference: "West", Division: "Pacific"},
		}
	case domain.LeagueMLB:
		return []domain.Team{
			{ID: "mlb-team-static-1", League: league, Name: "Yankees", City: "New York", Abbreviation: "NYY", Division: "AL East"},
			{ID: "mlb-team-static-2", League: league, Name: "Dodgers", City: "Los Angeles", Abbreviation: "LAD", Division: "NL West"},
		}
	case domain.LeagueNHL:
		return []domain.Team{
			{ID: "nhl-team-static-1", League: league, Name: "Bruins", City: "Boston", Abbreviation: "BOS", Conference: "East", Division: "Atlantic"},
			{ID: "nhl-team-static-2", League: league, Name: "Avalanche", City: "Denver", Abbreviation: "COL", Conference: "West", Division: "Central"},
		}
	}
	return nil
}
