package aggregator

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"league-data-service/internal/domain"
	"league-data-service/internal/providers"
)

// DefaultOddsParallelism bounds concurrent per-game odds lookups.
const DefaultOddsParallelism = 10

// TodayGames returns today's games for one league.
func (a *Aggregator) TodayGames(ctx context.Context, league domain.League) domain.FetchOutcome {
	return a.Fetch(ctx, providers.NewRequestSpec(providers.OpTodayGames, league, nil))
}

// AllTodayGames returns today's games for every league.
func (a *Aggregator) AllTodayGames(ctx context.Context) map[domain.League]domain.FetchOutcome {
	return a.FetchAllLeagues(ctx, providers.OpTodayGames, nil)
}

// LiveGames returns the in-progress games for one league.
func (a *Aggregator) LiveGames(ctx context.Context, league domain.League) domain.FetchOutcome {
	return a.Fetch(ctx, providers.NewRequestSpec(providers.OpLiveGames, league, nil))
}

// AllLiveGames returns the in-progress games for every league.
func (a *Aggregator) AllLiveGames(ctx context.Context) map[domain.League]domain.FetchOutcome {
	return a.FetchAllLeagues(ctx, providers.OpLiveGames, nil)
}

// Games returns games for one league filtered by date (YYYY-MM-DD) when set.
func (a *Aggregator) Games(ctx context.Context, league domain.League, date string) domain.FetchOutcome {
	var filters map[string]string
	if date != "" {
		filters = map[string]string{providers.FilterDate: date}
	}
	return a.Fetch(ctx, providers.NewRequestSpec(providers.OpGames, league, filters))
}

// Teams returns the teams of one league.
func (a *Aggregator) Teams(ctx context.Context, league domain.League) domain.FetchOutcome {
	return a.Fetch(ctx, providers.NewRequestSpec(providers.OpTeams, league, nil))
}

// AllTeams returns the teams of every league.
func (a *Aggregator) AllTeams(ctx context.Context) map[domain.League]domain.FetchOutcome {
	return a.FetchAllLeagues(ctx, providers.OpTeams, nil)
}

// Standings returns the league table for one league.
func (a *Aggregator) Standings(ctx context.Context, league domain.League) domain.FetchOutcome {
	return a.Fetch(ctx, providers.NewRequestSpec(providers.OpStandings, league, nil))
}

// AllStandings returns the league table for every league.
func (a *Aggregator) AllStandings(ctx context.Context) map[domain.League]domain.FetchOutcome {
	return a.FetchAllLeagues(ctx, providers.OpStandings, nil)
}

// TeamStatistics returns season statistics for one team.
func (a *Aggregator) TeamStatistics(ctx context.Context, league domain.League, team string) domain.FetchOutcome {
	return a.Fetch(ctx, providers.NewRequestSpec(providers.OpTeamStats, league, map[string]string{
		providers.FilterTeam: team,
	}))
}

// Odds returns the bookmaker lines for one game.
func (a *Aggregator) Odds(ctx context.Context, league domain.League, gameID string) domain.FetchOutcome {
	return a.Fetch(ctx, providers.NewRequestSpec(providers.OpOdds, league, map[string]string{
		providers.FilterGameID: gameID,
	}))
}

// GameOdds fetches odds for several games with bounded parallelism. The
// returned map holds exactly one outcome per requested game id.
func (a *Aggregator) GameOdds(ctx context.Context, league domain.League, gameIDs []string, maxParallel int) map[string]domain.FetchOutcome {
	if maxParallel <= 0 || maxParallel > DefaultOddsParallelism {
		maxParallel = DefaultOddsParallelism
	}

	results := make(map[string]domain.FetchOutcome, len(gameIDs))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(maxParallel)
	for _, gameID := range gameIDs {
		gameID := gameID
		g.Go(func() error {
			outcome := a.Odds(ctx, league, gameID)
			mu.Lock()
			results[gameID] = outcome
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}
