package statsapi

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"league-data-service/internal/domain"
)

func (a *Adapter) mapGames(rows []gameResponse) []domain.Game {
	games := make([]domain.Game, 0, len(rows))
	for _, g := range rows {
		games = append(games, domain.Game{
			ID:        fmt.Sprintf("%s-%d", a.league, g.ID),
			League:    a.league,
			HomeTeam:  a.mapTeam(g.HomeTeam),
			AwayTeam:  a.mapTeam(g.AwayTeam),
			StartTime: g.Date,
			Status:    mapStatus(g.Status),
			Score:     domain.Score{Home: g.HomeScore, Away: g.AwayScore},
			Meta: domain.GameMeta{
				Season:         formatSeason(g.Season),
				UpstreamGameID: g.ID,
			},
		})
	}
	return games
}

func (a *Adapter) mapTeams(rows []teamResponse) []domain.Team {
	teams := make([]domain.Team, 0, len(rows))
	for _, t := range rows {
		teams = append(teams, a.mapTeam(t))
	}
	return teams
}

func (a *Adapter) mapTeam(t teamResponse) domain.Team {
	return domain.Team{
		ID:           fmt.Sprintf("%s-team-%d", a.league, t.ID),
		League:       a.league,
		Name:         t.Name,
		FullName:     t.FullName,
		Abbreviation: t.Abbreviation,
		City:         t.City,
		Conference:   t.Conference,
		Division:     t.Division,
	}
}

func (a *Adapter) mapStandings(rows []standingResponse) []domain.Standing {
	standings := make([]domain.Standing, 0, len(rows))
	for _, s := range rows {
		standings = append(standings, domain.Standing{
			League:     a.league,
			Team:       a.mapTeam(s.Team),
			Rank:       s.Rank,
			Wins:       s.Wins,
			Losses:     s.Losses,
			Ties:       s.Ties,
			WinPct:     s.WinPct,
			Conference: s.Conference,
			Division:   s.Division,
		})
	}
	return standings
}

func (a *Adapter) mapTeamStats(rows []teamStatsResponse) []domain.TeamStatLine {
	lines := make([]domain.TeamStatLine, 0, len(rows))
	for _, row := range rows {
		names := make([]string, 0, len(row.Stats))
		for name := range row.Stats {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			lines = append(lines, domain.TeamStatLine{
				League: a.league,
				TeamID: fmt.Sprintf("%s-team-%d", a.league, row.TeamID),
				Season: formatSeason(row.Season),
				Name:   name,
				Value:  row.Stats[name],
			})
		}
	}
	return lines
}

func (a *Adapter) mapOdds(rows []oddsResponse) []domain.GameOdds {
	odds := make([]domain.GameOdds, 0, len(rows))
	for _, row := range rows {
		lines := make([]domain.OddsLine, 0, len(row.Bookmakers))
		for _, bm := range row.Bookmakers {
			for _, m := range bm.Markets {
				lines = append(lines, domain.OddsLine{
					Bookmaker: bm.Name,
					Market:    m.Name,
					HomeOdd:   m.HomeOdd,
					AwayOdd:   m.AwayOdd,
					DrawOdd:   m.DrawOdd,
					Handicap:  m.Handicap,
				})
			}
		}
		odds = append(odds, domain.GameOdds{
			League: a.league,
			GameID: fmt.Sprintf("%s-%d", a.league, row.GameID),
			Lines:  lines,
		})
	}
	return odds
}

func mapStatus(status string) domain.GameStatus {
	switch strings.ToLower(status) {
	case "final", "finished", "ended":
		return domain.StatusFinal
	case "in progress", "live", "halftime", "end of period":
		return domain.StatusInProgress
	case "postponed":
		return domain.StatusPostponed
	case "canceled", "cancelled":
		return domain.StatusCanceled
	default:
		return domain.StatusScheduled
	}
}

func formatSeason(season int) string {
	if season <= 0 {
		return ""
	}
	return strconv.Itoa(season)
}
