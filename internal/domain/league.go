package domain

import "strings"

// League identifies one of the supported sports leagues. The set is closed;
// values are compile-time constants and never constructed at runtime.
type League string

const (
	LeagueNFL League = "nfl"
	LeagueNBA League = "nba"
	LeagueMLB League = "mlb"
	LeagueNHL League = "nhl"
)

// AllLeagues returns the supported leagues in a fixed order.
func AllLeagues() []League {
	return []League{LeagueNFL, LeagueNBA, LeagueMLB, LeagueNHL}
}

// ParseLeague maps a string (case-insensitive) to a League.
func ParseLeague(raw string) (League, bool) {
	switch League(strings.ToLower(strings.TrimSpace(raw))) {
	case LeagueNFL:
		return LeagueNFL, true
	case LeagueNBA:
		return LeagueNBA, true
	case LeagueMLB:
		return LeagueMLB, true
	case LeagueNHL:
		return LeagueNHL, true
	}
	return "", false
}

// Valid reports whether l is one of the supported leagues.
func (l League) Valid() bool {
	_, ok := ParseLeague(string(l))
	return ok
}

func (l League) String() string {
	return string(l)
}
