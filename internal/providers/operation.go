package providers

import (
	"strings"
	"time"
)

// Operation names a logical upstream request kind.
type Operation string

const (
	OpGames      Operation = "games"
	OpTodayGames Operation = "today_games"
	OpLiveGames  Operation = "live_games"
	OpTeams      Operation = "teams"
	OpStandings  Operation = "standings"
	OpTeamStats  Operation = "team_stats"
	OpOdds       Operation = "odds"
)

// AllOperations returns the supported operations in a fixed order.
func AllOperations() []Operation {
	return []Operation{OpGames, OpTodayGames, OpLiveGames, OpTeams, OpStandings, OpTeamStats, OpOdds}
}

// ParseOperation maps a string (case-insensitive) to an Operation.
func ParseOperation(raw string) (Operation, bool) {
	op := Operation(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range AllOperations() {
		if op == known {
			return known, true
		}
	}
	return "", false
}

func (o Operation) String() string { return string(o) }

// Live-game data goes stale in minutes; rosters survive a day. The defaults
// mirror how quickly each kind of record changes upstream.
var defaultTTLs = map[Operation]time.Duration{
	OpGames:      10 * time.Minute,
	OpTodayGames: 5 * time.Minute,
	OpLiveGames:  time.Minute,
	OpTeams:      24 * time.Hour,
	OpStandings:  time.Hour,
	OpTeamStats:  6 * time.Hour,
	OpOdds:       2 * time.Minute,
}

// Game lookups are cheap upstream; odds lookups page through bookmakers and
// need more headroom.
var defaultTimeouts = map[Operation]time.Duration{
	OpGames:      5 * time.Second,
	OpTodayGames: 5 * time.Second,
	OpLiveGames:  5 * time.Second,
	OpTeams:      8 * time.Second,
	OpStandings:  8 * time.Second,
	OpTeamStats:  8 * time.Second,
	OpOdds:       10 * time.Second,
}

// DefaultTTL returns the cache lifetime for an operation's responses.
func DefaultTTL(op Operation) time.Duration {
	if ttl, ok := defaultTTLs[op]; ok {
		return ttl
	}
	return 5 * time.Minute
}

// DefaultTimeout returns the upstream deadline for an operation.
func DefaultTimeout(op Operation) time.Duration {
	if d, ok := defaultTimeouts[op]; ok {
		return d
	}
	return 8 * time.Second
}
