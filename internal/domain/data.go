package domain

// Data is the normalized payload produced by a league adapter. At most one
// field is populated, matching the request's operation. Once produced a Data
// value is treated as immutable: cache readers and fetch outcomes share it
// without copying, so callers must not mutate the slices.
type Data struct {
	Games     []Game         `json:"games,omitempty"`
	Teams     []Team         `json:"teams,omitempty"`
	Standings []Standing     `json:"standings,omitempty"`
	TeamStats []TeamStatLine `json:"teamStats,omitempty"`
	Odds      []GameOdds     `json:"odds,omitempty"`
}

// Empty reports whether the payload carries no records of any kind.
func (d Data) Empty() bool {
	return len(d.Games) == 0 && len(d.Teams) == 0 && len(d.Standings) == 0 &&
		len(d.TeamStats) == 0 && len(d.Odds) == 0
}

// Source tags how a league's data was obtained within an aggregate call.
type Source string

const (
	SourceLive        Source = "live"
	SourceCache       Source = "cache"
	SourceFallback    Source = "fallback"
	SourceUnavailable Source = "unavailable"
)

// FetchOutcome is the per-league result of an aggregate call. It is a pure
// response artifact and is never persisted.
type FetchOutcome struct {
	League League `json:"league"`
	Source Source `json:"source"`
	Data   Data   `json:"data"`
	Error  string `json:"error,omitempty"`
}

// Degraded reports whether the outcome was served from anything other than a
// live upstream call or a fresh cache entry without a recorded error.
func (o FetchOutcome) Degraded() bool {
	return o.Source == SourceUnavailable || o.Source == SourceFallback || o.Error != ""
}
