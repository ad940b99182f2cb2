package domain

// GameStatus mirrors the shared contract for game lifecycle states.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusFinal      GameStatus = "FINAL"
	StatusPostponed  GameStatus = "POSTPONED"
	StatusCanceled   GameStatus = "CANCELED"
)

// Score captures home and away points.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Team represents the normalized team shape shared by all leagues.
type Team struct {
	ID           string `json:"id"`
	League       League `json:"league"`
	Name         string `json:"name"`
	FullName     string `json:"fullName,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
	City         string `json:"city,omitempty"`
	Conference   string `json:"conference,omitempty"`
	Division     string `json:"division,omitempty"`
}

// GameMeta stores provider metadata for a game.
type GameMeta struct {
	Season         string `json:"season,omitempty"`
	UpstreamGameID int    `json:"upstreamGameId,omitempty"`
}

// Game is the canonical game shape exposed by the service.
type Game struct {
	ID        string     `json:"id"`
	League    League     `json:"league"`
	HomeTeam  Team       `json:"homeTeam"`
	AwayTeam  Team       `json:"awayTeam"`
	StartTime string     `json:"startTime"`
	Status    GameStatus `json:"status"`
	Score     Score      `json:"score"`
	Meta      GameMeta   `json:"meta"`
}

// Standing is one row of a league table.
type Standing struct {
	League     League  `json:"league"`
	Team       Team    `json:"team"`
	Rank       int     `json:"rank"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Ties       int     `json:"ties,omitempty"`
	WinPct     float64 `json:"winPct"`
	Conference string  `json:"conference,omitempty"`
	Division   string  `json:"division,omitempty"`
}

// TeamStatLine is a named statistic for one team over a season.
type TeamStatLine struct {
	League League  `json:"league"`
	TeamID string  `json:"teamId"`
	Season string  `json:"season,omitempty"`
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
}

// OddsLine is a single bookmaker quote for a game.
type OddsLine struct {
	Bookmaker string  `json:"bookmaker"`
	Market    string  `json:"market"`
	HomeOdd   float64 `json:"homeOdd,omitempty"`
	AwayOdd   float64 `json:"awayOdd,omitempty"`
	DrawOdd   float64 `json:"drawOdd,omitempty"`
	Handicap  string  `json:"handicap,omitempty"`
}

// GameOdds groups the bookmaker lines for one game.
type GameOdds struct {
	League League     `json:"league"`
	GameID string     `json:"gameId"`
	Lines  []OddsLine `json:"lines"`
}
