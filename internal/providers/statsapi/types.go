package statsapi

import "encoding/json"

// envelope is the common upstream response wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta struct {
		Total int `json:"total"`
	} `json:"meta"`
}

type gameResponse struct {
	ID        int          `json:"id"`
	Date      string       `json:"date"`
	Status    string       `json:"status"`
	Season    int          `json:"season"`
	HomeTeam  teamResponse `json:"home_team"`
	AwayTeam  teamResponse `json:"away_team"`
	HomeScore int          `json:"home_score"`
	AwayScore int          `json:"away_score"`
}

type teamResponse struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	FullName     string `json:"full_name"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
}

type standingResponse struct {
	Rank       int          `json:"rank"`
	Team       teamResponse `json:"team"`
	Wins       int          `json:"wins"`
	Losses     int          `json:"losses"`
	Ties       int          `json:"ties"`
	WinPct     float64      `json:"win_pct"`
	Conference string       `json:"conference"`
	Division   string       `json:"division"`
}

type teamStatsResponse struct {
	TeamID int                `json:"team_id"`
	Season int                `json:"season"`
	Stats  map[string]float64 `json:"stats"`
}

type oddsResponse struct {
	GameID     int                 `json:"game_id"`
	Bookmakers []bookmakerResponse `json:"bookmakers"`
}

type bookmakerResponse struct {
	Name    string           `json:"name"`
	Markets []marketResponse `json:"markets"`
}

type marketResponse struct {
	Name     string  `json:"name"`
	HomeOdd  float64 `json:"home_odd"`
	AwayOdd  float64 `json:"away_odd"`
	DrawOdd  float64 `json:"draw_odd"`
	Handicap string  `json:"handicap"`
}
