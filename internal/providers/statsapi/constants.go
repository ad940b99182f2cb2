package statsapi

import (
	"league-data-service/internal/domain"
)

const (
	defaultBaseURL  = "https://api.statsdata.io/v1"
	defaultTimezone = "America/New_York"
	apiKeyHeader    = "X-API-Key"

	// How much of an error body to keep when reporting upstream failures.
	maxErrorBody = 256
)

const providerName = "statsapi"

// leaguePaths maps each league to its base path segment on the upstream API.
var leaguePaths = map[domain.League]string{
	domain.LeagueNFL: "american-football",
	domain.LeagueNBA: "basketball",
	domain.LeagueMLB: "baseball",
	domain.LeagueNHL: "hockey",
}
