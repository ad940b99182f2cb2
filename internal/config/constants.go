package config

import "time"

const (
	envPort         = "PORT"
	envBaseURL      = "STATSAPI_BASE_URL"
	envAPIKey       = "STATSAPI_API_KEY"
	envTimezone     = "STATSAPI_TIMEZONE"
	envMinInterval  = "UPSTREAM_MIN_INTERVAL"
	envFallbackPath = "FALLBACK_DATASET"
	envLicenseKey   = "LICENSE_KEY"
	envLicenseHMAC  = "LICENSE_SECRET"
	envWarmEnabled  = "WARM_ENABLED"
	envWarmInterval = "WARM_INTERVAL"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	envTTLGames      = "TTL_GAMES"
	envTTLTodayGames = "TTL_TODAY_GAMES"
	envTTLLiveGames  = "TTL_LIVE_GAMES"
	envTTLTeams      = "TTL_TEAMS"
	envTTLStandings  = "TTL_STANDINGS"
	envTTLTeamStats  = "TTL_TEAM_STATS"
	envTTLOdds       = "TTL_ODDS"

	defaultPort        = "4000"
	defaultMetricsPort = "9090"
	defaultServiceName = "league-data-service"
	// Documented provider quota: keep at least 100ms between outbound calls.
	defaultMinInterval  = 100 * time.Millisecond
	defaultWarmEnabled  = true
	defaultWarmInterval = 2 * Duration(time.Minute)
)
