package config

import (
	"time"

	"league-data-service/internal/providers"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port     string
	StatsAPI StatsAPIConfig
	Upstream UpstreamConfig
	TTLs     map[providers.Operation]time.Duration
	Fallback FallbackConfig
	License  LicenseConfig
	Warm     WarmConfig
	Metrics  MetricsConfig
}

// StatsAPIConfig points the adapters at the upstream provider.
type StatsAPIConfig struct {
	BaseURL  string
	APIKey   string
	Timezone string
}

// UpstreamConfig governs outbound call pacing.
type UpstreamConfig struct {
	MinInterval Duration
}

// FallbackConfig locates the historical snapshot dataset. An empty path
// selects the built-in static dataset.
type FallbackConfig struct {
	Path string
}

// LicenseConfig carries the entitlement key material.
type LicenseConfig struct {
	Key    string
	Secret string
}

// WarmConfig controls the background cache warmer.
type WarmConfig struct {
	Enabled  bool
	Interval Duration
}

// MetricsConfig mirrors the telemetry surface.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port: envOrDefault(envPort, defaultPort),
		StatsAPI: StatsAPIConfig{
			BaseURL:  envOrDefault(envBaseURL, ""),
			APIKey:   envOrDefault(envAPIKey, ""),
			Timezone: envOrDefault(envTimezone, ""),
		},
		Upstream: UpstreamConfig{
			MinInterval: durationEnvOrDefault(envMinInterval, defaultMinInterval),
		},
		TTLs:     loadTTLs(),
		Fallback: FallbackConfig{Path: envOrDefault(envFallbackPath, "")},
		License: LicenseConfig{
			Key:    envOrDefault(envLicenseKey, ""),
			Secret: envOrDefault(envLicenseHMAC, ""),
		},
		Warm: WarmConfig{
			Enabled:  boolEnvOrDefault(envWarmEnabled, defaultWarmEnabled),
			Interval: durationEnvOrDefault(envWarmInterval, defaultWarmInterval),
		},
		Metrics: loadMetrics(),
	}
}

func loadTTLs() map[providers.Operation]time.Duration {
	ttls := make(map[providers.Operation]time.Duration, 7)
	for op, env := range map[providers.Operation]string{
		providers.OpGames:      envTTLGames,
		providers.OpTodayGames: envTTLTodayGames,
		providers.OpLiveGames:  envTTLLiveGames,
		providers.OpTeams:      envTTLTeams,
		providers.OpStandings:  envTTLStandings,
		providers.OpTeamStats:  envTTLTeamStats,
		providers.OpOdds:       envTTLOdds,
	} {
		ttls[op] = durationEnvOrDefault(env, providers.DefaultTTL(op))
	}
	return ttls
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, false),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, ""),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, false),
	}
}
