package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"league-data-service/internal/aggregator"
	"league-data-service/internal/cache"
	"league-data-service/internal/config"
	"league-data-service/internal/domain"
	"league-data-service/internal/fallback"
	httpserver "league-data-service/internal/http"
	"league-data-service/internal/http/handlers"
	"league-data-service/internal/http/middleware"
	"league-data-service/internal/license"
	"league-data-service/internal/logging"
	"league-data-service/internal/metrics"
	"league-data-service/internal/providers"
	"league-data-service/internal/providers/statsapi"
	"league-data-service/internal/ratelimit"
	"league-data-service/internal/resilience"
	"league-data-service/internal/warm"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	cache         *cache.Store
	aggregator    *aggregator.Aggregator
	warmer        Warmer
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
	fallbackClose io.Closer
}

// New constructs a server with default adapter wiring: one upstream adapter
// per supported league, sharing a single pacer and cache.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	adapters, err := buildAdapters(cfg)
	if err != nil {
		return nil, err
	}
	return newServerWithAdapters(cfg, logger, adapters, nil)
}

func newServerWithAdapters(cfg config.Config, logger *slog.Logger, adapters map[domain.League]providers.LeagueAdapter, recorder *metrics.Recorder) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	dataset, snapshots, closer, err := buildFallback(cfg, logger)
	if err != nil {
		return nil, err
	}

	store := cache.NewStore()
	pacer := ratelimit.NewPacer(cfg.Upstream.MinInterval)
	policy := resilience.NewPolicy(resilience.Config{
		Cache:       store,
		Pacer:       pacer,
		Adapters:    adapters,
		Fallback:    dataset,
		Entitlement: license.NewKey(cfg.License.Key, cfg.License.Secret),
		Logger:      logger,
		Metrics:     recorder,
		TTLs:        cfg.TTLs,
	})
	agg := aggregator.New(aggregator.Config{
		Policy:    policy,
		Snapshots: snapshots,
		Logger:    logger,
	})

	var warmer Warmer = noopWarmer{}
	if cfg.Warm.Enabled {
		warmer = warm.New(agg, logger, recorder, cfg.Warm.Interval)
	}

	httpSrv := buildHTTPServer(cfg, agg, logger, recorder, warmer)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		cache:         store,
		aggregator:    agg,
		warmer:        warmer,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
		fallbackClose: closer,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, agg *aggregator.Aggregator, httpSrv httpServer, warmer Warmer) *Server {
	if warmer == nil {
		warmer = noopWarmer{}
	}
	return &Server{
		cfg:        cfg,
		logger:     logger,
		aggregator: agg,
		httpServer: httpSrv,
		warmer:     warmer,
	}
}

func buildAdapters(cfg config.Config) (map[domain.League]providers.LeagueAdapter, error) {
	adapters := make(map[domain.League]providers.LeagueAdapter, len(domain.AllLeagues()))
	for _, league := range domain.AllLeagues() {
		adapter, err := statsapi.New(statsapi.Config{
			League:   league,
			BaseURL:  cfg.StatsAPI.BaseURL,
			APIKey:   cfg.StatsAPI.APIKey,
			Timezone: cfg.StatsAPI.Timezone,
		})
		if err != nil {
			return nil, err
		}
		adapters[league] = adapter
	}
	return adapters, nil
}

// buildFallback selects the snapshot-backed SQLite dataset when a path is
// configured, otherwise the built-in static dataset. Only the SQLite dataset
// accepts write-through snapshots.
func buildFallback(cfg config.Config, logger *slog.Logger) (fallback.Dataset, fallback.Snapshotter, io.Closer, error) {
	if cfg.Fallback.Path == "" {
		return fallback.NewStatic(), nil, nil, nil
	}
	ds, err := fallback.OpenSQLite(cfg.Fallback.Path)
	if err != nil {
		return nil, nil, nil, err
	}
	logging.Info(logger, "fallback snapshot store opened", "path", cfg.Fallback.Path)
	return ds, ds, ds, nil
}

func buildHTTPServer(cfg config.Config, agg *aggregator.Aggregator, logger *slog.Logger, recorder *metrics.Recorder, warmer Warmer) httpServer {
	var statusFn func() warm.Status
	if _, ok := warmer.(noopWarmer); !ok && warmer != nil {
		statusFn = warmer.Status
	}

	handler := handlers.NewHandler(agg, logger, statusFn)
	router := httpserver.NewRouter(handler)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return newNetHTTPServer(srv)
}

// Run starts the warmer and HTTP server, then waits for context cancellation
// to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.warmer.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.warmer.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop warmer", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.fallbackClose != nil {
		if err := s.fallbackClose.Close(); err != nil && s.logger != nil {
			s.logger.Warn("snapshot store close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newNetHTTPServer(&http.Server{
			Addr:    ":" + recCfg.Port,
			Handler: handler,
		})
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
