package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"league-data-service/internal/domain"
	"league-data-service/internal/warm"
)

// maxRequestTimeout caps the caller-supplied aggregate deadline so a request
// can never outlive the server's write timeout.
const maxRequestTimeout = 10 * time.Second

// Service is the slice of the aggregator the HTTP layer consumes.
type Service interface {
	Leagues() []domain.League
	TodayGames(ctx context.Context, league domain.League) domain.FetchOutcome
	AllTodayGames(ctx context.Context) map[domain.League]domain.FetchOutcome
	LiveGames(ctx context.Context, league domain.League) domain.FetchOutcome
	AllLiveGames(ctx context.Context) map[domain.League]domain.FetchOutcome
	Games(ctx context.Context, league domain.League, date string) domain.FetchOutcome
	Teams(ctx context.Context, league domain.League) domain.FetchOutcome
	AllTeams(ctx context.Context) map[domain.League]domain.FetchOutcome
	Standings(ctx context.Context, league domain.League) domain.FetchOutcome
	AllStandings(ctx context.Context) map[domain.League]domain.FetchOutcome
	TeamStatistics(ctx context.Context, league domain.League, team string) domain.FetchOutcome
	GameOdds(ctx context.Context, league domain.League, gameIDs []string, maxParallel int) map[string]domain.FetchOutcome
}

// Handler wires HTTP routes to the aggregator.
type Handler struct {
	svc      Service
	logger   *slog.Logger
	statusFn func() warm.Status
}

// NewHandler constructs a Handler. statusFn may be nil when no warmer runs.
func NewHandler(svc Service, logger *slog.Logger, statusFn func() warm.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic based on the cache warmer's health.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	if h.statusFn().IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := h.statusFn().LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Leagues serves the list of supported leagues.
func (h *Handler) Leagues(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.League{"leagues": h.svc.Leagues()}, loggerFromContext(r, h.logger))
}

// TodayGames serves /games/today for one league or all leagues.
func (h *Handler) TodayGames(w http.ResponseWriter, r *http.Request) {
	h.serveAggregate(w, r,
		func(ctx context.Context, league domain.League) domain.FetchOutcome {
			return h.svc.TodayGames(ctx, league)
		},
		h.svc.AllTodayGames,
	)
}

// LiveGames serves /games/live for one league or all leagues.
func (h *Handler) LiveGames(w http.ResponseWriter, r *http.Request) {
	h.serveAggregate(w, r,
		func(ctx context.Context, league domain.League) domain.FetchOutcome {
			return h.svc.LiveGames(ctx, league)
		},
		h.svc.AllLiveGames,
	)
}

// Games serves /games, requiring a league and accepting a date filter.
func (h *Handler) Games(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	league, ok := h.requireLeague(w, r)
	if !ok {
		return
	}
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
			return
		}
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()
	writeJSON(w, http.StatusOK, h.svc.Games(ctx, league, date), loggerFromContext(r, h.logger))
}

// Teams serves /teams for one league or all leagues.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	h.serveAggregate(w, r,
		func(ctx context.Context, league domain.League) domain.FetchOutcome {
			return h.svc.Teams(ctx, league)
		},
		h.svc.AllTeams,
	)
}

// Standings serves /standings for one league or all leagues.
func (h *Handler) Standings(w http.ResponseWriter, r *http.Request) {
	h.serveAggregate(w, r,
		func(ctx context.Context, league domain.League) domain.FetchOutcome {
			return h.svc.Standings(ctx, league)
		},
		h.svc.AllStandings,
	)
}

// TeamStats serves /teams/{team}/stats?league=.
func (h *Handler) TeamStats(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	team := parseTeamPath(r.URL.Path)
	if team == "" {
		writeError(w, r, http.StatusBadRequest, "invalid team", h.logger)
		return
	}
	league, ok := h.requireLeague(w, r)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()
	writeJSON(w, http.StatusOK, h.svc.TeamStatistics(ctx, league, team), loggerFromContext(r, h.logger))
}

// Odds serves /odds?league=&game_ids=a,b,c.
func (h *Handler) Odds(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	league, ok := h.requireLeague(w, r)
	if !ok {
		return
	}
	raw := strings.TrimSpace(r.URL.Query().Get("game_ids"))
	if raw == "" {
		writeError(w, r, http.StatusBadRequest, "missing game_ids", h.logger)
		return
	}
	var gameIDs []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			gameIDs = append(gameIDs, id)
		}
	}
	if len(gameIDs) == 0 {
		writeError(w, r, http.StatusBadRequest, "missing game_ids", h.logger)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()
	writeJSON(w, http.StatusOK, h.svc.GameOdds(ctx, league, gameIDs, 0), loggerFromContext(r, h.logger))
}

// serveAggregate handles the one-league/all-leagues split shared by most
// routes: a league query selects the single-league path, otherwise the
// request fans out across every league.
func (h *Handler) serveAggregate(
	w http.ResponseWriter,
	r *http.Request,
	single func(context.Context, domain.League) domain.FetchOutcome,
	all func(context.Context) map[domain.League]domain.FetchOutcome,
) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	ctx, cancel := h.requestContext(r)
	defer cancel()

	raw := strings.TrimSpace(r.URL.Query().Get("league"))
	if raw == "" {
		writeJSON(w, http.StatusOK, all(ctx), logger)
		return
	}
	league, ok := domain.ParseLeague(raw)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "unknown league", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, single(ctx, league), logger)
}

// requestContext applies the optional caller-supplied timeout, capped so a
// request cannot outlive the server's write timeout.
func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := maxRequestTimeout
	if raw := strings.TrimSpace(r.URL.Query().Get("timeout")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 && parsed < timeout {
			timeout = parsed
		}
	}
	return context.WithTimeout(r.Context(), timeout)
}

func (h *Handler) requireLeague(w http.ResponseWriter, r *http.Request) (domain.League, bool) {
	league, ok := domain.ParseLeague(r.URL.Query().Get("league"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "unknown league", h.logger)
		return "", false
	}
	return league, true
}

// parseTeamPath extracts the team segment from /teams/{team}/stats.
func parseTeamPath(path string) string {
	rest, ok := strings.CutPrefix(path, "/teams/")
	if !ok {
		return ""
	}
	team, ok := strings.CutSuffix(rest, "/stats")
	if !ok || team == "" || strings.Contains(team, "/") {
		return ""
	}
	return team
}
