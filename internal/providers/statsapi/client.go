package statsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"league-data-service/internal/domain"
	"league-data-service/internal/providers"
)

// Config controls how an Adapter reaches the upstream API.
type Config struct {
	League     domain.League
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timezone   string
	// Timeouts overrides the per-operation deadlines; missing operations use
	// the provider defaults.
	Timeouts map[providers.Operation]time.Duration
}

// Adapter fetches data for a single league from the upstream API and maps it
// to the normalized domain models. It performs no retries and no caching.
type Adapter struct {
	league     domain.League
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
	loc        *time.Location
	timeouts   map[providers.Operation]time.Duration
}

// New constructs an adapter bound to cfg.League.
func New(cfg Config) (*Adapter, error) {
	if _, ok := leaguePaths[cfg.League]; !ok {
		return nil, fmt.Errorf("%s: unknown league %q", providerName, cfg.League)
	}
	return &Adapter{
		league:     cfg.League,
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
		loc:        resolveLocation(cfg.Timezone),
		timeouts:   cfg.Timeouts,
	}, nil
}

// League returns the league this adapter serves.
func (a *Adapter) League() domain.League { return a.league }

// Supports reports whether the operation maps to an upstream endpoint.
func (a *Adapter) Supports(op providers.Operation) bool {
	_, ok := a.endpoint(op)
	return ok
}

// Fetch performs one upstream call and normalizes the response.
func (a *Adapter) Fetch(ctx context.Context, spec providers.RequestSpec) (domain.Data, error) {
	if spec.League != a.league {
		return domain.Data{}, fmt.Errorf("%w: adapter bound to %s, spec targets %s",
			providers.ErrUnsupportedOperation, a.league, spec.League)
	}
	path, ok := a.endpoint(spec.Op)
	if !ok {
		return domain.Data{}, fmt.Errorf("%w: %s", providers.ErrUnsupportedOperation, spec.Op)
	}

	timeout := a.timeoutFor(spec.Op)
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := a.buildRequest(callCtx, path, spec)
	if err != nil {
		return domain.Data{}, err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.Data{}, &providers.TimeoutError{Op: spec.Op, Timeout: timeout}
		}
		return domain.Data{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody+16))
		return domain.Data{}, &providers.UpstreamError{
			League:  string(a.league),
			Status:  resp.StatusCode,
			Message: truncateBody(body),
		}
	}

	var env envelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil {
		if errors.Is(decodeErr, context.DeadlineExceeded) {
			return domain.Data{}, &providers.TimeoutError{Op: spec.Op, Timeout: timeout}
		}
		return domain.Data{}, &providers.MalformedResponseError{League: string(a.league), Op: spec.Op, Cause: decodeErr}
	}
	if len(env.Data) == 0 {
		return domain.Data{}, &providers.MalformedResponseError{
			League: string(a.league), Op: spec.Op, Cause: errors.New("missing data field"),
		}
	}

	return a.normalize(spec.Op, env.Data)
}

// endpoint maps an operation to its upstream path under the league base path.
func (a *Adapter) endpoint(op providers.Operation) (string, bool) {
	switch op {
	case providers.OpGames, providers.OpTodayGames, providers.OpLiveGames:
		return "/games", true
	case providers.OpTeams:
		return "/teams", true
	case providers.OpStandings:
		return "/standings", true
	case providers.OpTeamStats:
		return "/teams/statistics", true
	case providers.OpOdds:
		return "/odds", true
	}
	return "", false
}

func (a *Adapter) buildRequest(ctx context.Context, path string, spec providers.RequestSpec) (*http.Request, error) {
	target := a.baseURL + "/" + leaguePaths[a.league] + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	req.URL.RawQuery = a.buildQuery(spec).Encode()
	if a.apiKey != "" {
		req.Header.Set(apiKeyHeader, a.apiKey)
	}
	return req, nil
}

func (a *Adapter) buildQuery(spec providers.RequestSpec) url.Values {
	q := url.Values{}
	for name, value := range spec.Filters() {
		q.Set(name, value)
	}
	switch spec.Op {
	case providers.OpTodayGames:
		if _, ok := spec.Filter(providers.FilterDate); !ok {
			q.Set(providers.FilterDate, a.now().In(a.loc).Format("2006-01-02"))
		}
	case providers.OpLiveGames:
		q.Set("live", "true")
	}
	return q
}

func (a *Adapter) timeoutFor(op providers.Operation) time.Duration {
	if d, ok := a.timeouts[op]; ok && d > 0 {
		return d
	}
	return providers.DefaultTimeout(op)
}

func (a *Adapter) normalize(op providers.Operation, raw json.RawMessage) (domain.Data, error) {
	malformed := func(err error) (domain.Data, error) {
		return domain.Data{}, &providers.MalformedResponseError{League: string(a.league), Op: op, Cause: err}
	}

	switch op {
	case providers.OpGames, providers.OpTodayGames, providers.OpLiveGames:
		var rows []gameResponse
		if err := json.Unmarshal(raw, &rows); err != nil {
			return malformed(err)
		}
		return domain.Data{Games: a.mapGames(rows)}, nil
	case providers.OpTeams:
		var rows []teamResponse
		if err := json.Unmarshal(raw, &rows); err != nil {
			return malformed(err)
		}
		return domain.Data{Teams: a.mapTeams(rows)}, nil
	case providers.OpStandings:
		var rows []standingResponse
		if err := json.Unmarshal(raw, &rows); err != nil {
			return malformed(err)
		}
		return domain.Data{Standings: a.mapStandings(rows)}, nil
	case providers.OpTeamStats:
		var rows []teamStatsResponse
		if err := json.Unmarshal(raw, &rows); err != nil {
			return malformed(err)
		}
		return domain.Data{TeamStats: a.mapTeamStats(rows)}, nil
	case providers.OpOdds:
		var rows []oddsResponse
		if err := json.Unmarshal(raw, &rows); err != nil {
			return malformed(err)
		}
		return domain.Data{Odds: a.mapOdds(rows)}, nil
	}
	return domain.Data{}, fmt.Errorf("%w: %s", providers.ErrUnsupportedOperation, op)
}
