package providers

import (
	"context"

	"league-data-service/internal/domain"
)

// LeagueAdapter translates logical requests for one league into upstream
// provider calls and normalizes the responses. Adapters are pure translation
// boundaries: no retries, no caching, no rate limiting.
type LeagueAdapter interface {
	// League returns the league this adapter was constructed for.
	League() domain.League

	// Supports reports whether the adapter can serve the operation.
	Supports(op Operation) bool

	// Fetch performs the upstream call described by spec and returns the
	// normalized payload. spec.League must match League(); spec.Op must be
	// supported, else Fetch fails with ErrUnsupportedOperation.
	Fetch(ctx context.Context, spec RequestSpec) (domain.Data, error)
}
