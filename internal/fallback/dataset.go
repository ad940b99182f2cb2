// Package fallback provides the last-resort data sources consulted when both
// the live upstream and the cache (fresh or stale) cannot answer.
package fallback

import (
	"context"

	"league-data-service/internal/domain"
	"league-data-service/internal/providers"
)

// Dataset answers requests from a locally held historical snapshot. Lookup
// reports ok=false when the dataset has no record for the spec; errors are
// reserved for storage failures.
type Dataset interface {
	Lookup(ctx context.Context, spec providers.RequestSpec) (domain.Data, bool, error)
}

// Snapshotter accepts live results so the fallback snapshot stays current.
// Implemented by datasets that support write-through.
type Snapshotter interface {
	Store(ctx context.Context, spec providers.RequestSpec, data domain.Data) error
}
