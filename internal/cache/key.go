package cache

import (
	"league-data-service/internal/providers"
)

// Key derives the deterministic cache key for a request. Specs with equal
// operation, league and filters produce identical keys regardless of the
// order filters were supplied in.
func Key(spec providers.RequestSpec) string {
	key := string(spec.Op) + ":" + string(spec.League)
	if filters := spec.CanonicalFilters(); filters != "" {
		key += ":" + filters
	}
	return key
}
