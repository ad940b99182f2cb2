package providers

import (
	"sort"
	"strings"

	"league-data-service/internal/domain"
)

// Well-known filter names accepted by RequestSpec.
const (
	FilterDate   = "date"
	FilterTeam   = "team"
	FilterStatus = "status"
	FilterSeason = "season"
	FilterGameID = "game_id"
)

// RequestSpec is an immutable description of one logical upstream request:
// an operation, the league it targets, and optional filters.
type RequestSpec struct {
	Op      Operation
	League  domain.League
	filters map[string]string
}

// NewRequestSpec builds a spec, copying the filter map so later mutation by
// the caller cannot change the spec's identity.
func NewRequestSpec(op Operation, league domain.League, filters map[string]string) RequestSpec {
	spec := RequestSpec{Op: op, League: league}
	if len(filters) > 0 {
		spec.filters = make(map[string]string, len(filters))
		for k, v := range filters {
			if v == "" {
				continue
			}
			spec.filters[strings.ToLower(strings.TrimSpace(k))] = v
		}
	}
	return spec
}

// Filter returns the named filter value when set.
func (s RequestSpec) Filter(name string) (string, bool) {
	v, ok := s.filters[name]
	return v, ok
}

// Filters returns a copy of the filter map.
func (s RequestSpec) Filters() map[string]string {
	if len(s.filters) == 0 {
		return nil
	}
	out := make(map[string]string, len(s.filters))
	for k, v := range s.filters {
		out[k] = v
	}
	return out
}

// CanonicalFilters renders the filters as "k=v&k=v" with keys sorted, so two
// semantically equal specs always render identically regardless of the order
// filters were supplied in.
func (s RequestSpec) CanonicalFilters() string {
	if len(s.filters) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s.filters))
	for k := range s.filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s.filters[k])
	}
	return b.String()
}
