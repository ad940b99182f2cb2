package providers

import (
	"testing"

	"league-data-service/internal/domain"
)

func TestNewRequestSpecCopiesFilters(t *testing.T) {
	filters := map[string]string{"Date": "2025-01-15"}
	spec := NewRequestSpec(OpGames, domain.LeagueNBA, filters)

	filters["Date"] = "mutated"
	if got, _ := spec.Filter(FilterDate); got != "2025-01-15" {
		t.Fatalf("expected spec to keep its own copy, got %q", got)
	}
}

func TestNewRequestSpecNormalizesKeys(t *testing.T) {
	spec := NewRequestSpec(OpGames, domain.LeagueNBA, map[string]string{
		" TEAM ": "lakers",
		"status": "",
	})

	if got, ok := spec.Filter(FilterTeam); !ok || got != "lakers" {
		t.Fatalf("expected team filter lowercased and trimmed, got %q ok=%v", got, ok)
	}
	if _, ok := spec.Filter(FilterStatus); ok {
		t.Fatalf("expected empty filter value to be dropped")
	}
}

func TestCanonicalFiltersOrderIndependent(t *testing.T) {
	a := NewRequestSpec(OpGames, domain.LeagueNBA, map[string]string{
		"date": "2025-01-15",
		"team": "lakers",
	})
	b := NewRequestSpec(OpGames, domain.LeagueNBA, map[string]string{
		"team": "lakers",
		"date": "2025-01-15",
	})

	if a.CanonicalFilters() != b.CanonicalFilters() {
		t.Fatalf("canonical forms differ: %q vs %q", a.CanonicalFilters(), b.CanonicalFilters())
	}
	if want := "date=2025-01-15&team=lakers"; a.CanonicalFilters() != want {
		t.Fatalf("expected %q, got %q", want, a.CanonicalFilters())
	}
}

func TestCanonicalFiltersEmpty(t *testing.T) {
	spec := NewRequestSpec(OpTeams, domain.LeagueNHL, nil)
	if got := spec.CanonicalFilters(); got != "" {
		t.Fatalf("expected empty canonical form, got %q", got)
	}
	if spec.Filters() != nil {
		t.Fatalf("expected nil filters copy for empty spec")
	}
}
