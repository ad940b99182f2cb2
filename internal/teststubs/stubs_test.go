package teststubs

import (
	"context"
	"errors"
	"testing"

	"league-data-service/internal/domain"
	"league-data-service/internal/providers"
)

func TestStubAdapterTracksCalls(t *testing.T) {
	fetchErr := errors.New("boom")
	adapter := &StubAdapter{
		AdapterLeague: domain.LeagueNBA,
		Data:          domain.Data{Games: []domain.Game{{ID: "g1"}}},
		Err:           fetchErr,
	}

	spec := providers.NewRequestSpec(providers.OpGames, domain.LeagueNBA, nil)
	if _, err := adapter.Fetch(context.Background(), spec); !errors.Is(err, fetchErr) {
		t.Fatalf("expected error passthrough, got %v", err)
	}
	if adapter.Calls.Load() != 1 {
		t.Fatalf("expected call count 1, got %d", adapter.Calls.Load())
	}
	if adapter.League() != domain.LeagueNBA {
		t.Fatalf("unexpected league %s", adapter.League())
	}
}

func TestStubAdapterSupports(t *testing.T) {
	adapter := &StubAdapter{Unsupported: map[providers.Operation]bool{providers.OpOdds: true}}
	if adapter.Supports(providers.OpOdds) {
		t.Fatalf("expected odds unsupported")
	}
	if !adapter.Supports(providers.OpGames) {
		t.Fatalf("expected games supported by default")
	}
}

func TestStubDatasetStoresByIdentity(t *testing.T) {
	ds := &StubDataset{}
	specA := providers.NewRequestSpec(providers.OpGames, domain.LeagueNFL, map[string]string{"date": "2025-01-05"})
	specB := providers.NewRequestSpec(providers.OpGames, domain.LeagueNFL, map[string]string{"date": "2025-02-09"})

	if err := ds.Store(context.Background(), specA, domain.Data{}); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if err := ds.Store(context.Background(), specB, domain.Data{}); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if ds.StoredCount() != 2 {
		t.Fatalf("expected 2 stored snapshots, got %d", ds.StoredCount())
	}

	ds.StoreErr = errors.New("write failed")
	if err := ds.Store(context.Background(), specA, domain.Data{}); err == nil {
		t.Fatalf("expected store error")
	}
}

func TestStubDatasetLookup(t *testing.T) {
	ds := &StubDataset{Found: true, Data: domain.Data{Teams: []domain.Team{{ID: "t1"}}}}
	data, ok, err := ds.Lookup(context.Background(), providers.NewRequestSpec(providers.OpTeams, domain.LeagueNBA, nil))
	if err != nil || !ok || len(data.Teams) != 1 {
		t.Fatalf("unexpected lookup result: %v ok=%v err=%v", data, ok, err)
	}

	ds.LookupErr = errors.New("disk gone")
	if _, _, err := ds.Lookup(context.Background(), providers.NewRequestSpec(providers.OpTeams, domain.LeagueNBA, nil)); err == nil {
		t.Fatalf("expected lookup error")
	}
}

func TestStubEntitlement(t *testing.T) {
	if !StubEntitlement(true).Entitled() {
		t.Fatalf("expected entitled")
	}
	if StubEntitlement(false).Entitled() {
		t.Fatalf("expected not entitled")
	}
}
