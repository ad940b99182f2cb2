package teststubs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"league-data-service/internal/domain"
	"league-data-service/internal/providers"
)

// StubAdapter is a test double for providers.LeagueAdapter.
type StubAdapter struct {
	AdapterLeague domain.League
	Data          domain.Data
	Err           error
	Delay         time.Duration
	Calls         atomic.Int32
	Unsupported   map[providers.Operation]bool
}

// League returns the configured league.
func (s *StubAdapter) League() domain.League { return s.AdapterLeague }

// Supports reports true unless the operation is marked unsupported.
func (s *StubAdapter) Supports(op providers.Operation) bool {
	return !s.Unsupported[op]
}

// Fetch returns configured data and error while tracking calls, after an
// optional delay honoring context cancellation.
func (s *StubAdapter) Fetch(ctx context.Context, spec providers.RequestSpec) (domain.Data, error) {
	_ = spec
	s.Calls.Add(1)
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return domain.Data{}, ctx.Err()
		}
	}
	return s.Data, s.Err
}

// StubDataset is a test double for fallback.Dataset and fallback.Snapshotter.
type StubDataset struct {
	Data      domain.Data
	Found     bool
	LookupErr error
	StoreErr  error

	mu     sync.Mutex
	stored map[string]domain.Data
}

// Lookup returns the configured payload.
func (s *StubDataset) Lookup(ctx context.Context, spec providers.RequestSpec) (domain.Data, bool, error) {
	_ = ctx
	_ = spec
	if s.LookupErr != nil {
		return domain.Data{}, false, s.LookupErr
	}
	return s.Data, s.Found, nil
}

// Store records the payload keyed by the spec's canonical identity.
func (s *StubDataset) Store(ctx context.Context, spec providers.RequestSpec, data domain.Data) error {
	_ = ctx
	if s.StoreErr != nil {
		return s.StoreErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stored == nil {
		s.stored = make(map[string]domain.Data)
	}
	s.stored[string(spec.Op)+":"+string(spec.League)+":"+spec.CanonicalFilters()] = data
	return nil
}

// StoredCount reports how many snapshots were written.
func (s *StubDataset) StoredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stored)
}

// StubEntitlement is a fixed-answer entitlement gate.
type StubEntitlement bool

// Entitled returns the configured answer.
func (s StubEntitlement) Entitled() bool { return bool(s) }
