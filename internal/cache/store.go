// Package cache holds normalized upstream responses keyed by request, ages
// them by per-operation TTLs, and collapses duplicate concurrent loads for
// the same key into a single upstream call.
//
// Eviction is lazy: Get checks freshness on read and expired entries stay
// addressable via GetStale until replaced. The key space is small (a handful
// of operations per league), so unbounded growth is an accepted limit here.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"league-data-service/internal/domain"
)

// Entry is one cached payload with its freshness bookkeeping. Entries are
// replaced whole; the payload is immutable and shared with readers.
type Entry struct {
	Key       string
	Data      domain.Data
	FetchedAt time.Time
	TTL       time.Duration
}

// FreshAt reports whether the entry is still within its TTL at the given time.
func (e Entry) FreshAt(now time.Time) bool {
	return now.Sub(e.FetchedAt) < e.TTL
}

// Store is a thread-safe, TTL-bounded cache shared by all leagues.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
	flight  singleflight.Group
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// Get returns the entry for key only while it is fresh.
func (s *Store) Get(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok || !entry.FreshAt(s.now()) {
		return Entry{}, false
	}
	return entry, true
}

// GetStale returns the entry for key regardless of freshness. Used only as a
// degradation source after a live load has failed.
func (s *Store) GetStale(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	return entry, ok
}

// Put atomically replaces the entry for key. Readers observe either the old
// or the new entry in full, never a partial write.
func (s *Store) Put(key string, data domain.Data, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = Entry{
		Key:       key,
		Data:      data,
		FetchedAt: s.now(),
		TTL:       ttl,
	}
}

// Len returns the number of entries currently held, fresh or stale.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Do runs loader under single-flight semantics for key: while a load is in
// progress, concurrent callers for the same key wait for and share its
// outcome (success or failure) instead of issuing duplicate loads. shared
// reports whether the result was given to more than one caller.
func (s *Store) Do(key string, loader func() (domain.Data, error)) (data domain.Data, err error, shared bool) {
	v, err, shared := s.flight.Do(key, func() (any, error) {
		return loader()
	})
	if v != nil {
		data = v.(domain.Data)
	}
	return data, err, shared
}

// DoChan is Do with a channel result, letting callers stop waiting on their
// own deadline while the load itself keeps running and may still populate
// the cache for later callers.
func (s *Store) DoChan(key string, loader func() (domain.Data, error)) <-chan singleflight.Result {
	return s.flight.DoChan(key, func() (any, error) {
		return loader()
	})
}
