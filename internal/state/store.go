// Package state holds the last successful full fetch, shared by every
// page. The snapshot is only ever replaced wholesale, so readers never see
// a half-updated dataset; concurrent writers still race last-write-wins,
// which the single-tenant design accepts.
package state

import (
	"context"
	"sync"

	"baketrack-backend/internal/model"
)

// Fetcher pulls a fresh snapshot; nil means the fetch failed or the
// endpoint is not configured.
type Fetcher interface {
	FetchFullData(ctx context.Context) *model.Snapshot
}

type Store struct {
	mu       sync.RWMutex
	snapshot *model.Snapshot
	loading  bool
	fetcher  Fetcher
}

func New(fetcher Fetcher) *Store {
	return &Store{fetcher: fetcher}
}

// Snapshot returns the cached dataset, nil before the first successful
// refresh.
func (s *Store) Snapshot() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Refresh fetches and swaps in a new snapshot. On failure the previous
// snapshot stays: stale data beats a blank dashboard. The loading flag
// clears unconditionally. Returns whether the fetch succeeded.
func (s *Store) Refresh(ctx context.Context) bool {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	fresh := s.fetcher.FetchFullData(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if fresh != nil {
		s.snapshot = fresh
	}
	s.loading = false
	return fresh != nil
}

// PatchLocal shallow-merges a partial snapshot without any network round
// trip. It is a no-op before the first refresh and is overwritten by the
// next one; nothing here persists.
func (s *Store) PatchLocal(patch model.SnapshotPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return
	}

	next := *s.snapshot
	if patch.Transactions != nil {
		next.Transactions = *patch.Transactions
	}
	if patch.Products != nil {
		next.Products = *patch.Products
	}
	if patch.Profile != nil {
		next.Profile = *patch.Profile
	}
	if patch.Profiles != nil {
		next.Profiles = *patch.Profiles
	}
	s.snapshot = &next
}
