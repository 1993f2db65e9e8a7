// Package planner holds the visitor's day plan for the current session.
package planner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/enjoypark/companion/internal/domain"
	"github.com/enjoypark/companion/internal/logger"
	"github.com/enjoypark/companion/internal/parkapi"
)

// Fetcher loads the authoritative planner collection from the backend.
// *parkapi.Client satisfies it.
type Fetcher interface {
	PlannerItems(ctx context.Context, date string) ([]*domain.PlannerItem, error)
}

// Store is the in-session ordered collection of planner items.
//
// Mutations and refreshes may interleave: a refresh that completes after
// a local mutation merges by identity instead of replacing wholesale, so
// optimistic local edits survive. Failures never propagate to callers;
// the store keeps serving its last known state and callers treat an
// unchanged collection as the failure signal.
type Store struct {
	mu          sync.RWMutex
	items       []*domain.PlannerItem
	seq         uint64 // bumped on every local mutation
	lastRefresh time.Time

	fetcher Fetcher
	logger  logger.Logger
}

// NewStore creates an empty planner store.
func NewStore(fetcher Fetcher, log logger.Logger) *Store {
	return &Store{
		fetcher: fetcher,
		logger:  log,
	}
}

// Add appends the item unconditionally. It performs no deduplication;
// callers are required to pre-check with IsAlreadyPlanned.
func (s *Store) Add(item *domain.PlannerItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, item)
	s.seq++
}

// Remove filters out the item with the given id. Unknown ids are a no-op;
// Remove never errors.
func (s *Store) Remove(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]*domain.PlannerItem, 0, len(s.items))
	for _, it := range s.items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(s.items) {
		return
	}
	s.items = kept
	s.seq++
}

// Items returns a snapshot copy of the collection in insertion order.
func (s *Store) Items() []*domain.PlannerItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.PlannerItem, len(s.items))
	copy(out, s.items)
	return out
}

// Count returns the number of planned items.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// LastRefresh returns when the collection was last replaced from the
// backend, zero if never.
func (s *Store) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastRefresh
}

// IsAlreadyPlanned reports whether any planned item already represents
// the point of interest identified by sourceID/name. This predicate
// guards every add.
func (s *Store) IsAlreadyPlanned(sourceID, name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, it := range s.items {
		if it.RefersTo(sourceID, name) {
			return true
		}
	}
	return false
}

// Refresh fetches the authoritative collection for the given date
// (YYYY-MM-DD). The fetched set is deduplicated by normalized name, first
// occurrence winning. A missing credential or a failed fetch leaves the
// prior state untouched; both are logged, never surfaced. There is no
// retry; re-invoking Refresh is the only recovery path.
func (s *Store) Refresh(ctx context.Context, asOfDate string) {
	s.mu.RLock()
	startSeq := s.seq
	s.mu.RUnlock()

	fetched, err := s.fetcher.PlannerItems(ctx, asOfDate)
	if err != nil {
		if errors.Is(err, parkapi.ErrNoCredential) {
			s.logger.Debug("planner refresh skipped, no credential")
		} else {
			s.logger.Warn("planner refresh failed, keeping current state",
				logger.String("date", asOfDate),
				logger.Error(err))
		}
		return
	}

	fetched = domain.DedupeByName(fetched)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq == startSeq {
		s.items = fetched
	} else {
		// A local mutation landed while the fetch was in flight; union by
		// identity so optimistic edits survive, server entries first.
		s.items = mergeLocal(fetched, s.items)
	}
	s.lastRefresh = time.Now()

	s.logger.Info("planner refreshed",
		logger.String("date", asOfDate),
		logger.Int("items", len(s.items)))
}

// mergeLocal appends local items that no fetched entry already
// represents.
func mergeLocal(fetched, local []*domain.PlannerItem) []*domain.PlannerItem {
	out := fetched
	for _, li := range local {
		represented := false
		for _, fi := range fetched {
			if domain.SameEntry(fi, li) {
				represented = true
				break
			}
		}
		if !represented {
			out = append(out, li)
		}
	}
	return out
}
