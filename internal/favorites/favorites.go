// Package favorites caches the user's favorite stores for the session. The
// cache exists so product and profile screens can answer "is this store a
// favorite" without a round trip; the backend stays the source of truth and
// every mutation is confirmed by a resync.
package favorites

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"neighbor/internal/api"
)

// API is the slice of the client the set drives.
type API interface {
	FavoriteStores(ctx context.Context) ([]api.StoreSimple, error)
	AddFavoriteStore(ctx context.Context, storeID int) error
	RemoveFavoriteStore(ctx context.Context, storeID int) error
}

// SessionChecker reports whether an authenticated session exists.
type SessionChecker interface {
	Authenticated() bool
}

// Set is the session-scoped favorite store cache. While logged out it is
// dormant: lookups answer false and mutations are rejected.
type Set struct {
	api     API
	session SessionChecker
	log     *zap.Logger

	mu     sync.Mutex
	ids    map[int]struct{}
	stores []api.StoreSimple
	loaded bool
}

// New builds an empty Set.
func New(client API, session SessionChecker, log *zap.Logger) *Set {
	if log == nil {
		log = zap.NewNop()
	}
	return &Set{api: client, session: session, log: log}
}

// Sync replaces the cache with the server's favorite list.
func (s *Set) Sync(ctx context.Context) error {
	if !s.session.Authenticated() {
		return api.ErrUnauthorized
	}
	stores, err := s.api.FavoriteStores(ctx)
	if err != nil {
		return fmt.Errorf("sync favorites: %w", err)
	}
	ids := make(map[int]struct{}, len(stores))
	for _, st := range stores {
		ids[st.ID] = struct{}{}
	}
	s.mu.Lock()
	s.ids = ids
	s.stores = stores
	s.loaded = true
	s.mu.Unlock()
	s.log.Debug("favorites synced", zap.Int("count", len(stores)))
	return nil
}

// Toggle flips the favorite state of storeID and resyncs. The pre-toggle
// state is read from the cache, so callers should Sync once before relying
// on it.
func (s *Set) Toggle(ctx context.Context, storeID int) error {
	if s.Contains(storeID) {
		return s.Remove(ctx, storeID)
	}
	return s.Add(ctx, storeID)
}

// Add marks a store as favorite and resyncs.
func (s *Set) Add(ctx context.Context, storeID int) error {
	if !s.session.Authenticated() {
		return api.ErrUnauthorized
	}
	if err := s.api.AddFavoriteStore(ctx, storeID); err != nil {
		return fmt.Errorf("add favorite %d: %w", storeID, err)
	}
	return s.Sync(ctx)
}

// Remove unmarks a store and resyncs.
func (s *Set) Remove(ctx context.Context, storeID int) error {
	if !s.session.Authenticated() {
		return api.ErrUnauthorized
	}
	if err := s.api.RemoveFavoriteStore(ctx, storeID); err != nil {
		return fmt.Errorf("remove favorite %d: %w", storeID, err)
	}
	return s.Sync(ctx)
}

// Contains reports whether storeID is currently a favorite. Always false
// before the first sync or while logged out.
func (s *Set) Contains(storeID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[storeID]
	return ok
}

// Stores returns the cached favorite stores. ok is false before the first
// successful sync.
func (s *Set) Stores() ([]api.StoreSimple, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stores, s.loaded
}

// Clear drops the cache on logout.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = nil
	s.stores = nil
	s.loaded = false
}
