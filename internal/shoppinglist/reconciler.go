// Package shoppinglist caches the user's shopping list and keeps it
// reconciled with the backend: every successful mutation is followed by a
// full refetch, because the server is the authority on merging, pricing and
// totals. The cache is never advanced ahead of a refetch, so a failed
// mutation leaves it exactly at the last server-confirmed state.
package shoppinglist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"neighbor/internal/api"
)

// ErrNoSession is returned when the list is touched without a login.
var ErrNoSession = errors.New("shoppinglist: no authenticated session")

// API is the slice of the client the reconciler drives.
type API interface {
	ShoppingList(ctx context.Context) (api.ShoppingList, error)
	AddListItem(ctx context.Context, item api.ListItemCreate) (api.ListItem, error)
	UpdateListItem(ctx context.Context, itemID, quantity int) error
	DeleteListItem(ctx context.Context, itemID int) error
}

// SessionChecker reports whether an authenticated session exists.
type SessionChecker interface {
	Authenticated() bool
}

// Reconciler is the client-side shopping list cache.
type Reconciler struct {
	api     API
	session SessionChecker
	log     *zap.Logger

	mu     sync.Mutex
	list   api.ShoppingList
	loaded bool
}

// New builds a Reconciler.
func New(client API, session SessionChecker, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{api: client, session: session, log: log}
}

// Refresh unconditionally replaces the cache with the server's list. Skipped
// with ErrNoSession when logged out.
func (r *Reconciler) Refresh(ctx context.Context) error {
	if !r.session.Authenticated() {
		return ErrNoSession
	}
	list, err := r.api.ShoppingList(ctx)
	if err != nil {
		return fmt.Errorf("refresh shopping list: %w", err)
	}
	r.mu.Lock()
	r.list = list
	r.loaded = true
	r.mu.Unlock()
	r.log.Debug("shopping list refreshed",
		zap.Int("items", len(list.Items)),
		zap.Float64("total", list.TotalPrice))
	return nil
}

// Add sends a create for the listing and refetches. Whether the new line
// merges into an existing one is the backend's call, not ours.
func (r *Reconciler) Add(ctx context.Context, item api.ListItemCreate) error {
	if !r.session.Authenticated() {
		return ErrNoSession
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	if _, err := r.api.AddListItem(ctx, item); err != nil {
		return fmt.Errorf("add list item: %w", err)
	}
	return r.Refresh(ctx)
}

// SetQuantity updates an item's quantity. A target of zero or below becomes
// a removal; a zero-quantity line must never exist, locally or server-side.
func (r *Reconciler) SetQuantity(ctx context.Context, itemID, quantity int) error {
	if !r.session.Authenticated() {
		return ErrNoSession
	}
	if quantity <= 0 {
		if err := r.api.DeleteListItem(ctx, itemID); err != nil {
			return fmt.Errorf("remove list item %d: %w", itemID, err)
		}
	} else {
		if err := r.api.UpdateListItem(ctx, itemID, quantity); err != nil {
			return fmt.Errorf("update list item %d: %w", itemID, err)
		}
	}
	return r.Refresh(ctx)
}

// Remove deletes an item and refetches.
func (r *Reconciler) Remove(ctx context.Context, itemID int) error {
	return r.SetQuantity(ctx, itemID, 0)
}

// List returns the cached list. ok is false before the first successful
// refresh, which the UI renders as a loading state.
func (r *Reconciler) List() (api.ShoppingList, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list, r.loaded
}

// Clear drops the cache. Called on logout; the list belongs to the session.
func (r *Reconciler) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = api.ShoppingList{}
	r.loaded = false
}
