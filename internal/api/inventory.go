package api

import (
	"context"
	"fmt"
)

// Dashboard endpoints. All of these require a store_owner session; the
// backend scopes every call to the owner's store.

// Inventory lists the owner's price entries.
func (c *Client) Inventory(ctx context.Context) ([]PriceEntry, error) {
	var entries []PriceEntry
	if err := c.get(ctx, "/inventory/", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AddPrice creates an inventory entry.
func (c *Client) AddPrice(ctx context.Context, price PriceCreate) (PriceEntry, error) {
	var entry PriceEntry
	if err := c.do(ctx, "POST", "/inventory/", nil, price, &entry); err != nil {
		return PriceEntry{}, err
	}
	return entry, nil
}

// UpdatePrice edits an inventory entry the owner holds.
func (c *Client) UpdatePrice(ctx context.Context, priceID int, update PriceUpdate) (PriceEntry, error) {
	var entry PriceEntry
	if err := c.do(ctx, "PUT", fmt.Sprintf("/inventory/%d", priceID), nil, update, &entry); err != nil {
		return PriceEntry{}, err
	}
	return entry, nil
}

// DeletePrice removes an inventory entry.
func (c *Client) DeletePrice(ctx context.Context, priceID int) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/inventory/%d", priceID), nil, nil, nil)
}

// StoreViewCounts returns per-product view totals for the owner's store.
func (c *Client) StoreViewCounts(ctx context.Context) ([]ViewCount, error) {
	var counts []ViewCount
	if err := c.get(ctx, "/analytics/views", nil, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// CreateStore registers the owner's store. A user may own at most one store;
// the backend rejects a second registration.
func (c *Client) CreateStore(ctx context.Context, store StoreCreate) (StoreSimple, error) {
	var created StoreSimple
	if err := c.do(ctx, "POST", "/stores/", nil, store, &created); err != nil {
		return StoreSimple{}, err
	}
	return created, nil
}
