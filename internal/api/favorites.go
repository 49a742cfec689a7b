package api

import (
	"context"
	"fmt"
)

// FavoriteStores lists the stores the user has favorited.
func (c *Client) FavoriteStores(ctx context.Context) ([]StoreSimple, error) {
	var stores []StoreSimple
	if err := c.get(ctx, "/favorites/stores", nil, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

// AddFavoriteStore favorites a store.
func (c *Client) AddFavoriteStore(ctx context.Context, storeID int) error {
	return c.do(ctx, "POST", fmt.Sprintf("/favorites/stores/%d", storeID), nil, nil, nil)
}

// RemoveFavoriteStore unfavorites a store.
func (c *Client) RemoveFavoriteStore(ctx context.Context, storeID int) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/favorites/stores/%d", storeID), nil, nil, nil)
}
