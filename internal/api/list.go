package api

import (
	"context"
	"fmt"
)

// ShoppingList fetches the authenticated user's list. The backend creates the
// list lazily on first fetch and computes the total.
func (c *Client) ShoppingList(ctx context.Context) (ShoppingList, error) {
	var list ShoppingList
	if err := c.get(ctx, "/list/", nil, &list); err != nil {
		return ShoppingList{}, err
	}
	return list, nil
}

// AddListItem adds a product listing to the list. Merging with an existing
// line for the same product and store is the backend's decision.
func (c *Client) AddListItem(ctx context.Context, item ListItemCreate) (ListItem, error) {
	var added ListItem
	if err := c.do(ctx, "POST", "/list/items", nil, item, &added); err != nil {
		return ListItem{}, err
	}
	return added, nil
}

// UpdateListItem sets the quantity of a list item. Quantity must be positive;
// the reconciler translates non-positive quantities into a delete before ever
// reaching this call.
func (c *Client) UpdateListItem(ctx context.Context, itemID, quantity int) error {
	body := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}
	return c.do(ctx, "PUT", fmt.Sprintf("/list/items/%d", itemID), nil, body, nil)
}

// DeleteListItem removes a list item.
func (c *Client) DeleteListItem(ctx context.Context, itemID int) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/list/items/%d", itemID), nil, nil, nil)
}
