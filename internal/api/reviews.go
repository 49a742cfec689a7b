package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ReviewsForProduct lists the reviews of one product, newest first.
func (c *Client) ReviewsForProduct(ctx context.Context, productID int) ([]Review, error) {
	var reviews []Review
	if err := c.get(ctx, fmt.Sprintf("/reviews/product/%d", productID), nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// SubmitReview posts a review. Requires an authenticated session.
func (c *Client) SubmitReview(ctx context.Context, review ReviewCreate) error {
	return c.do(ctx, "POST", "/reviews/", nil, review, nil)
}

// LogProductView records a product page view for the owner's analytics. The
// caller treats this as fire and forget; a failure is logged and never
// surfaced to the shopper.
func (c *Client) LogProductView(ctx context.Context, productID int) error {
	event := ProductViewLog{
		ProductID: productID,
		RequestID: uuid.NewString(),
	}
	return c.do(ctx, "POST", "/analytics/log-view", nil, event, nil)
}
