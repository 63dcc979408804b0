package huggle

import (
	"context"
	"net/http"

	"github.com/ChimaRyder/huggle-buyer-app/internal/domain"
	"github.com/ChimaRyder/huggle-buyer-app/pkg/errors"
)

type cartItemRequest struct {
	ItemID string `json:"itemId"`
	Amount int    `json:"amount"`
}

// Cart fetches the buyer's authoritative cart.
func (c *Client) Cart(ctx context.Context) (domain.Cart, error) {
	var cart domain.Cart
	if err := c.get(ctx, "/cart", nil, &cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// AddCartItem adds an item to the cart server-side.
func (c *Client) AddCartItem(ctx context.Context, itemID string, amount int) error {
	return c.post(ctx, "/cart/items", cartItemRequest{ItemID: itemID, Amount: amount}, nil)
}

// UpdateCartItem sets an item's quantity server-side.
func (c *Client) UpdateCartItem(ctx context.Context, itemID string, amount int) error {
	return c.put(ctx, "/cart/items", cartItemRequest{ItemID: itemID, Amount: amount}, nil)
}

// RemoveCartItem deletes one cart line server-side.
func (c *Client) RemoveCartItem(ctx context.Context, itemID string) error {
	err := c.delete(ctx, "/cart/items/"+itemID)
	if errors.IsStatus(err, http.StatusNotFound) {
		return &errors.NotFoundError{Resource: "cart item", ID: itemID}
	}
	return err
}

// ClearCart empties the cart server-side.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.delete(ctx, "/cart")
}
