package moltin

import (
	"context"
	"fmt"
	"net/http"
)

// cartPath gives every user a dedicated cart keyed by their chat ID.
func cartPath(userID int64) string {
	return fmt.Sprintf("/v2/carts/%d", userID)
}

// EnsureCart makes the user's cart exist. The backend creates a cart on
// first read, so a plain GET is enough.
func (c *Client) EnsureCart(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodGet, cartPath(userID), nil, nil)
}

// CartItems returns the cart lines and the order total.
func (c *Client) CartItems(ctx context.Context, userID int64) (Cart, error) {
	var resp cartItemsResponse
	if err := c.do(ctx, http.MethodGet, cartPath(userID)+"/items", nil, &resp); err != nil {
		return Cart{}, err
	}

	cart := Cart{
		Items:        make([]CartItem, 0, len(resp.Data)),
		Total:        resp.Meta.DisplayPrice.WithTax.Amount,
		TotalDisplay: resp.Meta.DisplayPrice.WithTax.Formatted,
	}
	for _, item := range resp.Data {
		cart.Items = append(cart.Items, CartItem{
			ID:              item.ID,
			Name:            item.Name,
			Quantity:        item.Quantity,
			Subtotal:        item.Meta.DisplayPrice.WithTax.Value.Amount,
			SubtotalDisplay: item.Meta.DisplayPrice.WithTax.Value.Formatted,
		})
	}

	return cart, nil
}

// AddCartItem puts quantity units of a product into the user's cart.
func (c *Client) AddCartItem(ctx context.Context, userID int64, productID string, quantity int) error {
	body := map[string]any{
		"data": map[string]any{
			"id":       productID,
			"type":     "cart_item",
			"quantity": quantity,
		},
	}

	return c.do(ctx, http.MethodPost, cartPath(userID)+"/items", body, nil)
}

// RemoveCartItem deletes one line from the user's cart.
func (c *Client) RemoveCartItem(ctx context.Context, userID int64, itemID string) error {
	return c.do(ctx, http.MethodDelete, cartPath(userID)+"/items/"+itemID, nil, nil)
}
