package moltin

import (
	"context"
	"net/http"
	"strconv"
)

// CreateCustomer registers a customer record and returns its ID.
func (c *Client) CreateCustomer(ctx context.Context, name, email string) (string, error) {
	body := map[string]any{
		"data": map[string]any{
			"type":  "customer",
			"name":  name,
			"email": email,
		},
	}

	var resp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/v2/customers", body, &resp); err != nil {
		return "", err
	}

	return resp.Data.ID, nil
}

// SaveCustomerAddress records the delivery drop-off location against the
// customer's cart so the order history keeps where it went.
func (c *Client) SaveCustomerAddress(ctx context.Context, userID int64, lon, lat float64) error {
	body := map[string]any{
		"data": map[string]any{
			"type":      "entry",
			"longitude": lon,
			"latitude":  lat,
			"cart_id":   strconv.FormatInt(userID, 10),
		},
	}

	return c.do(ctx, http.MethodPost, "/v2/flows/customer-address/entries", body, nil)
}
