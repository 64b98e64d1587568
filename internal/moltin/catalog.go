package moltin

import (
	"context"
	"net/http"
)

// Products returns the full catalog.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var resp struct {
		Data []productData `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/v2/products", nil, &resp); err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(resp.Data))
	for _, data := range resp.Data {
		products = append(products, data.toProduct())
	}

	return products, nil
}

// Product returns a single catalog position.
func (c *Client) Product(ctx context.Context, productID string) (Product, error) {
	var resp struct {
		Data productData `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/v2/products/"+productID, nil, &resp); err != nil {
		return Product{}, err
	}

	return resp.Data.toProduct(), nil
}

// ProductPhotoURL resolves a file ID to a downloadable image link.
func (c *Client) ProductPhotoURL(ctx context.Context, fileID string) (string, error) {
	var resp struct {
		Data struct {
			Link struct {
				Href string `json:"href"`
			} `json:"link"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/v2/files/"+fileID, nil, &resp); err != nil {
		return "", err
	}

	return resp.Data.Link.Href, nil
}
