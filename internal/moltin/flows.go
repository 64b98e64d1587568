package moltin

import (
	"context"
	"net/http"

	"github.com/acostyle/pizza-delivery-bot/internal/geo"
)

func (e flowEntryData) toPoint() geo.FulfillmentPoint {
	return geo.FulfillmentPoint{
		ID:        e.ID,
		Address:   e.Address,
		CourierID: e.DeliveryManID,
		Position: geo.Coordinate{
			Lon: e.Longitude,
			Lat: e.Latitude,
		},
	}
}

// FulfillmentPoints lists every pizzeria registered in the flow.
func (c *Client) FulfillmentPoints(ctx context.Context) ([]geo.FulfillmentPoint, error) {
	var resp struct {
		Data []flowEntryData `json:"data"`
	}
	path := "/v2/flows/" + c.cfg.FlowSlug + "/entries"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	points := make([]geo.FulfillmentPoint, 0, len(resp.Data))
	for _, entry := range resp.Data {
		points = append(points, entry.toPoint())
	}

	return points, nil
}

// FulfillmentPoint returns a single pizzeria by its entry ID.
func (c *Client) FulfillmentPoint(ctx context.Context, pointID string) (geo.FulfillmentPoint, error) {
	var resp struct {
		Data flowEntryData `json:"data"`
	}
	path := "/v2/flows/" + c.cfg.FlowSlug + "/entries/" + pointID
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return geo.FulfillmentPoint{}, err
	}

	return resp.Data.toPoint(), nil
}
