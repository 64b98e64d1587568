// Package geocode resolves free-form addresses to coordinates through the
// Yandex geocoder HTTP API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/acostyle/pizza-delivery-bot/internal/errors"
	"github.com/acostyle/pizza-delivery-bot/internal/geo"
)

const defaultTimeout = 10 * time.Second

// Config carries the geocoder endpoint and key.
type Config struct {
	BaseURL string
	APIKey  string
}

// Client queries the geocoder.
type Client struct {
	cfg   Config
	httpc *http.Client
}

func New(cfg Config) *Client {
	return &Client{
		cfg:   cfg,
		httpc: &http.Client{Timeout: defaultTimeout},
	}
}

// Resolve geocodes an address. ok is false when the geocoder has no match;
// that is not an error, the caller asks the user to retype the address.
func (c *Client) Resolve(ctx context.Context, address string) (point geo.Coordinate, ok bool, err error) {
	query := url.Values{
		"apikey":  {c.cfg.APIKey},
		"geocode": {address},
		"format":  {"json"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+"/1.x/?"+query.Encode(), nil)
	if err != nil {
		return geo.Coordinate{}, false, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return geo.Coordinate{}, false, apperrors.NewExternalAPIError("geocoder", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.Coordinate{}, false, apperrors.NewExternalAPIError("geocoder",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload struct {
		Response struct {
			GeoObjectCollection struct {
				FeatureMember []struct {
					GeoObject struct {
						Point struct {
							Pos string `json:"pos"`
						} `json:"Point"`
					} `json:"GeoObject"`
				} `json:"featureMember"`
			} `json:"GeoObjectCollection"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return geo.Coordinate{}, false, apperrors.NewExternalAPIError("geocoder", err)
	}

	members := payload.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return geo.Coordinate{}, false, nil
	}

	// pos is "lon lat" separated by a single space
	point, err = parsePos(members[0].GeoObject.Point.Pos)
	if err != nil {
		return geo.Coordinate{}, false, apperrors.NewExternalAPIError("geocoder", err)
	}

	return point, true, nil
}

func parsePos(pos string) (geo.Coordinate, error) {
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return geo.Coordinate{}, fmt.Errorf("malformed position %q", pos)
	}

	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("malformed longitude %q: %w", parts[0], err)
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("malformed latitude %q: %w", parts[1], err)
	}

	return geo.Coordinate{Lon: lon, Lat: lat}, nil
}
