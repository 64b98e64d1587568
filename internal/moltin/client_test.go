package moltin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/acostyle/pizza-delivery-bot/internal/errors"
	"github.com/acostyle/pizza-delivery-bot/internal/state"
)

type memTokenCache struct {
	mu    sync.Mutex
	token string
	ttl   time.Duration
}

func (m *memTokenCache) GetToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", state.ErrTokenNotFound
	}
	return m.token, nil
}

func (m *memTokenCache) SetToken(ctx context.Context, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.ttl = ttl
	return nil
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *memTokenCache, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cache := &memTokenCache{}
	client := New(Config{
		BaseURL:      srv.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		FlowSlug:     "pizzeria",
	}, cache, nil)

	return client, cache, srv
}

func writeAuth(t *testing.T, w http.ResponseWriter, expiresIn int) {
	t.Helper()
	err := json.NewEncoder(w).Encode(map[string]any{
		"access_token": "test-token",
		"expires_in":   expiresIn,
	})
	require.NoError(t, err)
}

func TestAccessTokenFetchedOnceAndCached(t *testing.T) {
	var authCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		authCalls++
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
		assert.Equal(t, "client-id", r.FormValue("client_id"))
		writeAuth(t, w, 3600)
	})
	mux.HandleFunc("/v2/products", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	client, cache, _ := newTestClient(t, mux)

	_, err := client.Products(context.Background())
	require.NoError(t, err)
	_, err = client.Products(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, authCalls, "second request must reuse the cached token")
	assert.Equal(t, 3600*time.Second-tokenTTLMargin, cache.ttl)
}

func TestProductsParsing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		writeAuth(t, w, 3600)
	})
	mux.HandleFunc("/v2/products", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{
			"id":"prod-1",
			"name":"Pepperoni",
			"description":"Spicy salami, mozzarella",
			"price":[{"amount":45000}],
			"relationships":{"main_image":{"data":{"id":"file-1"}}}
		}]}`))
	})

	client, _, _ := newTestClient(t, mux)

	products, err := client.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)

	assert.Equal(t, "prod-1", products[0].ID)
	assert.Equal(t, "Pepperoni", products[0].Name)
	assert.Equal(t, 45000, products[0].Price)
	assert.Equal(t, "file-1", products[0].MainImageID)
}

func TestCartItemsParsing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		writeAuth(t, w, 3600)
	})
	mux.HandleFunc("/v2/carts/42/items", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"data":[{
				"id":"line-1",
				"name":"Margherita",
				"quantity":2,
				"meta":{"display_price":{"with_tax":{"value":{"amount":80000,"formatted":"800 RUB"}}}}
			}],
			"meta":{"display_price":{"with_tax":{"amount":80000,"formatted":"800 RUB"}}}
		}`))
	})

	client, _, _ := newTestClient(t, mux)

	cart, err := client.CartItems(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	assert.Equal(t, "line-1", cart.Items[0].ID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 80000, cart.Items[0].Subtotal)
	assert.Equal(t, 80000, cart.Total)
	assert.Equal(t, "800 RUB", cart.TotalDisplay)
}

func TestAddCartItemSendsQuantity(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		writeAuth(t, w, 3600)
	})
	mux.HandleFunc("/v2/carts/42/items", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body struct {
			Data struct {
				ID       string `json:"id"`
				Type     string `json:"type"`
				Quantity int    `json:"quantity"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "prod-1", body.Data.ID)
		assert.Equal(t, "cart_item", body.Data.Type)
		assert.Equal(t, 1, body.Data.Quantity)

		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	client, _, _ := newTestClient(t, mux)

	require.NoError(t, client.AddCartItem(context.Background(), 42, "prod-1", 1))
}

func TestFulfillmentPointsParsing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		writeAuth(t, w, 3600)
	})
	mux.HandleFunc("/v2/flows/pizzeria/entries", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{
			"id":"entry-1",
			"address":"Lenina 1",
			"alias":"center",
			"longitude":37.6173,
			"latitude":55.7558,
			"delivery_man_id":100500
		}]}`))
	})

	client, _, _ := newTestClient(t, mux)

	points, err := client.FulfillmentPoints(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 1)

	assert.Equal(t, "entry-1", points[0].ID)
	assert.Equal(t, "Lenina 1", points[0].Address)
	assert.Equal(t, int64(100500), points[0].CourierID)
	assert.InDelta(t, 37.6173, points[0].Position.Lon, 1e-9)
	assert.InDelta(t, 55.7558, points[0].Position.Lat, 1e-9)
}

func TestNotFoundMapsToAppError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		writeAuth(t, w, 3600)
	})
	mux.HandleFunc("/v2/products/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	client, _, _ := newTestClient(t, mux)

	_, err := client.Product(context.Background(), "missing")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	assert.False(t, appErr.Retryable)
}

func TestServerErrorIsRetryable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		writeAuth(t, w, 3600)
	})
	mux.HandleFunc("/v2/products", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	client, _, _ := newTestClient(t, mux)

	_, err := client.Products(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeExternalAPI, appErr.Code)
	assert.True(t, appErr.Retryable)
}
