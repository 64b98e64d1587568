// Package moltin is the commerce backend client: catalog, carts, customers,
// and flow entries over the Moltin HTTP API, with the bearer token cached in
// the session store.
package moltin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/acostyle/pizza-delivery-bot/internal/errors"
	"github.com/acostyle/pizza-delivery-bot/internal/state"
)

const (
	defaultTimeout = 10 * time.Second
	// tokenTTLMargin is subtracted from the provider-reported expiry so a
	// token close to expiring is never handed to a request.
	tokenTTLMargin = time.Minute
)

// TokenCache stores the bearer token between requests. Satisfied by
// state.Store.
type TokenCache interface {
	GetToken(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string, ttl time.Duration) error
}

// Config carries the client credentials and endpoints.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	// FlowSlug names the flow holding fulfillment points.
	FlowSlug string
}

// Client talks to the commerce backend.
type Client struct {
	cfg    Config
	httpc  *http.Client
	tokens TokenCache
	log    *slog.Logger
}

// New builds a commerce client. tokens is required: every request carries a
// cached bearer token.
func New(cfg Config, tokens TokenCache, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	if cfg.FlowSlug == "" {
		cfg.FlowSlug = "pizzeria"
	}

	return &Client{
		cfg:    cfg,
		httpc:  &http.Client{Timeout: defaultTimeout},
		tokens: tokens,
		log:    log,
	}
}

// accessToken returns the cached token, fetching a fresh one on a cache miss.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	token, err := c.tokens.GetToken(ctx)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, state.ErrTokenNotFound) {
		return "", apperrors.NewExternalAPIError("session store", err)
	}

	form := url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"grant_type":    {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/oauth/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", apperrors.NewExternalAPIError("moltin auth", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewExternalAPIError("moltin auth",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var auth struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", apperrors.NewExternalAPIError("moltin auth", err)
	}

	ttl := time.Duration(auth.ExpiresIn)*time.Second - tokenTTLMargin
	if ttl < time.Minute {
		ttl = time.Minute
	}
	if err := c.tokens.SetToken(ctx, auth.AccessToken, ttl); err != nil {
		// a failed cache write is not fatal, the token is still usable
		c.log.Warn("failed to cache commerce token", "error", err)
	}

	return auth.AccessToken, nil
}

// do executes an authorized JSON request. out may be nil when the response
// body is irrelevant.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return apperrors.NewExternalAPIError("moltin", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NewNotFoundError(method + " " + path)
	case resp.StatusCode >= 400:
		return apperrors.NewExternalAPIError("moltin",
			fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewExternalAPIError("moltin", fmt.Errorf("decode %s: %w", path, err))
	}

	return nil
}
