package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, body string, status int) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return New(Config{BaseURL: srv.URL, APIKey: "test-key"})
}

func TestResolveParsesLonLatOrder(t *testing.T) {
	client := newTestServer(t, `{"response":{"GeoObjectCollection":{"featureMember":[
		{"GeoObject":{"Point":{"pos":"37.617698 55.755864"}}}
	]}}}`, http.StatusOK)

	point, ok, err := client.Resolve(context.Background(), "Москва, Красная площадь")
	require.NoError(t, err)
	require.True(t, ok)

	assert.InDelta(t, 37.617698, point.Lon, 1e-9)
	assert.InDelta(t, 55.755864, point.Lat, 1e-9)
}

func TestResolveNoMatchIsNotAnError(t *testing.T) {
	client := newTestServer(t, `{"response":{"GeoObjectCollection":{"featureMember":[]}}}`, http.StatusOK)

	_, ok, err := client.Resolve(context.Background(), "qwertyuiop")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveServerErrorPropagates(t *testing.T) {
	client := newTestServer(t, `{}`, http.StatusForbidden)

	_, _, err := client.Resolve(context.Background(), "anywhere")
	require.Error(t, err)
}

func TestParsePosMalformed(t *testing.T) {
	for _, pos := range []string{"", "37.6", "a b", "37.6 55.7 3"} {
		_, err := parsePos(pos)
		assert.Error(t, err, "pos %q", pos)
	}
}
