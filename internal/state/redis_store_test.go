package state

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client, mr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRedisStore_GetState_NotFound(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewRedisStore(client, testLogger())

	_, err := store.GetState(context.Background(), 42)
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestRedisStore_SetGetState(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewRedisStore(client, testLogger())
	ctx := context.Background()

	require.NoError(t, store.SetState(ctx, 42, StateAwaitingLocation))

	got, err := store.GetState(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingLocation, got)

	// States for other users stay independent.
	_, err = store.GetState(ctx, 43)
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestRedisStore_SetState_NoExpiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, testLogger())
	ctx := context.Background()

	require.NoError(t, store.SetState(ctx, 7, StateBrowsingMenu))

	mr.FastForward(240 * time.Hour)

	got, err := store.GetState(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, StateBrowsingMenu, got)
}

func TestRedisStore_GetState_UnknownValue(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, testLogger())

	require.NoError(t, mr.Set("session:state:9", "HANDLE_MENU"))

	_, err := store.GetState(context.Background(), 9)
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestRedisStore_Token(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, testLogger())
	ctx := context.Background()

	_, err := store.GetToken(ctx)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, store.SetToken(ctx, "abc123", time.Hour))

	token, err := store.GetToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	// An expired token must never be returned.
	mr.FastForward(2 * time.Hour)

	_, err = store.GetToken(ctx)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestRedisStore_SetToken_RejectsNonPositiveTTL(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewRedisStore(client, testLogger())

	err := store.SetToken(context.Background(), "abc123", 0)
	assert.Error(t, err)
}

func TestState_Valid(t *testing.T) {
	for _, s := range All {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, State("HANDLE_MENU").Valid())
	assert.False(t, State("").Valid())
}
