package idempotency

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*RedisDeduplicator, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisDeduplicator(client, time.Hour), mr
}

func TestFirstSightIsFresh(t *testing.T) {
	dedup, _ := setup(t)
	ctx := context.Background()

	seen, err := dedup.Seen(ctx, "cb:abc")
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = dedup.Seen(ctx, "cb:abc")
	require.NoError(t, err)
	assert.True(t, seen, "redelivery of the same update must be flagged")
}

func TestDistinctKeysDoNotCollide(t *testing.T) {
	dedup, _ := setup(t)
	ctx := context.Background()

	_, err := dedup.Seen(ctx, "msg:1:10")
	require.NoError(t, err)

	seen, err := dedup.Seen(ctx, "msg:1:11")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestKeyExpiresAfterTTL(t *testing.T) {
	dedup, mr := setup(t)
	ctx := context.Background()

	_, err := dedup.Seen(ctx, "cb:xyz")
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	seen, err := dedup.Seen(ctx, "cb:xyz")
	require.NoError(t, err)
	assert.False(t, seen, "expired keys are processed anew")
}
