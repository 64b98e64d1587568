package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	userStateKeyPattern = "session:state:%d"
	tokenKey            = "commerce:access_token"
)

// RedisStore persists conversation state and the commerce token in Redis.
type RedisStore struct {
	client *redis.Client
	log    *slog.Logger
}

// NewRedisStore initializes a Redis-backed Store implementation.
func NewRedisStore(client *redis.Client, log *slog.Logger) Store {
	if log == nil {
		log = slog.Default()
	}

	return &RedisStore{
		client: client,
		log:    log,
	}
}

// GetState returns the stored state for the user or ErrStateNotFound.
func (s *RedisStore) GetState(ctx context.Context, userID int64) (State, error) {
	data, err := s.client.Get(ctx, redisUserStateKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrStateNotFound
		}

		s.log.Error("failed to get state from redis", "user_id", userID, "error", err)
		return "", err
	}

	stored := State(data)
	if !stored.Valid() {
		s.log.Warn("unknown state stored for user", "user_id", userID, "state", data)
		return "", ErrStateNotFound
	}

	return stored, nil
}

// SetState saves the state for the user. Session records carry no TTL:
// conversations persist until the user is deleted out of band.
func (s *RedisStore) SetState(ctx context.Context, userID int64, st State) error {
	if err := s.client.Set(ctx, redisUserStateKey(userID), string(st), 0).Err(); err != nil {
		s.log.Error("failed to save state in redis", "user_id", userID, "error", err)
		return err
	}

	return nil
}

// GetToken returns the cached commerce token. Redis expiry enforces the
// invariant that an expired token is never handed out.
func (s *RedisStore) GetToken(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, tokenKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}

		s.log.Error("failed to get token from redis", "error", err)
		return "", err
	}

	return token, nil
}

// SetToken caches the commerce token for the given TTL.
func (s *RedisStore) SetToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	if err := s.client.Set(ctx, tokenKey, token, ttl).Err(); err != nil {
		s.log.Error("failed to cache token in redis", "error", err)
		return err
	}

	return nil
}

func redisUserStateKey(userID int64) string {
	return fmt.Sprintf(userStateKeyPattern, userID)
}
