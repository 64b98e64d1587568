// Package state holds the conversation state model and its Redis-backed store.
package state

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrStateNotFound indicates that no state record exists for the user.
	ErrStateNotFound = errors.New("user state not found")
	// ErrTokenNotFound indicates that no valid cached token exists.
	ErrTokenNotFound = errors.New("cached token not found")
)

// Store defines the persistence contract for conversation state and the
// cached commerce bearer token. Every call is a network round-trip and may
// fail; callers must treat the session store as fallible.
//
// There is no transactional guarantee across a GetState/SetState pair:
// concurrent deliveries of events for the same user resolve last-writer-wins.
type Store interface {
	// GetState returns the stored state for the user or ErrStateNotFound.
	GetState(ctx context.Context, userID int64) (State, error)
	// SetState saves the state for the user.
	SetState(ctx context.Context, userID int64, s State) error
	// GetToken returns the cached bearer token or ErrTokenNotFound when it
	// is absent or expired.
	GetToken(ctx context.Context) (string, error)
	// SetToken caches the bearer token for the given TTL.
	SetToken(ctx context.Context, token string, ttl time.Duration) error
}
