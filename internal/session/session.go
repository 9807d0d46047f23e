// Package session provides the Redis-backed session store.
// A session is an opaque token mapped to a user ID with a TTL.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionPrefix is the Redis key prefix for session tokens.
const sessionPrefix = "session:"

// ErrNoSession indicates the token does not map to a live session.
var ErrNoSession = errors.New("no such session")

// Store provides session persistence over Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a new Store with a Redis client.
func New(ctx context.Context, redisURL string, ttl time.Duration) (*Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Connection pool settings
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Store{client: client, ttl: ttl}, nil
}

// Create establishes a new session for the user and returns its token.
func (s *Store) Create(ctx context.Context, userID int64) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	key := sessionPrefix + token
	if err := s.client.Set(ctx, key, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

// Resolve returns the user ID attached to the token.
// Returns ErrNoSession for unknown or expired tokens.
func (s *Store) Resolve(ctx context.Context, token string) (int64, error) {
	key := sessionPrefix + token

	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNoSession
		}
		return 0, fmt.Errorf("resolve session: %w", err)
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		// Corrupted session entry - treat as missing
		return 0, ErrNoSession
	}

	return userID, nil
}

// Delete invalidates the session for the token.
// Deleting an already-expired session is not an error.
func (s *Store) Delete(ctx context.Context, token string) error {
	key := sessionPrefix + token
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Ping checks Redis connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
