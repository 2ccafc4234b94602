package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix is the key namespace used when NewStore is given an empty prefix.
const DefaultPrefix = "refresh_token:"

var (
	// ErrRedisUnavailable wraps every backend failure returned by the [Store].
	ErrRedisUnavailable = errors.New("redis unavailable")
	// ErrSessionNotFound is returned when no record exists for a token id.
	// Keys evicted by TTL are indistinguishable from keys that never existed.
	ErrSessionNotFound = errors.New("refresh session not found")
	// ErrSessionCorrupt is returned when a stored blob cannot be decoded.
	ErrSessionCorrupt = errors.New("refresh session corrupt")
)

// Store maps opaque refresh token ids to [RefreshSession] records in Redis.
// Every key carries a TTL equal to the refresh duration; the TTL only
// garbage-collects, the record's ExpiresAt stays authoritative.
//
// All mutations are single-key, so no MULTI/EXEC or scripting is needed.
type Store struct {
	redis  redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewStore creates a [Store] on client. ttl is applied on every Save.
func NewStore(client redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{
		redis:  client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// TTL returns the expiry applied to saved keys.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Key returns the Redis key that holds tokenID.
func (s *Store) Key(tokenID string) string {
	return s.prefix + tokenID
}

// Save upserts sess under tokenID and resets the key TTL.
//
//	Performance: 1 Redis SET.
func (s *Store) Save(ctx context.Context, tokenID string, sess *RefreshSession) error {
	data, err := Encode(sess)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.Key(tokenID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Find loads the session stored under tokenID. It does not check expiry.
//
//	Performance: 1 Redis GET.
func (s *Store) Find(ctx context.Context, tokenID string) (*RefreshSession, error) {
	data, err := s.redis.Get(ctx, s.Key(tokenID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	sess, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionCorrupt, err)
	}
	return sess, nil
}

// Delete removes tokenID. Deleting a missing key is not an error.
//
//	Performance: 1 Redis DEL.
func (s *Store) Delete(ctx context.Context, tokenID string) error {
	if err := s.redis.Del(ctx, s.Key(tokenID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}
