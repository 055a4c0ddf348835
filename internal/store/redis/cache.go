package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL is the default TTL for cached matches
const DefaultCacheTTL = 10 * time.Minute

// Match is the cached outcome of a query: matched ids in rank order.
type Match struct {
	Players []uuid.UUID `json:"players,omitempty"`
	Teams   []uuid.UUID `json:"teams,omitempty"`
}

// CacheMatch stores the ids matched by query
func (s *Store) CacheMatch(ctx context.Context, query string, m *Match, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	data, err := json.Marshal(m)
	if err != nil {
		return pkgerrors.Wrap(err, "marshal match")
	}
	if err := s.client.Set(ctx, CacheKey(query), data, ttl).Err(); err != nil {
		return pkgerrors.Wrap(err, "cache match")
	}
	return nil
}

// GetCachedMatch retrieves a cached match, nil on a miss
func (s *Store) GetCachedMatch(ctx context.Context, query string) (*Match, error) {
	data, err := s.client.Get(ctx, CacheKey(query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, pkgerrors.Wrap(err, "get cached match")
	}

	var m Match
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, pkgerrors.Wrap(err, "unmarshal cached match")
	}
	return &m, nil
}

// InvalidateCache removes a cached match
func (s *Store) InvalidateCache(ctx context.Context, query string) error {
	if err := s.client.Del(ctx, CacheKey(query)).Err(); err != nil {
		return pkgerrors.Wrap(err, "invalidate cache")
	}
	return nil
}

// FlushCache removes every cached match, used after a roster reload
func (s *Store) FlushCache(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, KeyPrefixCache+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return pkgerrors.Wrap(err, "delete cache key")
		}
	}
	if err := iter.Err(); err != nil {
		return pkgerrors.Wrap(err, "flush cache")
	}
	return nil
}
