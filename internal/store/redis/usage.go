package redis

import (
	"context"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// QueryCount is how often a query was asked.
type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// IncrementUsage bumps the counter of query
func (s *Store) IncrementUsage(ctx context.Context, query string) error {
	if err := s.client.ZIncrBy(ctx, KeyQueryUsage, 1, normalizeQuery(query)).Err(); err != nil {
		return pkgerrors.Wrap(err, "increment query usage")
	}
	return nil
}

// TopQueries returns the n most asked queries, most asked first
func (s *Store) TopQueries(ctx context.Context, n int64) ([]QueryCount, error) {
	if n <= 0 {
		return nil, nil
	}
	entries, err := s.client.ZRevRangeWithScores(ctx, KeyQueryUsage, 0, n-1).Result()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "get query usage")
	}
	return toCounts(entries), nil
}

func toCounts(entries []redis.Z) []QueryCount {
	out := make([]QueryCount, 0, len(entries))
	for _, z := range entries {
		q, _ := z.Member.(string)
		out = append(out, QueryCount{Query: q, Count: int64(z.Score)})
	}
	return out
}
