package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/slapp/internal/sources/roster"
)

// DefaultSnapshotTTL bounds how long a mirrored roster may serve as a fallback
const DefaultSnapshotTTL = 7 * 24 * time.Hour

// ErrNoSnapshot is returned when Redis holds no roster
var ErrNoSnapshot = errors.New("no roster snapshot in redis")

// Store handles Redis operations for the roster mirror and the query cache
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks that Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// SaveSnapshot mirrors the roster file and the set of its entity ids in one round trip.
func (s *Store) SaveSnapshot(ctx context.Context, f *roster.File) error {
	data, err := json.Marshal(f)
	if err != nil {
		return pkgerrors.Wrap(err, "marshal roster snapshot")
	}

	members := make([]interface{}, 0, len(f.Players)+len(f.Teams))
	for _, p := range f.Players {
		members = append(members, EntityMember("player", p.ID))
	}
	for _, t := range f.Teams {
		members = append(members, EntityMember("team", t.ID))
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, KeySnapshot, data, DefaultSnapshotTTL)
	pipe.Del(ctx, KeyEntities)
	if len(members) > 0 {
		pipe.SAdd(ctx, KeyEntities, members...)
		pipe.Expire(ctx, KeyEntities, DefaultSnapshotTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return pkgerrors.Wrap(err, "save roster snapshot")
	}
	return nil
}

// LoadSnapshot returns the mirrored roster, or ErrNoSnapshot.
func (s *Store) LoadSnapshot(ctx context.Context) (*roster.File, error) {
	data, err := s.client.Get(ctx, KeySnapshot).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSnapshot
		}
		return nil, pkgerrors.Wrap(err, "get roster snapshot")
	}

	var f roster.File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, pkgerrors.Wrap(err, "unmarshal roster snapshot")
	}
	return &f, nil
}

// CountEntities returns how many players and teams the mirror knows.
func (s *Store) CountEntities(ctx context.Context) (int64, error) {
	n, err := s.client.SCard(ctx, KeyEntities).Result()
	if err != nil {
		return 0, pkgerrors.Wrap(err, "count mirrored entities")
	}
	return n, nil
}
