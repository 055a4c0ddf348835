package scheduler

import (
	"context"

	"github.com/pkg/errors"

	"github.com/MrSnakeDoc/slapp/internal/index"
	"github.com/MrSnakeDoc/slapp/internal/logger"
	"github.com/MrSnakeDoc/slapp/internal/sources/roster"
	redisstore "github.com/MrSnakeDoc/slapp/internal/store/redis"
)

// RedisSyncer restores the roster mirrored in Redis into the memory index
type RedisSyncer struct {
	store  *redisstore.Store
	mapper *roster.Mapper
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		mapper: roster.NewMapper(),
		index:  idx,
		logger: log,
	}
}

// Sync loads the mirrored roster and updates the memory index
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("restoring roster from redis")

	f, err := rs.store.LoadSnapshot(ctx)
	if err != nil {
		return err
	}

	snap, err := rs.mapper.Map(f)
	if err != nil {
		return errors.Wrap(err, "map roster snapshot")
	}

	rs.index.Update(snap)
	rs.logger.Info("restored roster from redis",
		logger.Int("players", len(snap.Players)),
		logger.Int("teams", len(snap.Teams)))
	return nil
}
