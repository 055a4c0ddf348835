package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/MrSnakeDoc/slapp/internal/index"
	"github.com/MrSnakeDoc/slapp/internal/logger"
	"github.com/MrSnakeDoc/slapp/internal/metrics"
	"github.com/MrSnakeDoc/slapp/internal/sources/roster"
	redisstore "github.com/MrSnakeDoc/slapp/internal/store/redis"
)

// RosterReloader keeps the in-memory roster in step with the roster file
type RosterReloader struct {
	loader        *roster.Loader
	mapper        *roster.Mapper
	store         *redisstore.Store
	index         *index.MemoryIndex
	logger        logger.Logger
	metrics       *metrics.Metrics
	interval      time.Duration
	fallback      func(context.Context) error
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
	mu            sync.Mutex // serialises reloads from the ticker, triggers and watcher
}

// NewRosterReloader creates a new roster reloader. store may be nil when
// Redis is disabled; an interval of zero disables periodic reloads.
func NewRosterReloader(
	rosterFile string,
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	m *metrics.Metrics,
	interval time.Duration,
	manualTrigger chan struct{},
) *RosterReloader {
	return &RosterReloader{
		loader:        roster.NewLoader(rosterFile),
		mapper:        roster.NewMapper(),
		store:         store,
		index:         idx,
		logger:        log.With(logger.Component("roster")),
		metrics:       m,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// WithFallback sets what Start runs when the first load fails, typically
// restoring the Redis snapshot.
func (rr *RosterReloader) WithFallback(fn func(context.Context) error) *RosterReloader {
	rr.fallback = fn
	return rr
}

// Start loads the roster, then reloads it on every tick and manual trigger
func (rr *RosterReloader) Start(ctx context.Context) error {
	if err := rr.Reload(ctx); err != nil {
		if rr.fallback == nil {
			return errors.Wrap(err, "initial reload failed")
		}
		rr.logger.Warn("roster file unavailable, using fallback", logger.Error(err))
		if ferr := rr.fallback(ctx); ferr != nil {
			return errors.Wrapf(ferr, "initial reload failed (%v), fallback failed", err)
		}
	}

	go rr.loop(ctx)
	return nil
}

func (rr *RosterReloader) loop(ctx context.Context) {
	var tick <-chan time.Time
	if rr.interval > 0 {
		ticker := time.NewTicker(rr.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-tick:
			rr.reloadAndLog(ctx, "scheduled")
		case <-rr.manualTrigger:
			rr.reloadAndLog(ctx, "manual")
		case <-rr.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (rr *RosterReloader) reloadAndLog(ctx context.Context, reason string) {
	rr.logger.Info("roster reload triggered", logger.String("reason", reason))
	if err := rr.Reload(ctx); err != nil {
		rr.logger.Error("failed to reload roster", logger.Error(err))
	}
}

// Stop stops the reloader and its watcher
func (rr *RosterReloader) Stop() {
	rr.stopOnce.Do(func() { close(rr.stopCh) })
}

// Reload reads the roster file and swaps it into the index. The Redis
// mirror and the query cache are refreshed on a best effort basis.
func (rr *RosterReloader) Reload(ctx context.Context) error {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	err := rr.reload(ctx)
	rr.metrics.ObserveReload(err == nil)
	return err
}

func (rr *RosterReloader) reload(ctx context.Context) error {
	f, err := rr.loader.Load()
	if err != nil {
		return errors.Wrap(err, "load roster")
	}

	snap, err := rr.mapper.Map(f)
	if err != nil {
		return errors.Wrap(err, "map roster")
	}

	rr.index.Update(snap)
	rr.logger.Info("roster loaded",
		logger.String("file", rr.loader.Path()),
		logger.Int("players", len(snap.Players)),
		logger.Int("teams", len(snap.Teams)),
		logger.Int("sources", len(snap.Sources)))

	if rr.store == nil {
		return nil
	}
	if err := rr.store.SaveSnapshot(ctx, f); err != nil {
		// Memory index is the primary source
		rr.logger.Warn("failed to mirror roster to redis", logger.Error(err))
	}
	if err := rr.store.FlushCache(ctx); err != nil {
		rr.logger.Warn("failed to flush query cache", logger.Error(err))
	}
	return nil
}
