package bot

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/slapp/internal/domain"
	"github.com/MrSnakeDoc/slapp/internal/index"
	"github.com/MrSnakeDoc/slapp/internal/logger"
	redisstore "github.com/MrSnakeDoc/slapp/internal/store/redis"
)

// Searcher answers roster queries, going through the Redis match cache when
// one is configured.
type Searcher struct {
	index  *index.MemoryIndex
	store  *redisstore.Store
	ttl    time.Duration
	logger logger.Logger
}

// NewSearcher creates a searcher. store may be nil.
func NewSearcher(idx *index.MemoryIndex, store *redisstore.Store, ttl time.Duration, log logger.Logger) *Searcher {
	return &Searcher{index: idx, store: store, ttl: ttl, logger: log}
}

// Search parses input and returns the matched players and teams, best first.
func (s *Searcher) Search(ctx context.Context, input string) ([]*domain.Player, []*domain.Team, *domain.Query) {
	q := domain.ParseQuery(input)
	if q.Text == "" {
		return nil, nil, q
	}

	if s.store != nil {
		// Usage counter (best effort)
		_ = s.store.IncrementUsage(ctx, input)

		if players, teams, ok := s.cached(ctx, input); ok {
			s.logger.Debug("cache hit", logger.String("query", input))
			return players, teams, q
		}
	}

	players := s.index.MatchPlayers(q)
	teams := s.index.MatchTeams(q)
	s.logger.Info("search request",
		logger.String("query", input),
		logger.Int("players", len(players)),
		logger.Int("teams", len(teams)))

	if s.store != nil {
		m := &redisstore.Match{Players: ids(players), Teams: ids(teams)}
		if err := s.store.CacheMatch(ctx, input, m, s.ttl); err != nil {
			s.logger.Debug("failed to cache match", logger.Error(err))
		}
	}
	return players, teams, q
}

// cached resolves a cached match against the current roster. A match naming
// an id the roster no longer knows is stale and gets invalidated.
func (s *Searcher) cached(ctx context.Context, input string) ([]*domain.Player, []*domain.Team, bool) {
	m, err := s.store.GetCachedMatch(ctx, input)
	if err != nil || m == nil {
		return nil, nil, false
	}

	players := make([]*domain.Player, 0, len(m.Players))
	for _, id := range m.Players {
		p, ok := s.index.Player(id)
		if !ok {
			_ = s.store.InvalidateCache(ctx, input)
			return nil, nil, false
		}
		players = append(players, p)
	}
	teams := make([]*domain.Team, 0, len(m.Teams))
	for _, id := range m.Teams {
		t, ok := s.index.Team(id)
		if !ok {
			_ = s.store.InvalidateCache(ctx, input)
			return nil, nil, false
		}
		teams = append(teams, t)
	}
	return players, teams, true
}

func ids[E domain.Entity](entities []E) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.EntityID())
	}
	return out
}
