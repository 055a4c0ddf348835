package index

import (
	"github.com/MrSnakeDoc/slapp/internal/domain"
)

// MatchPlayers ranks players by name against q.
func (idx *MemoryIndex) MatchPlayers(q *domain.Query) []*domain.Player {
	if !q.WantsPlayers() || q.Text == "" {
		return nil
	}

	idx.mu.RLock()
	entities := make([]domain.Entity, 0, len(idx.players))
	for _, p := range idx.players {
		entities = append(entities, p)
	}
	idx.mu.RUnlock()

	ranked := domain.RankCandidates(q, entities, func(e domain.Entity) []string {
		p := e.(*domain.Player)
		return append(append([]string{}, p.Names...), p.FriendCodes...)
	})

	out := make([]*domain.Player, 0, len(ranked))
	for _, c := range limit(ranked, q.Limit) {
		out = append(out, c.Entity.(*domain.Player))
	}
	return out
}

// MatchTeams ranks teams by name and clan tag against q.
func (idx *MemoryIndex) MatchTeams(q *domain.Query) []*domain.Team {
	if !q.WantsTeams() || q.Text == "" {
		return nil
	}

	idx.mu.RLock()
	entities := make([]domain.Entity, 0, len(idx.teams))
	for _, t := range idx.teams {
		entities = append(entities, t)
	}
	idx.mu.RUnlock()

	ranked := domain.RankCandidates(q, entities, func(e domain.Entity) []string {
		t := e.(*domain.Team)
		return append(append([]string{}, t.Names...), t.ClanTags...)
	})

	out := make([]*domain.Team, 0, len(ranked))
	for _, c := range limit(ranked, q.Limit) {
		out = append(out, c.Entity.(*domain.Team))
	}
	return out
}

func limit(c []*domain.Candidate, n int) []*domain.Candidate {
	if n > 0 && len(c) > n {
		return c[:n]
	}
	return c
}
