package index

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/slapp/internal/domain"
	"github.com/MrSnakeDoc/slapp/internal/sources/roster"
)

// MemoryIndex holds the current roster and answers every lookup the bot makes.
// A reload swaps the whole roster at once; entities handed out are never
// modified afterwards, so callers may keep them past the next reload.
type MemoryIndex struct {
	mu         sync.RWMutex
	players    []*domain.Player
	teams      []*domain.Team
	playerByID map[uuid.UUID]*domain.Player
	teamByID   map[uuid.UUID]*domain.Team
	members    map[uuid.UUID][]*domain.Player // team ID -> players who ever played for it
	sources    int
	lastReload time.Time
}

// NewMemoryIndex creates a new memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		playerByID: make(map[uuid.UUID]*domain.Player),
		teamByID:   make(map[uuid.UUID]*domain.Team),
		members:    make(map[uuid.UUID][]*domain.Player),
	}
}

// Update replaces the whole roster
func (idx *MemoryIndex) Update(snap *roster.Snapshot) {
	playerByID := make(map[uuid.UUID]*domain.Player, len(snap.Players))
	teamByID := make(map[uuid.UUID]*domain.Team, len(snap.Teams))
	members := make(map[uuid.UUID][]*domain.Player, len(snap.Teams))

	for _, t := range snap.Teams {
		teamByID[t.ID] = t
	}
	for _, p := range snap.Players {
		playerByID[p.ID] = p
		for _, stint := range p.Teams {
			if !slices.Contains(members[stint.TeamID], p) {
				members[stint.TeamID] = append(members[stint.TeamID], p)
			}
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.players = snap.Players
	idx.teams = snap.Teams
	idx.playerByID = playerByID
	idx.teamByID = teamByID
	idx.members = members
	idx.sources = len(snap.Sources)
	idx.lastReload = time.Now()
}

// Player retrieves a player by ID
func (idx *MemoryIndex) Player(id uuid.UUID) (*domain.Player, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	p, ok := idx.playerByID[id]
	return p, ok
}

// Team retrieves a team by ID
func (idx *MemoryIndex) Team(id uuid.UUID) (*domain.Team, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	t, ok := idx.teamByID[id]
	return t, ok
}

// Entity retrieves a player or team by ID
func (idx *MemoryIndex) Entity(id uuid.UUID) (domain.Entity, bool) {
	if p, ok := idx.Player(id); ok {
		return p, true
	}
	if t, ok := idx.Team(id); ok {
		return t, true
	}
	return nil, false
}

// Counts returns the number of players, teams and sources loaded
func (idx *MemoryIndex) Counts() (players, teams, sources int) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.players), len(idx.teams), idx.sources
}

// GetLastReload returns the timestamp of the last roster reload
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

// ─────────────────────────────────────────────────────────────────
// Relations
// ─────────────────────────────────────────────────────────────────

// Stint is a team a player played for, with the sources proving it.
type Stint struct {
	Team    *domain.Team
	Sources []*domain.Source
}

// TeamsOf returns the teams a player played for, current first.
// Stints pointing at unknown teams are skipped.
func (idx *MemoryIndex) TeamsOf(p *domain.Player) []Stint {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]Stint, 0, len(p.Teams))
	for _, stint := range p.Teams {
		if t, ok := idx.teamByID[stint.TeamID]; ok {
			out = append(out, Stint{Team: t, Sources: stint.Sources})
		}
	}
	return out
}

// Member is a player listed under a team.
type Member struct {
	Player  *domain.Player
	Current bool
}

// PlayersOf returns everyone who played for t, current members first.
func (idx *MemoryIndex) PlayersOf(t *domain.Team) []Member {
	idx.mu.RLock()
	players := idx.members[t.ID]
	idx.mu.RUnlock()

	out := make([]Member, 0, len(players))
	for _, p := range players {
		current, _ := p.CurrentTeamID()
		out = append(out, Member{Player: p, Current: current == t.ID})
	}
	slices.SortStableFunc(out, func(a, b Member) int {
		if a.Current != b.Current {
			if a.Current {
				return -1
			}
			return 1
		}
		return strings.Compare(strings.ToLower(a.Player.Name()), strings.ToLower(b.Player.Name()))
	})
	return out
}

// Win is a first place finish of a player.
type Win struct {
	Source  *domain.Source
	Bracket string
	Team    *domain.Team // nil when the winning team is unknown
}

// WinsOf lists the brackets p won, most recent source first.
func (idx *MemoryIndex) WinsOf(p *domain.Player) []Win {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var wins []Win
	for _, src := range p.Sources() {
		for _, b := range src.Brackets {
			for _, pl := range b.Placements {
				if pl.Place != 1 || !slices.Contains(pl.PlayerIDs, p.ID) {
					continue
				}
				wins = append(wins, Win{Source: src, Bracket: b.Name, Team: idx.teamByID[pl.TeamID]})
			}
		}
	}
	slices.SortStableFunc(wins, func(a, b Win) int {
		return b.Source.Date.Compare(a.Source.Date)
	})
	return wins
}
