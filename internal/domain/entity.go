package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntityKind tells players and teams apart.
type EntityKind int

const (
	KindPlayer EntityKind = iota
	KindTeam
)

func (k EntityKind) String() string {
	if k == KindTeam {
		return "team"
	}
	return "player"
}

// Entity is a matched player or team.
type Entity interface {
	ReadonlySourceable
	EntityID() uuid.UUID
	Kind() EntityKind
	Name() string
}

// Social is a handle on an external platform.
type Social struct {
	Handle string
	URL    string
}

// Display renders the handle, linked when a URL is known.
func (s Social) Display() string {
	return link(s.Handle, s.URL)
}

// PlusMembership is one recorded membership of the competitive Plus server.
type PlusMembership struct {
	Level int
	Date  time.Time
}

// TeamStint links a player to a team and the sources that prove it.
type TeamStint struct {
	TeamID  uuid.UUID
	Sources []*Source
}

// Player is a competitor known to the roster.
type Player struct {
	ID uuid.UUID

	// Names are ordered most recent first.
	Names []string

	// Country is a flag emoji, empty when unknown.
	Country string
	Top500  bool

	FriendCodes []string
	Twitch      []Social
	Twitter     []Social
	Battlefy    []Social
	Discord     []Social
	Weapons     []string
	Plus        []PlusMembership

	// Teams are ordered most recent first; the first one is current.
	Teams []TeamStint

	SourceSet
}

func (p *Player) EntityID() uuid.UUID { return p.ID }
func (p *Player) Kind() EntityKind    { return KindPlayer }

func (p *Player) Name() string {
	if len(p.Names) == 0 {
		return "(unnamed)"
	}
	return p.Names[0]
}

// OtherNames returns every name but the current one.
func (p *Player) OtherNames() []string {
	if len(p.Names) < 2 {
		return nil
	}
	return p.Names[1:]
}

// CurrentTeamID returns the most recent team, if any.
func (p *Player) CurrentTeamID() (uuid.UUID, bool) {
	if len(p.Teams) == 0 {
		return uuid.Nil, false
	}
	return p.Teams[0].TeamID, true
}

// Team is a roster of players competing together.
type Team struct {
	ID       uuid.UUID
	Names    []string
	ClanTags []string

	// Division is the best known league division, free text.
	Division    string
	BattlefyURL string

	SourceSet
}

func (t *Team) EntityID() uuid.UUID { return t.ID }
func (t *Team) Kind() EntityKind    { return KindTeam }

func (t *Team) Name() string {
	if len(t.Names) == 0 {
		return "(unnamed)"
	}
	return t.Names[0]
}

func (t *Team) OtherNames() []string {
	if len(t.Names) < 2 {
		return nil
	}
	return t.Names[1:]
}

// Tag returns the primary clan tag, empty when none is known.
func (t *Team) Tag() string {
	if len(t.ClanTags) == 0 {
		return ""
	}
	return t.ClanTags[0]
}
