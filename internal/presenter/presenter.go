package presenter

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/MrSnakeDoc/slapp/internal/domain"
	"github.com/MrSnakeDoc/slapp/internal/embed"
	"github.com/MrSnakeDoc/slapp/internal/index"
	"github.com/MrSnakeDoc/slapp/internal/logger"
	"github.com/MrSnakeDoc/slapp/internal/metrics"
	"github.com/MrSnakeDoc/slapp/internal/reactions"
)

// ErrInvariantViolated reports a match result the presenter has no view for.
var ErrInvariantViolated = errors.New("presenter invariant violated")

// Roster is the part of the roster service the views read from.
type Roster interface {
	TeamsOf(p *domain.Player) []index.Stint
	PlayersOf(t *domain.Team) []index.Member
	WinsOf(p *domain.Player) []index.Win
	Entity(id uuid.UUID) (domain.Entity, bool)
}

type Options struct {
	// MaxResults caps the entities rendered per category.
	MaxResults int
	// CommandPrefix is shown in "More info" pointers.
	CommandPrefix string
	// Phrase picks the footer phrase; random when nil.
	Phrase func() string
}

// Presenter turns match results into pages and drives their delivery.
type Presenter struct {
	roster  Roster
	gateway Gateway
	cache   *reactions.Cache
	log     logger.Logger
	metrics *metrics.Metrics
	opts    Options
}

// New wires a presenter. gateway may be nil when results are only rendered.
func New(roster Roster, gateway Gateway, cache *reactions.Cache, log logger.Logger, m *metrics.Metrics, opts Options) *Presenter {
	if opts.MaxResults <= 0 {
		opts.MaxResults = embed.MaxResults
	}
	if opts.Phrase == nil {
		opts.Phrase = randomPhrase
	}
	if cache == nil {
		cache = reactions.NewCache(reactions.DefaultCapacity)
	}
	return &Presenter{
		roster:  roster,
		gateway: gateway,
		cache:   cache,
		log:     log.With(logger.Component("presenter")),
		metrics: m,
		opts:    opts,
	}
}

// Cache exposes the reaction cache, for status reporting.
func (p *Presenter) Cache() *reactions.Cache { return p.cache }

// Result is a rendered answer, ready to be delivered.
type Result struct {
	Pages     []embed.Page     `json:"pages"`
	Reactions *reactions.Index `json:"-"`
	// Dropped counts fields lost to the page cap.
	Dropped int `json:"dropped,omitempty"`
}

// Present renders players and teams into pages. Each category is capped at
// MaxResults entities; entities that fail to render are replaced by an error
// field so the rest of the answer survives.
func (p *Presenter) Present(players []*domain.Player, teams []*domain.Team) (*Result, error) {
	for i, pl := range players {
		if pl == nil {
			return nil, errors.Wrapf(ErrInvariantViolated, "nil player at %d", i)
		}
	}
	for i, t := range teams {
		if t == nil {
			return nil, errors.Wrapf(ErrInvariantViolated, "nil team at %d", i)
		}
	}

	title, colour, err := header(len(players), len(teams))
	if err != nil {
		return nil, err
	}
	p.metrics.ObserveQuery(queryKind(len(players), len(teams)))

	v := &view{
		Presenter: p,
		b:         embed.NewBuilder().WithAuthor(title).WithColour(colour),
		symbols:   reactions.NewIndex(),
		players:   len(players),
		teams:     len(teams),
	}
	for _, pl := range capped(players, p.opts.MaxResults) {
		v.guard("(Error Player)", func() { v.player(pl) })
	}
	for _, t := range capped(teams, p.opts.MaxResults) {
		v.guard("(Error Team)", func() { v.team(t) })
	}
	v.b.WithFooter(p.footer(len(players) + len(teams)))

	pages, dropped := embed.Split(v.b.Document())
	p.metrics.AddDroppedFields(dropped)
	return &Result{Pages: pages, Reactions: v.symbols, Dropped: dropped}, nil
}

// PresentEntity renders a single player or team on its own.
func (p *Presenter) PresentEntity(e domain.Entity) (*Result, error) {
	switch e := e.(type) {
	case *domain.Player:
		return p.Present([]*domain.Player{e}, nil)
	case *domain.Team:
		return p.Present(nil, []*domain.Team{e})
	default:
		return nil, errors.Wrapf(ErrInvariantViolated, "unknown entity %T", e)
	}
}

// Lookup presents the player or team with the given id, or the
// not-found answer when the roster does not know it.
func (p *Presenter) Lookup(id uuid.UUID) (*Result, error) {
	e, ok := p.roster.Entity(id)
	if !ok {
		return p.Present(nil, nil)
	}
	return p.PresentEntity(e)
}

// header picks the title and colour for the result's shape.
func header(players, teams int) (string, embed.Colour, error) {
	switch {
	case players == 0 && teams == 0:
		return "Didn't find anything 😶", embed.ColourRed, nil
	case players == 0 && teams == 1:
		return "Found a team!", embed.ColourDarkGold, nil
	case players == 0 && teams > 1:
		return fmt.Sprintf("Found %d teams!", teams), embed.ColourGold, nil
	case players == 1 && teams == 0:
		return "Found a player!", embed.ColourDarkBlue, nil
	case players > 1 && teams == 0:
		return fmt.Sprintf("Found %d players!", players), embed.ColourBlue, nil
	case players > 0 && teams > 0:
		return fmt.Sprintf("Found %s and %s!", embed.Plural(players, "player"), embed.Plural(teams, "team")), embed.ColourGreen, nil
	default:
		return "", 0, errors.Wrapf(ErrInvariantViolated, "players=%d teams=%d", players, teams)
	}
}

func queryKind(players, teams int) string {
	switch {
	case players == 0 && teams == 0:
		return "none"
	case teams == 0:
		return "players"
	case players == 0:
		return "teams"
	default:
		return "mixed"
	}
}

func capped[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// ─────────────────────────────────────────────────────────────────
// Footer
// ─────────────────────────────────────────────────────────────────

var phrases = []string{
	"⌨️ Just a sec!",
	"🏃 On it!",
	"🦑 I'll go get that!",
	"⏱️ Give me two secs!",
	"🛼 Slidin' in shortly!",
	"🔁 Back with you soon!",
	"❔ What will it be?",
	"👋 Slap slap slap",
}

func randomPhrase() string {
	return phrases[rand.IntN(len(phrases))]
}

func (p *Presenter) footer(total int) string {
	text := p.opts.Phrase()
	if total > p.opts.MaxResults {
		text += fmt.Sprintf("\nOnly the first %d results are shown for players and teams.", p.opts.MaxResults)
	}
	return text
}
