package roster

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/MrSnakeDoc/slapp/internal/domain"
)

// Snapshot is a fully resolved roster, ready to be indexed.
type Snapshot struct {
	Players []*domain.Player
	Teams   []*domain.Team
	Sources []*domain.Source
}

// Mapper converts roster records to domain entities
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// Map resolves every record of f. Sources named by players or teams but
// missing from the sources list are created on the fly.
func (m *Mapper) Map(f *File) (*Snapshot, error) {
	if f == nil || (len(f.Players) == 0 && len(f.Teams) == 0) {
		return nil, errors.New("no players or teams found in roster")
	}

	r := &resolver{byName: make(map[string]*domain.Source, len(f.Sources))}
	for i, rec := range f.Sources {
		src, err := mapSource(rec)
		if err != nil {
			return nil, errors.Wrapf(err, "source %d (%s)", i, rec.Name)
		}
		r.add(src)
	}

	snap := &Snapshot{}
	seen := make(map[uuid.UUID]bool, len(f.Players)+len(f.Teams))

	for i, rec := range f.Teams {
		id, err := parseID(rec.ID, seen)
		if err != nil {
			return nil, errors.Wrapf(err, "team %d", i)
		}
		snap.Teams = append(snap.Teams, &domain.Team{
			ID:          id,
			Names:       cleanList(rec.Names),
			ClanTags:    cleanList(rec.Tags),
			Division:    strings.TrimSpace(rec.Division),
			BattlefyURL: strings.TrimSpace(rec.Battlefy),
			SourceSet:   domain.NewSourceSet(r.resolveAll(rec.Sources)...),
		})
	}

	for i, rec := range f.Players {
		id, err := parseID(rec.ID, seen)
		if err != nil {
			return nil, errors.Wrapf(err, "player %d", i)
		}
		p := &domain.Player{
			ID:          id,
			Names:       cleanList(rec.Names),
			Country:     flag(rec.Country),
			Top500:      rec.Top500,
			FriendCodes: cleanList(rec.FriendCodes),
			Twitch:      socials(rec.Twitch, "https://www.twitch.tv/"),
			Twitter:     socials(rec.Twitter, "https://twitter.com/"),
			Battlefy:    socials(rec.Battlefy, "https://battlefy.com/users/"),
			Discord:     socials(rec.Discord, ""),
			Weapons:     cleanList(rec.Weapons),
			SourceSet:   domain.NewSourceSet(r.resolveAll(rec.Sources)...),
		}
		for _, plus := range rec.Plus {
			date, err := parseMonth(plus.Date)
			if err != nil {
				return nil, errors.Wrapf(err, "player %d plus membership", i)
			}
			p.Plus = append(p.Plus, domain.PlusMembership{Level: plus.Level, Date: date})
		}
		for _, stint := range rec.Teams {
			teamID, err := uuid.Parse(stint.ID)
			if err != nil {
				return nil, errors.Wrapf(err, "player %d team %q", i, stint.ID)
			}
			p.Teams = append(p.Teams, domain.TeamStint{TeamID: teamID, Sources: r.resolveAll(stint.Sources)})
		}
		snap.Players = append(snap.Players, p)
	}

	snap.Sources = r.list
	return snap, nil
}

type resolver struct {
	byName map[string]*domain.Source
	list   []*domain.Source
}

func (r *resolver) add(src *domain.Source) {
	if _, ok := r.byName[src.Name]; ok {
		return
	}
	r.byName[src.Name] = src
	r.list = append(r.list, src)
}

func (r *resolver) resolveAll(names []string) []*domain.Source {
	out := make([]*domain.Source, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		src, ok := r.byName[name]
		if !ok {
			src = domain.ParseSource(name, "")
			r.add(src)
		}
		out = append(out, src)
	}
	return out
}

func mapSource(rec SourceRecord) (*domain.Source, error) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return nil, errors.New("missing name")
	}
	src := domain.ParseSource(name, strings.TrimSpace(rec.Link))

	for _, b := range rec.Brackets {
		bracket := domain.Bracket{Name: b.Name}
		for _, pl := range b.Placements {
			placement := domain.Placement{Place: pl.Place}
			if pl.Team != "" {
				id, err := uuid.Parse(pl.Team)
				if err != nil {
					return nil, errors.Wrapf(err, "bracket %q team", b.Name)
				}
				placement.TeamID = id
			}
			for _, raw := range pl.Players {
				id, err := uuid.Parse(raw)
				if err != nil {
					return nil, errors.Wrapf(err, "bracket %q player", b.Name)
				}
				placement.PlayerIDs = append(placement.PlayerIDs, id)
			}
			bracket.Placements = append(bracket.Placements, placement)
		}
		src.Brackets = append(src.Brackets, bracket)
	}
	return src, nil
}

func parseID(raw string, seen map[uuid.UUID]bool) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "invalid id %q", raw)
	}
	if seen[id] {
		return uuid.Nil, errors.Errorf("duplicate id %s", id)
	}
	seen[id] = true
	return id, nil
}

func parseMonth(raw string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, "2006-01"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("invalid date %q", raw)
}

func socials(handles []string, base string) []domain.Social {
	out := make([]domain.Social, 0, len(handles))
	for _, h := range cleanList(handles) {
		s := domain.Social{Handle: h}
		if base != "" {
			s.URL = base + strings.TrimPrefix(h, "@")
		}
		out = append(out, s)
	}
	return out
}

// flag turns an ISO country code into its regional indicator pair.
// Example: "gb" -> "🇬🇧"
func flag(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return ""
	}
	var b strings.Builder
	for _, c := range code {
		if c > unicode.MaxASCII || !unicode.IsUpper(c) {
			return ""
		}
		b.WriteRune(0x1F1E6 + (c - 'A'))
	}
	return b.String()
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
