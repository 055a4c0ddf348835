package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	datePrefix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-`)
	gamePrefix = regexp.MustCompile(`(?i)^splatoon(-\d)?-`)
)

// Source is the provenance record of one tournament or event.
// It is shared between every player and team that took part and
// must not be modified once built.
type Source struct {
	// Name is the identifier as exported by the organiser.
	// Example: 2021-12-09-swim-or-sink-51-61a27ec037497001768b52d9
	Name string

	// StrippedName is Name without its date and game boilerplate.
	// Example: swim-or-sink-51-61a27ec037497001768b52d9
	StrippedName string

	// Date is parsed from the name prefix, zero when unknown.
	Date time.Time

	// Link points at the tournament page, empty when unknown.
	Link string

	Brackets []Bracket
}

// Bracket is one stage of a tournament with its final standings.
type Bracket struct {
	Name       string
	Placements []Placement
}

type Placement struct {
	Place     int
	TeamID    uuid.UUID
	PlayerIDs []uuid.UUID
}

// ParseSource builds a Source from its exported name.
func ParseSource(name, link string) *Source {
	stripped, date := StripTournamentName(name)
	return &Source{
		Name:         name,
		StrippedName: stripped,
		Date:         date,
		Link:         link,
	}
}

// StripTournamentName removes the leading date and game tokens from a
// tournament name and returns the remainder with the parsed date.
//
//	"2020-09-01-splatoon-2-north-america-open-september-2020" -> "north-america-open-september-2020"
//	"2021-04-17-LUTI-S11" -> "LUTI-S11"
func StripTournamentName(name string) (string, time.Time) {
	rest := name
	var date time.Time

	if m := datePrefix.FindStringSubmatch(rest); m != nil {
		if d, err := time.Parse(time.DateOnly, m[1]); err == nil {
			date = d
			rest = rest[len(m[0]):]
		}
	}
	rest = gamePrefix.ReplaceAllString(rest, "")

	if strings.TrimSpace(rest) == "" {
		return name, date
	}
	return rest, date
}

// LinkedDateDisplay renders the source as its month, linked when possible.
func (s *Source) LinkedDateDisplay() string {
	text := s.StrippedName
	if !s.Date.IsZero() {
		text = s.Date.Format("Jan 2006")
	}
	return link(text, s.Link)
}

// LinkedNameDisplay renders the source as its stripped name, linked when possible.
func (s *Source) LinkedNameDisplay() string {
	return link(s.StrippedName, s.Link)
}

func link(text, url string) string {
	if url == "" {
		return text
	}
	return "[" + text + "](" + url + ")"
}

// ReadonlySourceable is anything that carries provenance.
type ReadonlySourceable interface {
	Sources() []*Source
}

// SourceSet is an ordered list of sources. Embed it to satisfy ReadonlySourceable.
type SourceSet struct {
	list []*Source
}

func NewSourceSet(sources ...*Source) SourceSet {
	return SourceSet{list: sources}
}

func (s SourceSet) Sources() []*Source { return s.list }

// LatestSource returns the most recently dated source, or nil.
func (s SourceSet) LatestSource() *Source {
	var latest *Source
	for _, src := range s.list {
		if latest == nil || src.Date.After(latest.Date) {
			latest = src
		}
	}
	return latest
}
