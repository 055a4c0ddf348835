package domain

import (
	"strconv"
	"strings"
	"unicode"
)

// Query is a parsed roster search.
type Query struct {
	Raw  string // search text as typed, flags removed
	Text string // lower-cased search text

	Players bool // restrict to players
	Teams   bool // restrict to teams
	Exact   bool // whole-name, case-insensitive match only
	Limit   int  // 0 = no limit
}

// ParseQuery splits flags from the search text.
// Examples:
//   - "kraken" -> players and teams matching "kraken"
//   - "--teams kraken" -> teams only
//   - "--exact --limit=3 Kraken Paradise" -> first three exact matches
func ParseQuery(input string) *Query {
	q := &Query{}
	words := make([]string, 0, 4)

	for _, word := range strings.Fields(input) {
		switch {
		case word == "--players" || word == "-p":
			q.Players = true
		case word == "--teams" || word == "-t":
			q.Teams = true
		case word == "--exact" || word == "-e":
			q.Exact = true
		case strings.HasPrefix(word, "--limit="):
			if n, err := strconv.Atoi(strings.TrimPrefix(word, "--limit=")); err == nil && n > 0 {
				q.Limit = n
			}
		default:
			words = append(words, word)
		}
	}

	q.Raw = strings.Join(words, " ")
	q.Text = strings.ToLower(q.Raw)
	return q
}

// WantsPlayers reports whether players should be searched.
func (q *Query) WantsPlayers() bool { return q.Players || !q.Teams }

// WantsTeams reports whether teams should be searched.
func (q *Query) WantsTeams() bool { return q.Teams || !q.Players }

// normalizeFragment normalizes a fragment for matching
func normalizeFragment(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}
