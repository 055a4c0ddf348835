package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestScoreName(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		target         string
		expectPositive bool
	}{
		{name: "exact match", query: "slate", target: "Slate", expectPositive: true},
		{name: "prefix match", query: "kra", target: "Kraken Paradise", expectPositive: true},
		{name: "substring match", query: "paradise", target: "Kraken Paradise", expectPositive: true},
		{name: "punctuation ignored", query: "kraken paradise", target: "Kraken-Paradise!", expectPositive: true},
		{name: "fuzzy match", query: "krakne", target: "kraken", expectPositive: true},
		{name: "short fuzzy rejected", query: "xkr", target: "kraken", expectPositive: false},
		{name: "no match", query: "zzzz", target: "Kraken", expectPositive: false},
		{name: "exact flag rejects prefix", query: "--exact kra", target: "Kraken", expectPositive: false},
		{name: "exact flag accepts whole name", query: "--exact kraken", target: "Kraken", expectPositive: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ScoreName(ParseQuery(tt.query), tt.target)
			if (score > 0) != tt.expectPositive {
				t.Errorf("ScoreName(%q, %q) = %.2f, expectPositive %v", tt.query, tt.target, score, tt.expectPositive)
			}
		})
	}
}

func TestScoreOrdering(t *testing.T) {
	q := ParseQuery("kraken")
	exact := ScoreName(q, "Kraken")
	prefix := ScoreName(q, "Kraken Paradise")
	substring := ScoreName(q, "Big Kraken")

	if !(exact > prefix && prefix > substring) {
		t.Errorf("expected exact > prefix > substring, got %.2f %.2f %.2f", exact, prefix, substring)
	}
}

func TestRankCandidates(t *testing.T) {
	a := &Player{ID: uuid.New(), Names: []string{"Big Kraken"}}
	b := &Player{ID: uuid.New(), Names: []string{"Kraken"}}
	c := &Player{ID: uuid.New(), Names: []string{"Slate"}}
	d := &Player{ID: uuid.New(), Names: []string{"Someone", "Kraken"}}

	ranked := RankCandidates(ParseQuery("kraken"), []Entity{a, b, c, d}, func(e Entity) []string {
		return e.(*Player).Names
	})

	if len(ranked) != 3 {
		t.Fatalf("RankCandidates() = %d, want 3", len(ranked))
	}
	if ranked[0].Entity != b {
		t.Errorf("best match = %s, want Kraken", ranked[0].Entity.Name())
	}
	if ranked[1].Entity != d {
		t.Errorf("second match = %s, want the player formerly named Kraken", ranked[1].Entity.Name())
	}
}
