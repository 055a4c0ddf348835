package domain

import (
	"strings"
	"testing"
	"time"
)

func sourcesOf(names ...string) SourceSet {
	list := make([]*Source, 0, len(names))
	for _, n := range names {
		list = append(list, ParseSource(n, ""))
	}
	return NewSourceSet(list...)
}

var groupCases = []struct {
	name     string
	sources  []string
	expected int
}{
	{
		name: "same tournament different month",
		sources: []string{
			"1999-01-01-my-tournament-is-the-best-jan-1999",
			"1999-02-01-my-tournament-is-the-best-feb-1999",
		},
		expected: 1,
	},
	{
		name: "open and 2v2 series",
		sources: []string{
			"2020-09-01-splatoon-2-north-america-open-september-2020",
			"2021-06-01-splatoon-2-north-american-online-open-june-2021",
			"2020-02-01-splatoon-2-the-return-of-2v2-tournaments",
			"2019-09-04-splatoon-2-2v2-tuesdays-38",
			"2019-08-28-splatoon-2-2v2-tuesdays-37-5d5eb9432419834065725fc1",
		},
		expected: 4,
	},
	{
		name: "two weekly series",
		sources: []string{
			"2021-12-09-swim-or-sink-51-61a27ec037497001768b52d9",
			"2022-01-06-swim-or-sink-54-61d264630d5ab55c817b180b",
			"2021-12-23-swim-or-sink-53-61a27f77cec81d6a1b5aad10",
			"2020-06-28-dual-ink-19-5ef353ce0633ab5068e80615",
			"2020-07-05-dual-ink-20-5efd2cf3a2b8f022508f7ccd",
		},
		expected: 2,
	},
	{
		name:     "too few hyphens never merge",
		sources:  []string{"2021-11-15-LUTI-S12", "2021-04-17-LUTI-S11"},
		expected: 2,
	},
	{
		name:     "single source",
		sources:  []string{"Test"},
		expected: 1,
	},
	{
		name:     "no sources",
		sources:  nil,
		expected: 0,
	},
}

func TestGroupSources(t *testing.T) {
	for _, tt := range groupCases {
		t.Run(tt.name, func(t *testing.T) {
			set := sourcesOf(tt.sources...)
			groups := GroupSources(set)

			if len(groups) != tt.expected {
				keys := make([]string, 0, len(groups))
				for _, g := range groups {
					keys = append(keys, g.Key)
				}
				t.Fatalf("GroupSources() = %d groups %v, want %d", len(groups), keys, tt.expected)
			}

			total := 0
			seen := make(map[*Source]bool)
			for _, g := range groups {
				total += len(g.Sources)
				for _, s := range g.Sources {
					if seen[s] {
						t.Errorf("source %q placed twice", s.Name)
					}
					seen[s] = true
				}
			}
			if total != len(tt.sources) {
				t.Errorf("groups hold %d sources, want %d", total, len(tt.sources))
			}

			for i := 1; i < len(groups); i++ {
				if groups[i-1].Key > groups[i].Key {
					t.Errorf("groups not sorted: %q before %q", groups[i-1].Key, groups[i].Key)
				}
			}
		})
	}
}

func TestGroupSourcesStableUnderRegrouping(t *testing.T) {
	for _, tt := range groupCases {
		t.Run(tt.name, func(t *testing.T) {
			first := GroupSources(sourcesOf(tt.sources...))

			var flat []*Source
			for _, g := range first {
				flat = append(flat, g.Sources...)
			}
			second := GroupSources(NewSourceSet(flat...))

			if len(first) != len(second) {
				t.Fatalf("regrouping changed group count: %d -> %d", len(first), len(second))
			}
			for i := range first {
				if first[i].Key != second[i].Key || len(first[i].Sources) != len(second[i].Sources) {
					t.Errorf("group %d changed: %q(%d) -> %q(%d)", i,
						first[i].Key, len(first[i].Sources), second[i].Key, len(second[i].Sources))
				}
			}
		})
	}
}

func TestGroupSourcesKeys(t *testing.T) {
	groups := GroupSources(sourcesOf(
		"2021-12-09-swim-or-sink-51-61a27ec037497001768b52d9",
		"2022-01-06-swim-or-sink-54-61d264630d5ab55c817b180b",
		"2019-09-04-splatoon-2-2v2-tuesdays-38",
		"2019-08-28-splatoon-2-2v2-tuesdays-37-5d5eb9432419834065725fc1",
	))

	expected := []string{"2v2-tuesdays", "swim-or-sink"}
	if len(groups) != len(expected) {
		t.Fatalf("got %d groups, want %d", len(groups), len(expected))
	}
	for i, k := range expected {
		if groups[i].Key != k {
			t.Errorf("group %d key = %q, want %q", i, groups[i].Key, k)
		}
		if len(groups[i].Sources) != 2 {
			t.Errorf("group %q has %d sources, want 2", k, len(groups[i].Sources))
		}
	}
}

func TestGroupSourcesMergesIntoExistingShorterKey(t *testing.T) {
	// "abc-def" has no candidates and keeps its own key; the third source then
	// shortens the first group onto that same key.
	groups := GroupSources(sourcesOf(
		"abc-def-ghi-1",
		"abc-def",
		"abc-def-zzz-2",
	))

	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].Key != "abc-def" || len(groups[0].Sources) != 3 {
		t.Errorf("group = %q with %d sources, want abc-def with 3", groups[0].Key, len(groups[0].Sources))
	}
}

func TestGroupLines(t *testing.T) {
	jan := &Source{StrippedName: "swim-or-sink-54", Date: time.Date(2022, 1, 6, 0, 0, 0, 0, time.UTC), Link: "https://l/54"}
	dec := &Source{StrippedName: "swim-or-sink-51", Date: time.Date(2021, 12, 9, 0, 0, 0, 0, time.UTC)}
	decDup := &Source{StrippedName: "swim-or-sink-53", Date: time.Date(2021, 12, 23, 0, 0, 0, 0, time.UTC)}
	undated := &Source{StrippedName: "Test", Link: "https://l/test"}

	lines := GroupLines([]SourceGroup{
		{Key: "swim-or-sink", Sources: []*Source{dec, jan, decDup}},
		{Key: "", Sources: []*Source{undated, dec}},
	})

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if want := "swim-or-sink: [Jan 2022](https://l/54), Dec 2021"; lines[0] != want {
		t.Errorf("line 0 = %q, want %q", lines[0], want)
	}
	if !strings.Contains(lines[1], "\n") || !strings.Contains(lines[1], "[Test](https://l/test)") {
		t.Errorf("keyless group should list linked names on separate lines, got %q", lines[1])
	}
}

func TestStripTournamentName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
		dated    bool
	}{
		{in: "2020-09-01-splatoon-2-north-america-open-september-2020", expected: "north-america-open-september-2020", dated: true},
		{in: "2021-04-17-LUTI-S11", expected: "LUTI-S11", dated: true},
		{in: "Test", expected: "Test"},
		{in: "splatoon-3-anarchy-open", expected: "anarchy-open"},
		{in: "2021-13-45-odd-date", expected: "2021-13-45-odd-date"},
	}

	for _, tt := range tests {
		got, date := StripTournamentName(tt.in)
		if got != tt.expected {
			t.Errorf("StripTournamentName(%q) = %q, want %q", tt.in, got, tt.expected)
		}
		if date.IsZero() == tt.dated {
			t.Errorf("StripTournamentName(%q) dated = %v, want %v", tt.in, !date.IsZero(), tt.dated)
		}
	}
}
