package embed

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		max       int
		indicator string
		expected  string
	}{
		{name: "short string unchanged", in: "abc", max: 5, indicator: Ellipsis, expected: "abc"},
		{name: "exact length unchanged", in: "abcde", max: 5, indicator: Ellipsis, expected: "abcde"},
		{name: "cut with ellipsis", in: "abcdefgh", max: 5, indicator: Ellipsis, expected: "abcd…"},
		{name: "multi rune indicator", in: "abcdefgh", max: 5, indicator: "…\n", expected: "abc…\n"},
		{name: "counts runes not bytes", in: "ééééé", max: 5, indicator: Ellipsis, expected: "ééééé"},
		{name: "indicator longer than max", in: "abcdefgh", max: 1, indicator: "...", expected: "a"},
		{name: "zero max", in: "abc", max: 0, indicator: Ellipsis, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.max, tt.indicator); got != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.expected)
			}
		})
	}
}

func TestCloseFences(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{in: "plain", expected: "plain"},
		{in: "```code```", expected: "```code```"},
		{in: "```code", expected: "```code```"},
		{in: "```a``` ```b", expected: "```a``` ```b```"},
	}

	for _, tt := range tests {
		if got := CloseFences(tt.in); got != tt.expected {
			t.Errorf("CloseFences(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestPluralAndOr(t *testing.T) {
	if got := Plural(1, "team"); got != "1 team" {
		t.Errorf("Plural(1) = %q", got)
	}
	if got := Plural(3, "player"); got != "3 players" {
		t.Errorf("Plural(3) = %q", got)
	}
	if got := Plural(0, "code"); got != "0 codes" {
		t.Errorf("Plural(0) = %q", got)
	}
	if got := Or("  ", "x"); got != "x" {
		t.Errorf("Or(blank) = %q, want x", got)
	}
	if got := Or("y", "x"); got != "y" {
		t.Errorf("Or(y) = %q, want y", got)
	}
	if got := WrapInBackticks("a`b"); got != "`a\\`b`" {
		t.Errorf("WrapInBackticks() = %q", got)
	}
}
