package embed

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// Ellipsis marks text that was cut short.
	Ellipsis = "…"

	codeFence = "```"
)

// Truncate shortens s to at most max runes, ending it with indicator when cut.
func Truncate(s string, max int, indicator string) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	ind := utf8.RuneCountInString(indicator)
	if ind >= max {
		return string(r[:max])
	}
	return string(r[:max-ind]) + indicator
}

// CloseFences appends a closing code fence when s leaves one open.
func CloseFences(s string) string {
	if strings.Count(s, codeFence)%2 == 1 {
		return s + codeFence
	}
	return s
}

// Or returns fallback when s is blank.
func Or(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// Plural formats a count with its noun, adding an "s" unless n is 1.
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// SafeBackticks escapes backticks so user text cannot open code spans.
func SafeBackticks(s string) string {
	return strings.ReplaceAll(s, "`", "\\`")
}

// WrapInBackticks renders s as an inline code span.
func WrapInBackticks(s string) string {
	if s == "" {
		return ""
	}
	return "`" + SafeBackticks(s) + "`"
}

func runes(s string) int { return utf8.RuneCountInString(s) }
