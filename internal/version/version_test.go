package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	Version, Commit = "v1.0.0", "abc1234"
	got := String()
	for _, want := range []string{"slapp v1.0.0", "commit=abc1234", "go=go"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}
