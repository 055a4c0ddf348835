package redis

import (
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "plain", query: "kraken", want: "slapp:cache:kraken"},
		{name: "case folded", query: "Kraken Paradise", want: "slapp:cache:kraken paradise"},
		{name: "spacing collapsed", query: "  --teams   kraken ", want: "slapp:cache:--teams kraken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CacheKey(tt.query); got != tt.want {
				t.Errorf("CacheKey(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestEntityMember(t *testing.T) {
	if got := EntityMember("team", "ABC-1"); got != "team:abc-1" {
		t.Errorf("EntityMember() = %q", got)
	}
}

func TestToCounts(t *testing.T) {
	got := toCounts([]redis.Z{{Score: 3, Member: "kraken"}, {Score: 1, Member: "slate"}})
	if len(got) != 2 || got[0].Query != "kraken" || got[0].Count != 3 || got[1].Count != 1 {
		t.Errorf("toCounts() = %+v", got)
	}
}
