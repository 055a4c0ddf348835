package reactions

import (
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/slapp/internal/domain"
)

func players(n int) []*domain.Player {
	out := make([]*domain.Player, n)
	for i := range out {
		out[i] = &domain.Player{ID: uuid.New(), Names: []string{fmt.Sprintf("player-%d", i)}}
	}
	return out
}

func TestIndexAssign(t *testing.T) {
	idx := NewIndex()
	ps := players(21)

	for i, p := range ps[:20] {
		s, ok := idx.Assign(p)
		if !ok {
			t.Fatalf("Assign() #%d returned no symbol", i+1)
		}
		if s != Symbols[i] {
			t.Errorf("Assign() #%d = %q, want %q", i+1, s, Symbols[i])
		}
	}

	if s, ok := idx.Assign(ps[20]); ok {
		t.Errorf("21st Assign() = %q, want none", s)
	}
	if idx.Len() != MaxSymbols {
		t.Errorf("Len() = %d, want %d", idx.Len(), MaxSymbols)
	}
}

func TestIndexAssignSameEntityTwice(t *testing.T) {
	idx := NewIndex()
	p := players(1)[0]
	team := &domain.Team{ID: p.ID, Names: []string{"shares the id"}}

	first, _ := idx.Assign(p)
	again, _ := idx.Assign(p)
	other, _ := idx.Assign(team)

	if first != again {
		t.Errorf("same entity got %q then %q", first, again)
	}
	if other == first {
		t.Errorf("a team must not share a player's symbol")
	}
	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}
}

func TestCacheStoreEvictsSmallestID(t *testing.T) {
	c := NewCache(DefaultCapacity)

	// Insert out of order; 1000 is the smallest id.
	for i := 1050; i > 1000; i-- {
		c.Store(strconv.Itoa(i), NewIndex())
	}
	if c.Len() != DefaultCapacity {
		t.Fatalf("Len() = %d, want %d", c.Len(), DefaultCapacity)
	}

	evicted, ok := c.Store("1000", NewIndex())
	if !ok || evicted != "1000" {
		t.Errorf("Store() evicted %q (%v), want 1000", evicted, ok)
	}

	evicted, ok = c.Store("999999", NewIndex())
	if !ok || evicted != "1001" {
		t.Errorf("Store() evicted %q (%v), want 1001", evicted, ok)
	}
	if c.Len() != DefaultCapacity {
		t.Errorf("Len() = %d, want %d", c.Len(), DefaultCapacity)
	}
}

func TestCacheConsume(t *testing.T) {
	c := NewCache(0)
	idx := NewIndex()
	ps := players(2)
	s1, _ := idx.Assign(ps[0])
	s2, _ := idx.Assign(ps[1])
	c.Store("42", idx)

	e, ok := c.Consume("42", s1)
	if !ok || e != ps[0] {
		t.Fatalf("Consume() = %v, %v, want first player", e, ok)
	}
	if _, ok := c.Consume("42", s1); ok {
		t.Errorf("a symbol must only be consumed once")
	}
	if _, ok := c.Consume("43", s2); ok {
		t.Errorf("unknown message must not resolve")
	}
	if _, ok := c.Consume("42", Symbols[10]); ok {
		t.Errorf("unassigned symbol must not resolve")
	}
	if e, ok := c.Consume("42", s2); !ok || e != ps[1] {
		t.Errorf("Consume() second symbol = %v, %v", e, ok)
	}
	if c.Len() != 0 {
		t.Errorf("exhausted message should be dropped, Len() = %d", c.Len())
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache(DefaultCapacity)
	p := players(1)[0]

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			idx := NewIndex()
			idx.Assign(p)
			c.Store(strconv.Itoa(10_000+i), idx)
		}(i)
		go func(i int) {
			defer wg.Done()
			c.Consume(strconv.Itoa(10_000+i), Symbols[0])
		}(i)
	}
	wg.Wait()

	if c.Len() > DefaultCapacity {
		t.Errorf("Len() = %d, exceeds %d", c.Len(), DefaultCapacity)
	}
}

func TestLessID(t *testing.T) {
	tests := []struct {
		a, b string
		less bool
	}{
		{a: "9", b: "10", less: true},
		{a: "895381504023199825", b: "895381503977087026", less: false},
		{a: "123", b: "123", less: false},
	}
	for _, tt := range tests {
		if got := lessID(tt.a, tt.b); got != tt.less {
			t.Errorf("lessID(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.less)
		}
	}
}

func TestSymbolAPIName(t *testing.T) {
	tests := []struct {
		symbol   Symbol
		expected string
	}{
		{symbol: Symbols[0], expected: "1️⃣"},
		{symbol: Symbols[10], expected: "keycap_11:895381504023199825"},
		{symbol: "<a:spin:123>", expected: "spin:123"},
	}
	for _, tt := range tests {
		if got := tt.symbol.APIName(); got != tt.expected {
			t.Errorf("APIName(%q) = %q, want %q", tt.symbol, got, tt.expected)
		}
	}

	if got := FromEmoji("keycap_11", "895381504023199825"); got != Symbols[10] {
		t.Errorf("FromEmoji() = %q, want %q", got, Symbols[10])
	}
	if got := FromEmoji("🔟", ""); got != Symbols[9] {
		t.Errorf("FromEmoji() = %q, want %q", got, Symbols[9])
	}
}
