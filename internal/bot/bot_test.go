package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/slapp/internal/domain"
	"github.com/MrSnakeDoc/slapp/internal/embed"
	"github.com/MrSnakeDoc/slapp/internal/gateway"
	"github.com/MrSnakeDoc/slapp/internal/index"
	"github.com/MrSnakeDoc/slapp/internal/logger"
	"github.com/MrSnakeDoc/slapp/internal/presenter"
	"github.com/MrSnakeDoc/slapp/internal/reactions"
	"github.com/MrSnakeDoc/slapp/internal/sources/roster"
)

type fakeChat struct {
	mu        sync.Mutex
	next      int
	pages     []embed.Page
	texts     []string
	reactions []reactions.Symbol
}

func (c *fakeChat) SendPage(_ context.Context, _, _ string, page embed.Page) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	c.pages = append(c.pages, page)
	return fmt.Sprintf("%d", 1000+c.next), nil
}

func (c *fakeChat) AddReaction(_ context.Context, _, _ string, s reactions.Symbol) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reactions = append(c.reactions, s)
	return nil
}

func (c *fakeChat) SendText(_ context.Context, _, _, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.texts = append(c.texts, text)
	return nil
}

type fixture struct {
	chat   *fakeChat
	router *Router
	bot    *Bot
	team   *domain.Team
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.New("error", false)

	team := &domain.Team{ID: uuid.New(), Names: []string{"Kraken Paradise"}, ClanTags: []string{"KP"}}
	slate := &domain.Player{ID: uuid.New(), Names: []string{"Slate"}, Teams: []domain.TeamStint{{TeamID: team.ID}}}
	slater := &domain.Player{ID: uuid.New(), Names: []string{"Slater"}}
	idx := index.NewMemoryIndex()
	idx.Update(&roster.Snapshot{Players: []*domain.Player{slate, slater}, Teams: []*domain.Team{team}})

	chat := &fakeChat{}
	p := presenter.New(idx, chat, reactions.NewCache(reactions.DefaultCapacity), log, nil, presenter.Options{CommandPrefix: "!"})
	b := New(p, NewSearcher(idx, nil, 0, log), chat, "!", log)
	return &fixture{chat: chat, router: b.Router(), bot: b, team: team}
}

func (f *fixture) send(content string) bool {
	return f.router.Dispatch(context.Background(), gateway.Message{ChannelID: "chan", MessageID: "1", AuthorID: "u", Content: content})
}

func TestRouterParse(t *testing.T) {
	r := NewRouter("!", logger.New("error", false))
	tests := []struct {
		content string
		name    string
		args    string
		ok      bool
	}{
		{content: "!slapp kraken paradise", name: "slapp", args: "kraken paradise", ok: true},
		{content: "  !HELP  ", name: "help", ok: true},
		{content: "!full   abc ", name: "full", args: "abc", ok: true},
		{content: "slapp kraken", ok: false},
		{content: "!", ok: false},
		{content: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			name, args, ok := r.parse(tt.content)
			if ok != tt.ok || name != tt.name || args != tt.args {
				t.Errorf("parse(%q) = %q, %q, %v; want %q, %q, %v", tt.content, name, args, ok, tt.name, tt.args, tt.ok)
			}
		})
	}
}

func TestRouterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("registering a command twice should panic")
		}
	}()
	noop := func(context.Context, Request) error { return nil }
	NewRouter("!", logger.New("error", false)).
		Handle(Command{Name: "slapp", Run: noop}).
		Handle(Command{Name: "SLAPP", Run: noop})
}

func TestDispatchIgnoresUnknown(t *testing.T) {
	f := newFixture(t)
	if f.send("!dance") {
		t.Error("unknown command should be ignored")
	}
	if f.send("hello there") {
		t.Error("message without prefix should be ignored")
	}
	if len(f.chat.pages)+len(f.chat.texts) != 0 {
		t.Error("ignored messages should not produce output")
	}
}

func TestSlappCommand(t *testing.T) {
	f := newFixture(t)

	if !f.send("!slapp --players --exact slate") {
		t.Fatal("slapp should be dispatched")
	}
	if len(f.chat.pages) != 1 || f.chat.pages[0].Author != "Found a player!" {
		t.Fatalf("pages = %+v", f.chat.pages)
	}
	// The single player view offers the current team for drill-down.
	if len(f.chat.reactions) != 1 || f.chat.reactions[0] != reactions.Symbols[0] {
		t.Errorf("reactions = %v", f.chat.reactions)
	}

	f.send("!slapp slate")
	last := f.chat.pages[len(f.chat.pages)-1]
	if last.Author != "Found 2 players!" {
		t.Errorf("Author = %q, want two players", last.Author)
	}
}

func TestSlappUsage(t *testing.T) {
	f := newFixture(t)
	f.send("!slapp --teams")
	if len(f.chat.texts) != 1 || !strings.HasPrefix(f.chat.texts[0], "Usage: !slapp") {
		t.Errorf("texts = %v", f.chat.texts)
	}
}

func TestFullCommand(t *testing.T) {
	f := newFixture(t)

	f.send("!full not-an-id")
	if len(f.chat.texts) != 1 || !strings.HasPrefix(f.chat.texts[0], "Usage: !full") {
		t.Errorf("texts = %v", f.chat.texts)
	}

	f.send("!full " + f.team.ID.String())
	if len(f.chat.pages) != 1 || f.chat.pages[0].Author != "Found a team!" {
		t.Errorf("pages = %+v", f.chat.pages)
	}
}

func TestHelpCommand(t *testing.T) {
	f := newFixture(t)
	f.send("!help")
	if len(f.chat.texts) != 1 {
		t.Fatalf("texts = %v", f.chat.texts)
	}
	for _, want := range []string{"!slapp", "!full <id>", "!help"} {
		if !strings.Contains(f.chat.texts[0], want) {
			t.Errorf("help text missing %q", want)
		}
	}
}

func TestHandleReaction(t *testing.T) {
	f := newFixture(t)
	f.send("!slapp slate")
	tracked := fmt.Sprintf("%d", 1000+f.chat.next)

	f.bot.HandleReaction(context.Background(), presenter.ReactionEvent{
		ChannelID: "chan",
		MessageID: tracked,
		UserID:    "u",
		Symbol:    reactions.Symbols[0],
	})
	last := f.chat.pages[len(f.chat.pages)-1]
	if last.Author != "Found a player!" {
		t.Errorf("drill-down Author = %q", last.Author)
	}
}

func TestReloadCommand(t *testing.T) {
	f := newFixture(t)
	if f.send("!reload") {
		t.Fatal("reload should not exist without a trigger")
	}

	trigger := make(chan struct{}, 1)
	f.bot.WithReload(trigger, func(id string) bool { return id == "owner" })
	router := f.bot.Router()
	send := func(author string) {
		router.Dispatch(context.Background(), gateway.Message{ChannelID: "chan", MessageID: "9", AuthorID: author, Content: "!reload"})
	}

	send("u")
	if len(trigger) != 0 || len(f.chat.texts) != 0 {
		t.Error("non-owners must not trigger a reload")
	}

	send("owner")
	if len(trigger) != 1 || f.chat.texts[0] != "✅ Roster reload triggered" {
		t.Errorf("trigger=%d texts=%v", len(trigger), f.chat.texts)
	}

	send("owner")
	if f.chat.texts[1] != "⏳ Reload already in progress, please wait" {
		t.Errorf("texts = %v", f.chat.texts)
	}
}
