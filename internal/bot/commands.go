package bot

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/MrSnakeDoc/slapp/internal/logger"
	"github.com/MrSnakeDoc/slapp/internal/presenter"
)

// Replier sends plain text answers.
type Replier interface {
	SendText(ctx context.Context, channelID, replyTo, text string) error
}

// Bot holds the command handlers and what they need.
type Bot struct {
	presenter *presenter.Presenter
	searcher  *Searcher
	replier   Replier
	prefix    string
	logger    logger.Logger

	reload  chan<- struct{}
	isOwner func(userID string) bool
}

func New(p *presenter.Presenter, s *Searcher, r Replier, prefix string, log logger.Logger) *Bot {
	return &Bot{presenter: p, searcher: s, replier: r, prefix: prefix, logger: log}
}

// WithReload enables the owner-only reload command.
func (b *Bot) WithReload(trigger chan<- struct{}, isOwner func(userID string) bool) *Bot {
	b.reload = trigger
	b.isOwner = isOwner
	return b
}

// Router builds the command registry.
func (b *Bot) Router() *Router {
	r := NewRouter(b.prefix, b.logger)
	r.Handle(Command{
		Name:    "slapp",
		Usage:   "slapp [--players|--teams] [--exact] [--limit=N] <query>",
		Summary: "Search players and teams",
		Run:     b.slapp,
	}).Handle(Command{
		Name:    "full",
		Usage:   "full <id>",
		Summary: "Show everything about one player or team",
		Run:     b.full,
	}).Handle(Command{
		Name:    "help",
		Usage:   "help",
		Summary: "List commands",
		Run:     b.help(r),
	})
	if b.reload != nil {
		r.Handle(Command{
			Name:    "reload",
			Usage:   "reload",
			Summary: "Reload the roster (owners only)",
			Run:     b.reloadRoster,
		})
	}
	return r
}

func (b *Bot) slapp(ctx context.Context, req Request) error {
	players, teams, q := b.searcher.Search(ctx, req.Args)
	if q.Text == "" {
		return b.replier.SendText(ctx, req.ChannelID, req.MessageID, "Usage: "+b.prefix+"slapp <query>")
	}

	res, err := b.presenter.Present(players, teams)
	if err != nil {
		return b.fail(ctx, req, err)
	}
	return b.deliver(ctx, req, res)
}

func (b *Bot) full(ctx context.Context, req Request) error {
	id, err := uuid.Parse(strings.TrimSpace(req.Args))
	if err != nil {
		return b.replier.SendText(ctx, req.ChannelID, req.MessageID, "Usage: "+b.prefix+"full <id>")
	}

	b.logger.Debug("full lookup", logger.Stringer("id", id))
	res, err := b.presenter.Lookup(id)
	if err != nil {
		return b.fail(ctx, req, err)
	}
	return b.deliver(ctx, req, res)
}

func (b *Bot) help(r *Router) HandlerFunc {
	return func(ctx context.Context, req Request) error {
		var sb strings.Builder
		sb.WriteString("Commands:\n")
		for _, cmd := range r.Commands() {
			sb.WriteString("`" + b.prefix + cmd.Usage + "` " + cmd.Summary + "\n")
		}
		return b.replier.SendText(ctx, req.ChannelID, req.MessageID, sb.String())
	}
}

func (b *Bot) reloadRoster(ctx context.Context, req Request) error {
	if b.isOwner == nil || !b.isOwner(req.AuthorID) {
		b.logger.Warn("reload refused", logger.String("author", req.AuthorID))
		return nil
	}
	text := "✅ Roster reload triggered"
	select {
	case b.reload <- struct{}{}:
	default:
		text = "⏳ Reload already in progress, please wait"
	}
	return b.replier.SendText(ctx, req.ChannelID, req.MessageID, text)
}

func (b *Bot) deliver(ctx context.Context, req Request, res *presenter.Result) error {
	d := b.presenter.Deliver(ctx, req.ChannelID, "", res)
	if err := d.Err(); err != nil {
		b.logger.Warn("answer partially delivered",
			logger.Int("sent", len(d.MessageIDs)),
			logger.Int("pages", len(res.Pages)),
			logger.Error(err))
	}
	return nil
}

func (b *Bot) fail(ctx context.Context, req Request, err error) error {
	if rerr := b.replier.SendText(ctx, req.ChannelID, req.MessageID, "Something went wrong processing that query. 😒🤔"); rerr != nil {
		b.logger.Warn("failed to report error", logger.Error(rerr))
	}
	return errors.Wrapf(err, "%s %q", req.Command, req.Args)
}

// HandleReaction adapts drill-down to the gateway's reaction handler.
func (b *Bot) HandleReaction(ctx context.Context, ev presenter.ReactionEvent) {
	d, err := b.presenter.HandleReaction(ctx, ev)
	if err != nil {
		b.logger.Error("drill-down failed", logger.String("message", ev.MessageID), logger.Error(err))
		return
	}
	if d != nil && d.Err() != nil {
		b.logger.Warn("drill-down partially delivered", logger.Error(d.Err()))
	}
}
