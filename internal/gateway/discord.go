package gateway

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/MrSnakeDoc/slapp/internal/embed"
	"github.com/MrSnakeDoc/slapp/internal/logger"
	"github.com/MrSnakeDoc/slapp/internal/metrics"
	"github.com/MrSnakeDoc/slapp/internal/presenter"
	"github.com/MrSnakeDoc/slapp/internal/reactions"
)

// Message is an inbound chat message.
type Message struct {
	ChannelID string
	MessageID string
	AuthorID  string
	Content   string
}

type (
	MessageHandler  func(ctx context.Context, m Message)
	ReactionHandler func(ctx context.Context, ev presenter.ReactionEvent)
)

// Options configures the Discord gateway.
type Options struct {
	Token string
	// Rate and Burst bound outbound calls shared by every request.
	Rate  float64
	Burst int
}

// Discord is the messaging gateway backed by a discordgo session.
type Discord struct {
	session *discordgo.Session
	limiter *rate.Limiter
	logger  logger.Logger
	metrics *metrics.Metrics

	onMessage  MessageHandler
	onReaction ReactionHandler
	ctx        context.Context
}

func NewDiscord(opts Options, log logger.Logger, m *metrics.Metrics) (*Discord, error) {
	session, err := discordgo.New("Bot " + opts.Token)
	if err != nil {
		return nil, errors.Wrap(err, "create discord session")
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsDirectMessageReactions |
		discordgo.IntentsMessageContent

	return &Discord{
		session: session,
		limiter: newLimiter(opts.Rate, opts.Burst),
		logger:  log.With(logger.Component("gateway")),
		metrics: m,
		ctx:     context.Background(),
	}, nil
}

func newLimiter(r float64, burst int) *rate.Limiter {
	if r <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(r), burst)
}

// OnMessage sets the handler for inbound messages. Call before Open.
func (d *Discord) OnMessage(h MessageHandler) { d.onMessage = h }

// OnReaction sets the handler for reactions added by users. Call before Open.
func (d *Discord) OnReaction(h ReactionHandler) { d.onReaction = h }

// Open connects to the gateway. Handlers run on their own goroutine with ctx.
func (d *Discord) Open(ctx context.Context) error {
	d.ctx = ctx
	d.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		d.logger.Info("discord session ready",
			logger.String("user", r.User.Username),
			logger.Int("guilds", len(r.Guilds)))
	})
	d.session.AddHandler(d.handleMessage)
	d.session.AddHandler(d.handleReaction)

	if err := d.session.Open(); err != nil {
		return errors.Wrap(err, "open discord session")
	}
	return nil
}

// Close disconnects from the gateway.
func (d *Discord) Close() error {
	return d.session.Close()
}

func (d *Discord) selfID() string {
	if d.session.State == nil || d.session.State.User == nil {
		return ""
	}
	return d.session.State.User.ID
}

func (d *Discord) handleMessage(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if d.onMessage == nil || m.Author == nil || m.Author.Bot || m.Author.ID == d.selfID() {
		return
	}
	msg := Message{
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		AuthorID:  m.Author.ID,
		Content:   strings.TrimSpace(m.Content),
	}
	go d.onMessage(d.ctx, msg)
}

func (d *Discord) handleReaction(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if d.onReaction == nil {
		return
	}
	if r.UserID == d.selfID() {
		d.metrics.ObserveDrilldown("ignored")
		return
	}
	ev := presenter.ReactionEvent{
		ChannelID: r.ChannelID,
		MessageID: r.MessageID,
		UserID:    r.UserID,
		Symbol:    reactions.FromEmoji(r.Emoji.Name, r.Emoji.ID),
	}
	go d.onReaction(d.ctx, ev)
}

// SendPage posts a page and returns the new message id.
func (d *Discord) SendPage(ctx context.Context, channelID, replyTo string, page embed.Page) (string, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return "", errors.Wrap(err, "wait for send slot")
	}
	msg, err := d.session.ChannelMessageSendComplex(channelID, messageSend(channelID, replyTo, page), discordgo.WithContext(ctx))
	if err != nil {
		return "", errors.Wrapf(err, "send to channel %s", channelID)
	}
	return msg.ID, nil
}

// AddReaction adds a drill-down symbol to a sent message.
func (d *Discord) AddReaction(ctx context.Context, channelID, messageID string, s reactions.Symbol) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "wait for reaction slot")
	}
	if err := d.session.MessageReactionAdd(channelID, messageID, s.APIName(), discordgo.WithContext(ctx)); err != nil {
		return errors.Wrapf(err, "react to %s", messageID)
	}
	return nil
}

// SendText posts plain text, clipped to the message limit.
func (d *Discord) SendText(ctx context.Context, channelID, replyTo, text string) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "wait for send slot")
	}
	send := &discordgo.MessageSend{Content: embed.Truncate(text, embed.MessageTextLimit, embed.Ellipsis)}
	if replyTo != "" {
		send.Reference = &discordgo.MessageReference{MessageID: replyTo, ChannelID: channelID}
	}
	if _, err := d.session.ChannelMessageSendComplex(channelID, send, discordgo.WithContext(ctx)); err != nil {
		return errors.Wrapf(err, "send text to channel %s", channelID)
	}
	return nil
}
