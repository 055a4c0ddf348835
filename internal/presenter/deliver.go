package presenter

import (
	"context"

	"github.com/pkg/errors"

	"github.com/MrSnakeDoc/slapp/internal/domain"
	"github.com/MrSnakeDoc/slapp/internal/embed"
	"github.com/MrSnakeDoc/slapp/internal/logger"
	"github.com/MrSnakeDoc/slapp/internal/reactions"
)

// ErrNoGateway is reported when delivering through a render-only presenter.
var ErrNoGateway = errors.New("no messaging gateway configured")

// Gateway is the messaging platform as the presenter sees it.
type Gateway interface {
	// SendPage posts page to channelID, as a reply to replyTo when set,
	// and returns the new message id.
	SendPage(ctx context.Context, channelID, replyTo string, page embed.Page) (string, error)
	AddReaction(ctx context.Context, channelID, messageID string, s reactions.Symbol) error
}

// Delivery reports what happened to each page and reaction of a Result.
type Delivery struct {
	MessageIDs     []string
	PageErrors     []error
	ReactionErrors []error
	// Tracked is the message whose reactions drive drill-down, empty when none.
	Tracked string
	Evicted string
}

// Err joins every failure, nil when everything went through.
func (d *Delivery) Err() error {
	errs := append(append([]error(nil), d.PageErrors...), d.ReactionErrors...)
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return errors.Errorf("%d delivery failures, first: %v", len(errs), errs[0])
	}
}

// Deliver sends the pages in order, then publishes the result's reaction
// index under the last sent message and adds its symbols there. A failed
// page or reaction is logged and skipped; the others still go out.
func (p *Presenter) Deliver(ctx context.Context, channelID, replyTo string, res *Result) *Delivery {
	d := &Delivery{}
	if p.gateway == nil {
		d.PageErrors = append(d.PageErrors, ErrNoGateway)
		return d
	}

	last := ""
	for _, page := range res.Pages {
		id, err := p.gateway.SendPage(ctx, channelID, replyTo, page)
		p.metrics.ObservePage(err == nil)
		if err != nil {
			err = errors.Wrapf(err, "send page %d", page.Number)
			p.log.Warn("page not sent",
				logger.String("channel", channelID),
				logger.Int("page", page.Number),
				logger.Error(err))
			d.PageErrors = append(d.PageErrors, err)
			continue
		}
		d.MessageIDs = append(d.MessageIDs, id)
		last = id
	}

	if last == "" || res.Reactions == nil || res.Reactions.Len() == 0 {
		return d
	}

	symbols := res.Reactions.Symbols()
	d.Tracked = last
	if evicted, ok := p.cache.Store(last, res.Reactions); ok {
		d.Evicted = evicted
		p.metrics.ObserveEviction()
		p.log.Debug("reaction index evicted", logger.String("message", evicted))
	}
	p.metrics.SetCacheSize(p.cache.Len())

	for _, s := range symbols {
		err := p.gateway.AddReaction(ctx, channelID, last, s)
		p.metrics.ObserveReaction(err == nil)
		if err != nil {
			err = errors.Wrapf(err, "add reaction %s", s)
			p.log.Warn("reaction not added",
				logger.String("channel", channelID),
				logger.String("message", last),
				logger.Error(err))
			d.ReactionErrors = append(d.ReactionErrors, err)
		}
	}
	return d
}

// ReactionEvent is a user clicking a symbol on a sent message.
type ReactionEvent struct {
	ChannelID string
	MessageID string
	UserID    string
	Symbol    reactions.Symbol
}

// HandleReaction expands the entity behind a clicked symbol into its own
// answer, sent as a reply to the reacted message. Each symbol expands once;
// unknown, consumed or evicted symbols are discarded and return nil.
func (p *Presenter) HandleReaction(ctx context.Context, ev ReactionEvent) (*Delivery, error) {
	e, ok := p.cache.Consume(ev.MessageID, ev.Symbol)
	p.metrics.SetCacheSize(p.cache.Len())
	if !ok {
		p.metrics.ObserveDrilldown("discarded")
		p.log.Debug("discarding reaction",
			logger.String("message", ev.MessageID),
			logger.String("symbol", string(ev.Symbol)))
		return nil, nil
	}
	p.metrics.ObserveDrilldown("consumed")
	p.log.Info("reaction matched",
		logger.String("message", ev.MessageID),
		logger.String("user", ev.UserID),
		logger.String("entity", entityLabel(e)))

	res, err := p.PresentEntity(e)
	if err != nil {
		return nil, err
	}
	return p.Deliver(ctx, ev.ChannelID, ev.MessageID, res), nil
}

func entityLabel(e domain.Entity) string {
	return e.Kind().String() + ":" + e.EntityID().String()
}
