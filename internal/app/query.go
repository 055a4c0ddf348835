package app

import (
	"context"
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/MrSnakeDoc/slapp/internal/bot"
	"github.com/MrSnakeDoc/slapp/internal/config"
	"github.com/MrSnakeDoc/slapp/internal/embed"
	"github.com/MrSnakeDoc/slapp/internal/index"
	"github.com/MrSnakeDoc/slapp/internal/logger"
	"github.com/MrSnakeDoc/slapp/internal/presenter"
	"github.com/MrSnakeDoc/slapp/internal/sources/roster"
)

// QueryOutput is what the query command prints.
type QueryOutput struct {
	Query   string       `json:"query"`
	Players int          `json:"players"`
	Teams   int          `json:"teams"`
	Pages   []embed.Page `json:"pages"`
	Dropped int          `json:"dropped,omitempty"`
}

// Query answers text from the roster file alone, without Redis or a chat
// connection, and writes the pages the bot would send to w as JSON.
func Query(ctx context.Context, cfg *config.Config, text string, w io.Writer) error {
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)

	f, err := roster.NewLoader(cfg.RosterFile).Load()
	if err != nil {
		return err
	}
	snap, err := roster.NewMapper().Map(f)
	if err != nil {
		return errors.Wrap(err, "map roster")
	}
	idx := index.NewMemoryIndex()
	idx.Update(snap)

	players, teams, q := bot.NewSearcher(idx, nil, 0, log).Search(ctx, text)
	if q.Text == "" {
		return errors.New("empty query")
	}

	res, err := presenter.New(idx, nil, nil, log, nil, presenter.Options{
		MaxResults:    cfg.MaxResults,
		CommandPrefix: cfg.CommandPrefix,
	}).Present(players, teams)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(QueryOutput{
		Query:   text,
		Players: len(players),
		Teams:   len(teams),
		Pages:   res.Pages,
		Dropped: res.Dropped,
	})
}
