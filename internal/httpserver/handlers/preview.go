package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/slapp/internal/embed"
	"github.com/MrSnakeDoc/slapp/internal/httpserver/deps"
	"github.com/MrSnakeDoc/slapp/internal/logger"
)

type previewResponse struct {
	Query   string       `json:"query"`
	Pages   []embed.Page `json:"pages"`
	Symbols []string     `json:"symbols,omitempty"`
	Dropped int          `json:"dropped,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Preview renders a query the way the bot would answer it. Nothing is sent
// and no reaction index is stored.
func Preview(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		players, teams, q := d.Searcher.Search(r.Context(), query)
		if q.Text == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing query parameter q"})
			return
		}

		res, err := d.Presenter.Present(players, teams)
		if err != nil {
			d.Logger.Error("preview failed",
				logger.String("query", query),
				logger.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to render result"})
			return
		}

		out := previewResponse{Query: query, Pages: res.Pages, Dropped: res.Dropped}
		for _, s := range res.Reactions.Symbols() {
			out.Symbols = append(out.Symbols, string(s))
		}
		writeJSON(w, http.StatusOK, out)
	}
}
