package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/slapp/internal/httpserver/deps"
	"github.com/MrSnakeDoc/slapp/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/slapp/internal/httpserver/mw"
)

func init() { Register(registerPreview) }

func registerPreview(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Rate:       d.PreviewRate,
		Burst:      d.PreviewBurst,
		MaxEntries: 4096,
		TrustProxy: d.TrustProxy,
		OnLimited:  d.Metrics.IncRateLimited,
	})
	r.With(limit).Get("/api/preview", handlers.Preview(d))
}
