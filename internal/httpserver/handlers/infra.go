package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/slapp/internal/httpserver/deps"
	redisstore "github.com/MrSnakeDoc/slapp/internal/store/redis"
)

type componentStatus struct {
	OK         bool                    `json:"ok"`
	Players    *int                    `json:"players,omitempty"`
	Teams      *int                    `json:"teams,omitempty"`
	Sources    *int                    `json:"sources,omitempty"`
	LastReload string                  `json:"last_reload,omitempty"`
	Entities   *int64                  `json:"entities,omitempty"`
	TopQueries []redisstore.QueryCount `json:"top_queries,omitempty"`
	Size       *int                    `json:"size,omitempty"`
	Capacity   *int                    `json:"capacity,omitempty"`
	Mode       string                  `json:"mode,omitempty"`
	Impact     string                  `json:"impact,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

const topQueries = 5

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"roster": rosterStatus(d),
			"redis":  checkRedis(r.Context(), d),
		}
		if d.Presenter != nil {
			cache := d.Presenter.Cache()
			size, capacity := cache.Len(), cache.Capacity()
			components["reactions"] = componentStatus{OK: true, Size: &size, Capacity: &capacity}
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func rosterStatus(d deps.Deps) componentStatus {
	players, teams, sources := d.MemoryIndex.Counts()
	lastReload := d.MemoryIndex.GetLastReload()
	lastReloadStr := "never"
	if !lastReload.IsZero() {
		lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
	}
	return componentStatus{
		OK:         players+teams > 0,
		Players:    &players,
		Teams:      &teams,
		Sources:    &sources,
		LastReload: lastReloadStr,
	}
}

func determineMode(components map[string]componentStatus) string {
	if roster, exists := components["roster"]; exists && !roster.OK {
		return "critical" // nothing to answer with
	}
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded" // no query cache, no snapshot fallback
	}
	return "full"
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "query-cache-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "query-cache-disabled",
			Error:  "timeout",
		}
	}

	status := componentStatus{OK: true, Mode: "optimal", Impact: "query-cache-enabled"}
	if n, err := d.Store.CountEntities(ctx); err == nil {
		status.Entities = &n
	}
	if top, err := d.Store.TopQueries(ctx, topQueries); err == nil {
		status.TopQueries = top
	}
	return status
}
