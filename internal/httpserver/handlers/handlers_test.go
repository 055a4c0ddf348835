package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/slapp/internal/bot"
	"github.com/MrSnakeDoc/slapp/internal/domain"
	"github.com/MrSnakeDoc/slapp/internal/httpserver/deps"
	"github.com/MrSnakeDoc/slapp/internal/index"
	"github.com/MrSnakeDoc/slapp/internal/logger"
	"github.com/MrSnakeDoc/slapp/internal/presenter"
	"github.com/MrSnakeDoc/slapp/internal/sources/roster"
)

func newDeps(loaded bool) deps.Deps {
	log := logger.New("error", false)
	idx := index.NewMemoryIndex()
	if loaded {
		team := &domain.Team{ID: uuid.New(), Names: []string{"Kraken Paradise"}}
		idx.Update(&roster.Snapshot{
			Players: []*domain.Player{
				{ID: uuid.New(), Names: []string{"Slate"}},
				{ID: uuid.New(), Names: []string{"Slater"}},
			},
			Teams: []*domain.Team{team},
		})
	}
	return deps.Deps{
		Logger:        log,
		StartTime:     time.Now().Add(-time.Minute),
		Version:       "v1.2.3",
		MemoryIndex:   idx,
		Presenter:     presenter.New(idx, nil, nil, log, nil, presenter.Options{CommandPrefix: "!"}),
		Searcher:      bot.NewSearcher(idx, nil, 0, log),
		ReloadTrigger: make(chan struct{}, 1),
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	Healthz(newDeps(false))(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode[healthzResponse](t, rec)
	if body.Status != "ok" || body.Version != "v1.2.3" || body.UptimeSeconds < 60 {
		t.Errorf("body = %+v", body)
	}
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name   string
		loaded bool
		want   int
	}{
		{name: "before first load", loaded: false, want: http.StatusServiceUnavailable},
		{name: "roster loaded", loaded: true, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Readyz(newDeps(tt.loaded))(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if body := decode[readyzResponse](t, rec); body.Ready != tt.loaded {
				t.Errorf("ready = %v", body.Ready)
			}
		})
	}
}

func TestReload(t *testing.T) {
	d := newDeps(true)
	h := Reload(d)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/reload", nil))
	if rec.Code != http.StatusAccepted {
		t.Errorf("first reload status = %d", rec.Code)
	}

	// The trigger is still pending, so the second call is refused.
	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/reload", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second reload status = %d", rec.Code)
	}

	<-d.ReloadTrigger
	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/reload", nil))
	if rec.Code != http.StatusAccepted {
		t.Errorf("reload after drain status = %d", rec.Code)
	}
}

func TestInfra(t *testing.T) {
	tests := []struct {
		name   string
		loaded bool
		mode   string
	}{
		{name: "empty roster", loaded: false, mode: "critical"},
		{name: "no redis", loaded: true, mode: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Infra(newDeps(tt.loaded))(rec, httptest.NewRequest(http.MethodGet, "/infra", nil))

			body := decode[infraResponse](t, rec)
			if body.Mode != tt.mode {
				t.Errorf("mode = %q, want %q", body.Mode, tt.mode)
			}
			if body.Components["redis"].Mode != "disabled" {
				t.Errorf("redis = %+v", body.Components["redis"])
			}
			reactions := body.Components["reactions"]
			if reactions.Capacity == nil || *reactions.Capacity != 50 {
				t.Errorf("reactions = %+v", reactions)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	d := newDeps(true)

	rec := httptest.NewRecorder()
	Preview(d)(rec, httptest.NewRequest(http.MethodGet, "/api/preview?q=slate", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	body := decode[previewResponse](t, rec)
	if len(body.Pages) != 1 || body.Pages[0].Author != "Found 2 players!" {
		t.Errorf("pages = %+v", body.Pages)
	}
	if len(body.Symbols) != 2 {
		t.Errorf("symbols = %v", body.Symbols)
	}
	if d.Presenter.Cache().Len() != 0 {
		t.Error("preview must not store reaction indexes")
	}
}

func TestPreviewMissingQuery(t *testing.T) {
	for _, target := range []string{"/api/preview", "/api/preview?q=", "/api/preview?q=--teams"} {
		rec := httptest.NewRecorder()
		Preview(newDeps(true))(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", target, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "missing query") {
			t.Errorf("%s: body = %s", target, rec.Body)
		}
	}
}
