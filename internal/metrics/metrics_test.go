package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObservePage(true)
	m.ObserveReaction(false)
	m.ObserveDrilldown("consumed")
	m.ObserveQuery("players")
	m.ObserveReload(true)
	m.ObserveEviction()
	m.SetCacheSize(3)
	m.AddDroppedFields(4)
	m.ObserveRequest("/healthz", http.MethodGet, http.StatusOK, time.Millisecond)
	m.IncRateLimited()
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObservePage(true)
	m.ObservePage(false)
	m.ObserveDrilldown("discarded")
	m.SetCacheSize(7)
	m.AddDroppedFields(2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`slapp_pages_total{result="ok"} 1`,
		`slapp_pages_total{result="error"} 1`,
		`slapp_drilldowns_total{outcome="discarded"} 1`,
		`slapp_reaction_cache_size 7`,
		`slapp_dropped_fields_total 2`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
