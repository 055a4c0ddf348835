package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "slapp"

// Metrics bundles the Prometheus collectors of the bot. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	pages           *prometheus.CounterVec
	reactions       *prometheus.CounterVec
	drilldowns      *prometheus.CounterVec
	queries         *prometheus.CounterVec
	reloads         *prometheus.CounterVec
	cacheEvictions  prometheus.Counter
	cacheSize       prometheus.Gauge
	droppedFields   prometheus.Counter
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rateLimited     prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_total",
			Help:      "Result pages handed to the gateway",
		}, []string{"result"}),
		reactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reactions_total",
			Help:      "Drill-down reactions added to sent messages",
		}, []string{"result"}),
		drilldowns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drilldowns_total",
			Help:      "Reaction events received, by outcome",
		}, []string{"outcome"}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Roster queries answered, by kind of result",
		}, []string{"result"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "roster_reloads_total",
			Help:      "Roster reloads, by result",
		}, []string{"result"}),
		cacheEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reaction_cache_evictions_total",
			Help:      "Messages evicted from the reaction cache",
		}),
		cacheSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reaction_cache_size",
			Help:      "Messages currently tracked by the reaction cache",
		}),
		droppedFields: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_fields_total",
			Help:      "Fields dropped by the page cap",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests received",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Histogram of HTTP request durations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_rate_limited_total",
			Help:      "HTTP requests rejected by the rate limiter",
		}),
	}

	registry.MustRegister(
		m.pages,
		m.reactions,
		m.drilldowns,
		m.queries,
		m.reloads,
		m.cacheEvictions,
		m.cacheSize,
		m.droppedFields,
		m.requestsTotal,
		m.requestDuration,
		m.rateLimited,
	)

	return m
}

// Handler returns an HTTP handler exposing the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

// ObservePage records one page send attempt.
func (m *Metrics) ObservePage(ok bool) {
	if m == nil {
		return
	}
	m.pages.WithLabelValues(result(ok)).Inc()
}

// ObserveReaction records one add-reaction attempt.
func (m *Metrics) ObserveReaction(ok bool) {
	if m == nil {
		return
	}
	m.reactions.WithLabelValues(result(ok)).Inc()
}

// ObserveDrilldown records a reaction event: "consumed", "discarded" or "ignored".
func (m *Metrics) ObserveDrilldown(outcome string) {
	if m == nil {
		return
	}
	m.drilldowns.WithLabelValues(outcome).Inc()
}

// ObserveQuery records the shape of a query result: "none", "players", "teams" or "mixed".
func (m *Metrics) ObserveQuery(kind string) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(kind).Inc()
}

// ObserveReload records a roster reload.
func (m *Metrics) ObserveReload(ok bool) {
	if m == nil {
		return
	}
	m.reloads.WithLabelValues(result(ok)).Inc()
}

// ObserveEviction counts a message pushed out of the reaction cache.
func (m *Metrics) ObserveEviction() {
	if m == nil {
		return
	}
	m.cacheEvictions.Inc()
}

// SetCacheSize reports how many messages the reaction cache holds.
func (m *Metrics) SetCacheSize(n int) {
	if m == nil {
		return
	}
	m.cacheSize.Set(float64(n))
}

// AddDroppedFields counts fields lost to the page cap.
func (m *Metrics) AddDroppedFields(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.droppedFields.Add(float64(n))
}

// ObserveRequest records timing and status information.
func (m *Metrics) ObserveRequest(route, method string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(dur.Seconds())
}

// IncRateLimited increments the rate limit counter.
func (m *Metrics) IncRateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}
