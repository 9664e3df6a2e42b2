package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goganux/texas-career-path-explorer/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the Prometheus registry served on /metrics.
type Metrics struct {
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	selections *prometheus.CounterVec
	resets     *prometheus.CounterVec
	fallbacks  prometheus.Counter
	toggles    *prometheus.CounterVec
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathways_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"method", "route", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pathways_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		selections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathways_selections_total",
				Help: "Explorer selections by outcome",
			},
			[]string{"outcome"},
		),
		resets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathways_highlight_resets_total",
				Help: "Highlight resets by reason",
			},
			[]string{"reason"},
		),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pathways_title_fallback_matches_total",
			Help: "Prerequisites matched only by title text",
		}),
		toggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathways_filter_toggles_total",
				Help: "Status filter toggles by status and resulting state",
			},
			[]string{"status", "active"},
		),
	}
	m.registry.MustRegister(m.requests, m.duration, m.selections, m.resets, m.fallbacks, m.toggles)
	return m
}

// Registry exposes the registry so callers can add their own collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns engine hooks that record selection activity.
// Pass them to session.WithHooks.
func (m *Metrics) Hooks() domain.EngineHooks {
	return domain.EngineHooks{
		OnHighlight: func(e *domain.HighlightEvent) {
			outcome := "highlighted"
			if e.Unknown {
				outcome = "unknown"
			}
			m.selections.WithLabelValues(outcome).Inc()
		},
		OnReset: func(e *domain.ResetEvent) {
			m.resets.WithLabelValues(e.Reason).Inc()
		},
		OnDetail: func(*domain.DetailEvent) {
			m.selections.WithLabelValues("detail").Inc()
		},
		OnTitleFallback: func(*domain.TitleFallbackEvent) {
			m.fallbacks.Inc()
		},
	}
}

func (m *Metrics) recordToggle(status domain.Status, active bool) {
	m.toggles.WithLabelValues(string(status), strconv.FormatBool(active)).Inc()
}

// instrument records count and latency per chi route pattern.
func (m *Metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
