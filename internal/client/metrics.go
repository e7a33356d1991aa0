package client

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Call outcomes used as the "outcome" label.
const (
	outcomeOK           = "ok"
	outcomeBusiness     = "business_error"
	outcomeUnauthorized = "unauthorized"
	outcomeHTTPError    = "http_error"
	outcomeTransport    = "transport_error"
	outcomeMalformed    = "malformed"
)

type metrics struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Subsystem: "api",
				Name:      "calls_total",
				Help:      "Backend API calls by method, path and outcome.",
			},
			[]string{"method", "path", "outcome"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "storefront",
				Subsystem: "api",
				Name:      "call_duration_seconds",
				Help:      "Backend API call latency.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"method", "path"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "storefront",
				Subsystem: "api",
				Name:      "inflight_calls",
				Help:      "Backend API calls currently in flight.",
			},
		),
	}
	m.registry.MustRegister(m.calls, m.latency, m.inFlight)
	return m
}

func (m *metrics) record(method, path, outcome string, d time.Duration) {
	p := canonicalPath(path)
	m.calls.WithLabelValues(method, p, outcome).Inc()
	m.latency.WithLabelValues(method, p).Observe(d.Seconds())
}

// MetricsHandler exposes the client's metrics in the Prometheus text format.
func (c *Client) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(c.metrics.registry, promhttp.HandlerOpts{})
}

// Metrics returns the registry holding the client's collectors.
func (c *Client) Metrics() *prometheus.Registry {
	return c.metrics.registry
}

// canonicalPath replaces numeric path segments so ids do not explode label
// cardinality: /api/v1/orders/12/cancel -> /api/v1/orders/:id/cancel.
func canonicalPath(raw string) string {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	parts := strings.Split(raw, "/")
	for i, p := range parts {
		if p != "" && isDigits(p) {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
