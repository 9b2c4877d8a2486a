package inspect

import (
	"net/http"
	"strconv"

	"github.com/0xalexb/hjarta-config/config"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "hjarta"

// metrics is private to one handler so several handlers can coexist in a process.
type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
}

func newMetrics(cfg *config.Config) *metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{ //nolint:exhaustruct // only relevant fields needed
		Namespace: metricsNamespace,
		Subsystem: "inspect",
		Name:      "requests_total",
		Help:      "Requests served by the inspection listener, by route and status code.",
	}, []string{"route", "code"})

	entries := prometheus.NewGaugeFunc(prometheus.GaugeOpts{ //nolint:exhaustruct // only relevant fields needed
		Namespace: metricsNamespace,
		Name:      "config_entries",
		Help:      "Non-null leaves of the served configuration.",
	}, func() float64 {
		return float64(len(cfg.EntrySet()))
	})

	resolved := prometheus.NewGaugeFunc(prometheus.GaugeOpts{ //nolint:exhaustruct // only relevant fields needed
		Namespace: metricsNamespace,
		Name:      "config_resolved",
		Help:      "1 if the served configuration holds no substitutions, 0 otherwise.",
	}, func() float64 {
		if cfg.IsResolved() {
			return 1
		}

		return 0
	})

	registry.MustRegister(requests, entries, resolved)

	return &metrics{registry: registry, requests: requests}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}) //nolint:exhaustruct // defaults are fine
}

// instrument counts requests by matched route pattern, so paths of
// individual keys do not create new series.
func (m *metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w}

		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		if sw.status == 0 {
			sw.status = http.StatusOK
		}

		m.requests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
	})
}
