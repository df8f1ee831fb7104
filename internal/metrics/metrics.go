package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shortlinks"

const (
	SourceCache = "cache"
	SourceStore = "store"
)

// Metrics собирает счетчики сервиса. Методы безопасны для nil-получателя,
// чтобы сервисы можно было собирать без метрик в тестах.
type Metrics struct {
	registry *prometheus.Registry

	linksCreated  prometheus.Counter
	resolutions   *prometheus.CounterVec
	cacheErrors   *prometheus.CounterVec
	reaperRuns    *prometheus.CounterVec
	reaperDeleted prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		linksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "links_created_total",
			Help:      "Number of created short links.",
		}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "link_resolutions_total",
			Help:      "Successful short code resolutions by the source of the redirect target.",
		}, []string{"source"}),
		cacheErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_errors_total",
			Help:      "Resolution cache failures that were absorbed by falling back to the store.",
		}, []string{"op"}),
		reaperRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reaper_runs_total",
			Help:      "Reaper cycles by result.",
		}, []string{"result"}),
		reaperDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reaper_deleted_links_total",
			Help:      "Links removed by the reaper.",
		}),
	}

	m.registry.MustRegister(
		m.linksCreated,
		m.resolutions,
		m.cacheErrors,
		m.reaperRuns,
		m.reaperDeleted,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) LinkCreated() {
	if m == nil {
		return
	}
	m.linksCreated.Inc()
}

func (m *Metrics) LinkResolved(source string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(source).Inc()
}

func (m *Metrics) CacheError(op string) {
	if m == nil {
		return
	}
	m.cacheErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) ReaperRun(deleted int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.reaperRuns.WithLabelValues("error").Inc()
		return
	}
	m.reaperRuns.WithLabelValues("ok").Inc()
	m.reaperDeleted.Add(float64(deleted))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
