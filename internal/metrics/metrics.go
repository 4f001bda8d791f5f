// Package metrics exposes HTTP and database counters on a private Prometheus
// registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "restaurant_api"

type Recorder struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	dbQueries    *prometheus.CounterVec
	dbDuration   *prometheus.HistogramVec
}

// New creates a Recorder with Go runtime and process collectors attached.
func New() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Recorder{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		dbQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_executions_total",
			Help:      "Database executions by operation, target and outcome.",
		}, []string{"op", "target", "outcome"}),
		dbDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_execution_duration_seconds",
			Help:      "Database execution latency by operation and target.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "target"}),
	}

	registry.MustRegister(r.httpRequests)
	registry.MustRegister(r.httpDuration)
	registry.MustRegister(r.dbQueries)
	registry.MustRegister(r.dbDuration)

	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveQuery satisfies db.Observer.
func (r *Recorder) ObserveQuery(op, target, outcome string, elapsed time.Duration) {
	r.dbQueries.WithLabelValues(op, target, outcome).Inc()
	r.dbDuration.WithLabelValues(op, target).Observe(elapsed.Seconds())
}
