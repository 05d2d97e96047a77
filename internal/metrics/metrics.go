// Package metrics exposes allocation counters for the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder tracks allocation outcomes per pool.
type Recorder struct {
	registry  *prometheus.Registry
	bouquets  *prometheus.CounterVec
	remaining *prometheus.GaugeVec
	duration  prometheus.Histogram
	requests  *prometheus.CounterVec
}

// NewRecorder registers allocation metrics on a dedicated registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		bouquets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bouquets_allocated_total",
			Help: "Bouquets produced, by pool.",
		}, []string{"pool"}),
		remaining: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bouquet_flowers_remaining",
			Help: "Flowers left unallocated by the most recent run, by pool.",
		}, []string{"pool"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bouquet_allocation_duration_seconds",
			Help:    "Wall time of a full allocation run.",
			Buckets: prometheus.DefBuckets,
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bouquet_http_requests_total",
			Help: "HTTP requests served, by method and status code.",
		}, []string{"method", "code"}),
	}
	r.registry.MustRegister(r.bouquets, r.remaining, r.duration, r.requests)
	return r
}

// ObservePool records the outcome of one pool.
func (r *Recorder) ObservePool(pool string, bouquets, remaining int) {
	if r == nil {
		return
	}
	r.bouquets.WithLabelValues(pool).Add(float64(bouquets))
	r.remaining.WithLabelValues(pool).Set(float64(remaining))
}

// ObserveRun records the duration of one run.
func (r *Recorder) ObserveRun(elapsed time.Duration) {
	if r == nil {
		return
	}
	r.duration.Observe(elapsed.Seconds())
}

// ObserveRequest counts one served HTTP request.
func (r *Recorder) ObserveRequest(method string, status int) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
