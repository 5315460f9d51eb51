package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_http_requests_total",
			Help: "Total number of HTTP requests by method, route, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_http_requests_in_flight",
		Help: "Current number of HTTP requests being processed.",
	})
)

// MachineCounter is the subset of the machine repository needed to collect
// inventory metrics.
type MachineCounter interface {
	CountByCategory(ctx context.Context) (map[string]int, error)
}

// machineCollector queries the database on each scrape to report machine
// counts broken down by category.
type machineCollector struct {
	repo         MachineCounter
	machinesDesc *prometheus.Desc
}

func (c *machineCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.machinesDesc
}

func (c *machineCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.repo.CountByCategory(context.Background())
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.machinesDesc, err)
		return
	}
	for category, n := range counts {
		ch <- prometheus.MustNewConstMetric(
			c.machinesDesc,
			prometheus.GaugeValue,
			float64(n),
			category,
		)
	}
}

// Register registers all metrics with the default Prometheus registry.
// Call once at startup after the database is initialised.
func Register(repo MachineCounter) {
	prometheus.MustRegister(
		// Standard Go runtime and process metrics
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),

		// HTTP service metrics
		httpRequestsTotal,
		httpRequestDuration,
		httpRequestsInFlight,

		// Application metrics
		&machineCollector{
			repo: repo,
			machinesDesc: prometheus.NewDesc(
				"inventory_machines_total",
				"Number of machines tracked, partitioned by category.",
				[]string{"category"},
				nil,
			),
		},
	)
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// responseWriter wraps http.ResponseWriter to capture the response status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records HTTP metrics for each request. The path label uses the
// chi route pattern (e.g. "/api/machines/{id}") so cardinality stays bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			httpRequestsInFlight.Dec()
			pattern := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				pattern = rctx.RoutePattern()
			}
			status := strconv.Itoa(rw.status)
			httpRequestsTotal.WithLabelValues(r.Method, pattern, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
		}()

		next.ServeHTTP(rw, r)
	})
}
