package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Import outcomes.
const (
	ImportOK       = "ok"
	ImportRejected = "rejected"
	ImportFailed   = "error"
)

// Metrics owns a private registry so several instances can coexist in tests.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	imports           *prometheus.CounterVec
	importedRows      prometheus.Counter
	scheduleRows      prometheus.Gauge
	storeErrors       prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "breaklist_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "breaklist_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "breaklist_imports_total",
			Help: "Spreadsheet uploads by outcome.",
		}, []string{"outcome"}),
		importedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "breaklist_imported_rows_total",
			Help: "Rows added by spreadsheet uploads.",
		}),
		scheduleRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "breaklist_schedule_rows",
			Help: "Rows on the schedule after the last import or view.",
		}),
		storeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "breaklist_store_errors_total",
			Help: "Operations that failed to load or save the schedule state.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpDuration,
		m.imports,
		m.importedRows,
		m.scheduleRows,
		m.storeErrors,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Middleware records request counts and durations labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Import(outcome string, rows int) {
	if m == nil {
		return
	}
	m.imports.WithLabelValues(outcome).Inc()
	if rows > 0 {
		m.importedRows.Add(float64(rows))
	}
}

func (m *Metrics) ScheduleRows(n int) {
	if m == nil {
		return
	}
	m.scheduleRows.Set(float64(n))
}

func (m *Metrics) StoreError() {
	if m == nil {
		return
	}
	m.storeErrors.Inc()
}
