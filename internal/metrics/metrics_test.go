package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/rows/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/rows/"+id, nil))
	}

	if got := testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("/rows/{id}", "404")); got != 2 {
		t.Fatalf("requests = %v, want 2", got)
	}
}

func TestImportCounters(t *testing.T) {
	m := New()
	m.Import(ImportOK, 3)
	m.Import(ImportOK, 2)
	m.Import(ImportRejected, 0)
	m.ScheduleRows(5)

	if got := testutil.ToFloat64(m.imports.WithLabelValues(ImportOK)); got != 2 {
		t.Fatalf("ok imports = %v", got)
	}
	if got := testutil.ToFloat64(m.importedRows); got != 5 {
		t.Fatalf("imported rows = %v", got)
	}
	if got := testutil.ToFloat64(m.scheduleRows); got != 5 {
		t.Fatalf("schedule rows = %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.StoreError()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "breaklist_store_errors_total 1") {
		t.Fatalf("metrics output missing store errors:\n%s", body)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Import(ImportOK, 1)
	m.ScheduleRows(1)
	m.StoreError()
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}
