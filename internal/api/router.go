package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/ngoachoi-cell/breaklistweb/internal/metrics"
	"github.com/ngoachoi-cell/breaklistweb/internal/schedule"
)

// NewRouter creates the Chi router with all routes and middleware.
// m may be nil, which disables /metrics.
func NewRouter(svc *schedule.Service, m *metrics.Metrics, maxUploadBytes int64, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))
	r.Use(m.Middleware)

	healthH := NewHealthHandler(svc)
	uploadH := NewUploadHandler(svc, m, maxUploadBytes)
	breaklistH := NewBreaklistHandler(svc, m)

	r.Get("/health", healthH.Health)
	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	r.Get("/upload", uploadH.Status)
	r.Post("/upload", uploadH.Upload)

	r.Route("/breaklist", func(r chi.Router) {
		r.Get("/", breaklistH.View)
		r.Post("/clear", breaklistH.Clear)
		r.Post("/sort", breaklistH.Sort)
		r.Post("/reorder", breaklistH.Reorder)
		r.Post("/rows", breaklistH.AddRow)
		r.Patch("/rows/{id}", breaklistH.UpdateRow)
		r.Delete("/rows/{id}", breaklistH.DeleteRow)
		r.Put("/cells", breaklistH.UpdateCell)
	})

	return r
}
