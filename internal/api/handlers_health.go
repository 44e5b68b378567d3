package api

import (
	"net/http"

	"github.com/ngoachoi-cell/breaklistweb/internal/models"
	"github.com/ngoachoi-cell/breaklistweb/internal/schedule"
)

type HealthHandler struct {
	svc *schedule.Service
}

func NewHealthHandler(svc *schedule.Service) *HealthHandler {
	return &HealthHandler{svc: svc}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status: "ok",
	}

	// Check the state store
	status, err := h.svc.Status(r.Context())
	if err != nil {
		resp.Store = models.ServiceCheck{Status: "error", Message: err.Error()}
		resp.Status = "degraded"
	} else {
		resp.Store = models.ServiceCheck{Status: "ok"}
		resp.RowCount = status.RowCount
	}

	code := http.StatusOK
	if resp.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}
