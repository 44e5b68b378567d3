package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ngoachoi-cell/breaklistweb/internal/metrics"
	"github.com/ngoachoi-cell/breaklistweb/internal/models"
	"github.com/ngoachoi-cell/breaklistweb/internal/schedule"
	"github.com/ngoachoi-cell/breaklistweb/internal/store"
)

type BreaklistHandler struct {
	svc     *schedule.Service
	metrics *metrics.Metrics
}

func NewBreaklistHandler(svc *schedule.Service, m *metrics.Metrics) *BreaklistHandler {
	return &BreaklistHandler{svc: svc, metrics: m}
}

func (h *BreaklistHandler) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrCorruptState) {
		h.metrics.StoreError()
	}
	writeServiceError(w, err)
}

// View handles GET /breaklist
func (h *BreaklistHandler) View(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.View(r.Context())
	if errors.Is(err, schedule.ErrEmptySchedule) {
		h.metrics.ScheduleRows(0)
		redirect(w, r, "/upload")
		return
	}
	if err != nil {
		h.fail(w, err)
		return
	}
	h.metrics.ScheduleRows(len(view.Rows))
	writeJSON(w, http.StatusOK, view)
}

// Clear handles POST /breaklist/clear
func (h *BreaklistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearAll(r.Context()); err != nil {
		h.fail(w, err)
		return
	}
	redirect(w, r, "/upload")
}

// Sort handles POST /breaklist/sort
func (h *BreaklistHandler) Sort(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SortByStartTime(r.Context()); err != nil {
		h.fail(w, err)
		return
	}
	redirect(w, r, "/breaklist")
}

// Reorder handles POST /breaklist/reorder
func (h *BreaklistHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := h.svc.Reorder(r.Context(), req.OrderedIDs); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AddRow handles POST /breaklist/rows
func (h *BreaklistHandler) AddRow(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.AddRow(r.Context()); err != nil {
		h.fail(w, err)
		return
	}
	redirect(w, r, "/breaklist")
}

// UpdateRow handles PATCH /breaklist/rows/{id}
func (h *BreaklistHandler) UpdateRow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateRowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	row, err := h.svc.UpdateRow(r.Context(), id, req)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// DeleteRow handles DELETE /breaklist/rows/{id}
func (h *BreaklistHandler) DeleteRow(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteRow(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, err)
		return
	}
	redirect(w, r, "/breaklist")
}

// UpdateCell handles PUT /breaklist/cells
func (h *BreaklistHandler) UpdateCell(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCellRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.RowID == "" {
		writeError(w, http.StatusBadRequest, "rowId is required")
		return
	}
	if req.Slot < 0 {
		writeError(w, http.StatusBadRequest, "slot must not be negative")
		return
	}

	if err := h.svc.SetCell(r.Context(), req); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
