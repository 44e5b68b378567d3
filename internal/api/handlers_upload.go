package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ngoachoi-cell/breaklistweb/internal/metrics"
	"github.com/ngoachoi-cell/breaklistweb/internal/report"
	"github.com/ngoachoi-cell/breaklistweb/internal/schedule"
)

// multipartMemory is how much of an upload ParseMultipartForm keeps in memory.
const multipartMemory = 8 << 20

type UploadHandler struct {
	svc      *schedule.Service
	metrics  *metrics.Metrics
	maxBytes int64
}

func NewUploadHandler(svc *schedule.Service, m *metrics.Metrics, maxBytes int64) *UploadHandler {
	return &UploadHandler{svc: svc, metrics: m, maxBytes: maxBytes}
}

// Status handles GET /upload
func (h *UploadHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.Status(r.Context())
	if err != nil {
		h.metrics.StoreError()
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// Upload handles POST /upload with a multipart "file" field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if tooLarge(err) {
			h.metrics.Import(metrics.ImportRejected, 0)
			writeError(w, http.StatusRequestEntityTooLarge, "file is too large")
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			writeError(w, http.StatusBadRequest, "invalid upload: "+err.Error())
			return
		}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.metrics.Import(metrics.ImportRejected, 0)
		writeError(w, http.StatusUnprocessableEntity, report.MsgNoFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		if tooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "file is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "read upload: "+err.Error())
		return
	}

	res, err := h.svc.Import(r.Context(), data, header.Filename)
	if err != nil {
		var rej *report.RejectionError
		if errors.As(err, &rej) {
			h.metrics.Import(metrics.ImportRejected, 0)
		} else {
			h.metrics.Import(metrics.ImportFailed, 0)
			h.metrics.StoreError()
		}
		writeServiceError(w, err)
		return
	}

	h.metrics.Import(metrics.ImportOK, res.Imported)
	h.metrics.ScheduleRows(res.RowCount)
	redirect(w, r, "/breaklist")
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}
