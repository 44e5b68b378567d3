package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ngoachoi-cell/breaklistweb/internal/report"
	"github.com/ngoachoi-cell/breaklistweb/internal/schedule"
	"github.com/ngoachoi-cell/breaklistweb/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// writeServiceError maps schedule, report and store errors onto status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	var rej *report.RejectionError
	switch {
	case errors.As(err, &rej):
		writeError(w, http.StatusUnprocessableEntity, rej.Message)
	case errors.Is(err, schedule.ErrRowNotFound):
		writeError(w, http.StatusNotFound, "row not found")
	case errors.Is(err, store.ErrCorruptState):
		writeError(w, http.StatusInternalServerError, "stored schedule is unreadable; clear the breaklist to start over")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
