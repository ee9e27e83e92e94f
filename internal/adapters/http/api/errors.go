package api

import (
	"errors"
	"net/http"

	"github.com/okian/rivers/internal/app"
)

// statusClientClosedRequest is the de-facto status for cancelled
// requests.
const statusClientClosedRequest = 499

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeEngineError maps the engine's boundary errors onto HTTP
// statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrUnknownTeam):
		writeJSONError(w, http.StatusNotFound, err.Error(), "unknown_team")
	case errors.Is(err, app.ErrNotReady):
		writeJSONError(w, http.StatusServiceUnavailable, err.Error(), "not_ready")
	case errors.Is(err, app.ErrCancelled):
		writeJSONError(w, statusClientClosedRequest, err.Error(), "cancelled")
	case errors.Is(err, app.ErrDataCorruption):
		writeJSONError(w, http.StatusInternalServerError, err.Error(), "data_corruption")
	default:
		writeJSONError(w, http.StatusInternalServerError, "internal error", "internal")
	}
}

// writeError writes a plain JSON error without an engine code.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSONError(w, status, msg, "")
}

func writeJSONError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}
