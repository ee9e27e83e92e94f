package api

import (
	"encoding/json"
	"net/http"
)

// writeJSON serialises v with the given status. Encoding failures
// after the header is written can only be logged by the caller's
// middleware; the connection is already committed.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
