package webapi

import (
	"encoding/json"
	"net/http"

	"github.com/taskbox/taskbox/internal/logutil"
)

// JSON writes body with the given status. Encoding failures are logged
// rather than surfaced since the status line is already committed.
func JSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("Unable to encode response body")
	}
}

// Fail writes the {success:false, message} envelope every error
// response of the system uses.
func Fail(w http.ResponseWriter, r *http.Request, status int, message string) {
	JSON(w, r, status, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{false, message})
}

// Internal logs the actual fault and degrades it to a generic 500,
// no internal detail crosses the service boundary.
func Internal(w http.ResponseWriter, r *http.Request, err error) {
	logger := logutil.GetOrDefault(r.Context())
	logger.Error().Err(err).Msg("Unexpected error while handling request")
	Fail(w, r, http.StatusInternalServerError, "Internal server error")
}

// Decode parses a JSON request body into dst. Returns false after
// writing a 400 when the body is not valid JSON.
func Decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		Fail(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
