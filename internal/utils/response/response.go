// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler sends JSON back to the client. Error responses always
// have the same envelope:
//
//	{ "status": "error", "error": "record 0: field name is required" }
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aanand-mishra/record-store/internal/codec"
	"github.com/aanand-mishra/record-store/internal/storage"
)

// Response is the standard envelope returned for error cases.
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Error  string `json:"error"`  // human-readable error detail
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ─────────────────────────────────────────────────────────────────────────────
// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// Order matters: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
// ─────────────────────────────────────────────────────────────────────────────
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into the standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// StatusFor picks the HTTP status code for an error returned by the
// record store:
//
//	*codec.ValidationError             → 400 Bad Request (caller sent bad records)
//	*storage.StorageError{PathNotFound} → 404 Not Found
//	*codec.DecodeError                  → 500 (the stored data is corrupt)
//	anything else                       → 500 Internal Server Error
//
// Errors from decoding a request body are the client's fault and are
// written with 400 by the handlers directly.
// ─────────────────────────────────────────────────────────────────────────────
func StatusFor(err error) int {
	var decodeErr *codec.DecodeError
	var validationErr *codec.ValidationError
	switch {
	case errors.As(err, &decodeErr):
		return http.StatusInternalServerError
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrPathNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// WriteError writes err with the status chosen by StatusFor.
func WriteError(w http.ResponseWriter, err error) error {
	return WriteJSON(w, StatusFor(err), GeneralError(err))
}
