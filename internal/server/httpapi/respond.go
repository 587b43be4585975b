package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/lendkeeper/internal/common"
)

// envelope is the uniform response body: Data is set on success, Errors on
// failure. Message is always present.
type envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		// Best effort: the client may already be gone.
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeSuccess writes the success envelope with the given payload.
func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

// statusForError maps an error kind to an HTTP status. OutOfStock wraps
// Conflict, so it lands on 409 through the Conflict case.
func statusForError(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes the failure envelope. The error text is exposed only for
// client-caused kinds; internal failures get a generic message.
func writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}

	writeJSON(w, status, envelope{Success: false, Message: message, Errors: []string{message}})
}

// writeErrorMessage writes the failure envelope with an explicit status and
// message, for boundary-level failures that carry no service error.
func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message, Errors: []string{message}})
}
