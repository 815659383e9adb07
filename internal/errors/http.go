// Package errors provides the JSON error envelope used by router-level
// failures (not found, method not allowed, panics, rate limits).
//
// The two spreadsheet endpoints use their own {success,...} envelope;
// that shape is an external contract and lives with the handlers.
package errors

import (
	"encoding/json"
	"net/http"

	fulmenerrors "github.com/fulmenhq/gofulmen/errors"
)

// HTTPErrorResponse is the wire shape of a router-level error.
type HTTPErrorResponse struct {
	Error HTTPErrorDetail `json:"error"`
}

// HTTPErrorDetail carries the error envelope fields.
type HTTPErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// WriteEnvelope serializes an error envelope with the given status.
func WriteEnvelope(w http.ResponseWriter, envelope *fulmenerrors.ErrorEnvelope, statusCode int) {
	resp := HTTPErrorResponse{
		Error: HTTPErrorDetail{
			Code:      envelope.Code,
			Message:   envelope.Message,
			Details:   envelope.Context,
			RequestID: envelope.CorrelationID,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		// Headers are already out; nothing useful left to do.
		return
	}
}

// Write builds and serializes an envelope in one step.
func Write(w http.ResponseWriter, statusCode int, code, message string) {
	WriteEnvelope(w, fulmenerrors.NewErrorEnvelope(code, message), statusCode)
}

// RespondWithError writes a generic 500 envelope for an unexpected
// error. The error detail is deliberately not leaked to the client.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	Write(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}
