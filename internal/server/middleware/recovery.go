package middleware

import (
	"fmt"
	"net/http"

	fulmenerrors "github.com/fulmenhq/gofulmen/errors"
	"go.uber.org/zap"

	apperrors "github.com/printdesk/jobtrack/internal/errors"
	"github.com/printdesk/jobtrack/internal/observability"
)

// Recovery converts handler panics into a 500 error envelope instead of
// tearing down the connection.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				observability.ServerLogger.Error("panic in handler",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
					zap.String("request_id", GetRequestID(r.Context())))

				envelope := fulmenerrors.NewErrorEnvelope(
					"INTERNAL_ERROR",
					fmt.Sprintf("panic: %v", rec),
				)
				if id := GetRequestID(r.Context()); id != "" {
					envelope = envelope.WithCorrelationID(id)
				}
				apperrors.WriteEnvelope(w, envelope, http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// ErrorHandler is an alias for Recovery kept for callers that chain it
// under that name.
func ErrorHandler(next http.Handler) http.Handler {
	return Recovery(next)
}
