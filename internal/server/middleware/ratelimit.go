package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	apperrors "github.com/printdesk/jobtrack/internal/errors"
)

// RateLimit throttles a route with a shared token bucket. Appends go to
// a single spreadsheet, so one process-wide bucket is the right
// granularity; there is no per-client fairness to preserve.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				apperrors.Write(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many submissions, retry shortly")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
