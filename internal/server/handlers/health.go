// Package handlers implements the HTTP API: job submission, the raw
// range read, XLSX export, the form schema, and health probes.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	fulmenerrors "github.com/fulmenhq/gofulmen/errors"

	apperrors "github.com/printdesk/jobtrack/internal/errors"
)

// HealthChecker probes one dependency.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// checkTimeout bounds each individual checker.
const checkTimeout = 5 * time.Second

// HealthResponse is the wire shape of a healthy /health reply.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HealthManager runs registered checkers and serves the health
// endpoints.
type HealthManager struct {
	mu       sync.RWMutex
	version  string
	checkers map[string]HealthChecker
}

// NewHealthManager creates a manager reporting the given version.
func NewHealthManager(version string) *HealthManager {
	return &HealthManager{
		version:  version,
		checkers: make(map[string]HealthChecker),
	}
}

// RegisterChecker adds a named dependency check.
func (m *HealthManager) RegisterChecker(name string, checker HealthChecker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkers[name] = checker
}

// HealthHandler serves GET /health: runs every checker and reports
// per-check and overall status. Unhealthy yields 503 with the check
// results in the error details.
func (m *HealthManager) HealthHandler(w http.ResponseWriter, r *http.Request) {
	checks := m.runChecks(r.Context())
	status := m.determineOverallStatus(checks)

	if status == "unhealthy" {
		envelope := fulmenerrors.NewErrorEnvelope("SERVICE_UNAVAILABLE", "one or more health checks failed")
		detailChecks := make(map[string]interface{}, len(checks))
		for name, result := range checks {
			detailChecks[name] = result
		}
		if withCtx, err := envelope.WithContext(map[string]interface{}{"checks": detailChecks}); err == nil {
			envelope = withCtx
		}
		apperrors.WriteEnvelope(w, envelope, http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  status,
		Version: m.version,
		Checks:  checks,
	})
}

// LiveHandler serves GET /health/live: process is up, no dependency
// checks.
func (m *HealthManager) LiveHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Version: m.version})
}

// ReadyHandler serves GET /health/ready: same checks as HealthHandler.
func (m *HealthManager) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	m.HealthHandler(w, r)
}

func (m *HealthManager) runChecks(ctx context.Context) map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make(map[string]string, len(m.checkers))
	for name, checker := range m.checkers {
		checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := checker.CheckHealth(checkCtx)
		cancel()

		switch {
		case err == nil:
			results[name] = "healthy"
		case checkCtx.Err() == context.DeadlineExceeded:
			results[name] = "timeout"
		default:
			results[name] = "unhealthy"
		}
	}
	return results
}

// determineOverallStatus folds per-check results: any unhealthy check
// makes the whole service unhealthy, a timeout alone degrades it.
func (m *HealthManager) determineOverallStatus(checks map[string]string) string {
	status := "healthy"
	for _, result := range checks {
		switch result {
		case "unhealthy":
			return "unhealthy"
		case "timeout":
			status = "degraded"
		}
	}
	return status
}

var globalHealthManager *HealthManager

// InitHealthManager initializes the process-wide health manager.
func InitHealthManager(version string) {
	globalHealthManager = NewHealthManager(version)
}

// GetHealthManager returns the process-wide health manager, or nil
// before InitHealthManager.
func GetHealthManager() *HealthManager {
	return globalHealthManager
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
