package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/printdesk/jobtrack/internal/jobs"
	"github.com/printdesk/jobtrack/internal/observability"
	"github.com/printdesk/jobtrack/internal/sheets"
)

// SubmitResponse is the write endpoint's envelope. Error carries the
// failure detail on the write path only; the read path deliberately
// generalizes.
type SubmitResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    *sheets.AppendResult `json:"data,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// ListResponse is the read endpoint's envelope. Data is the raw 2D cell
// array, header row included; reshaping is the caller's job.
type ListResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    [][]interface{} `json:"data,omitempty"`
}

// ProbeResponse is the health probe on the write path.
type ProbeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// JobsHandler serves the job endpoints. It is stateless per request;
// every invocation goes straight to the backend.
type JobsHandler struct {
	backend sheets.Backend
	now     func() time.Time
}

// NewJobsHandler creates the handler. now defaults to time.Now and is
// injectable for tests.
func NewJobsHandler(backend sheets.Backend, now func() time.Time) *JobsHandler {
	if now == nil {
		now = time.Now
	}
	return &JobsHandler{backend: backend, now: now}
}

// Submit serves POST /api/jobs.
//
// The body must decode into a job record; field contents are passed
// through verbatim (required-field validation already happened
// client-side, dates are already YYYY-MM-DD). The server appends the
// submission timestamp and maps to the fixed 14-column row. On any
// backend failure the caller gets a 500 with the error detail and is
// responsible for retrying.
func (h *JobsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var record jobs.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeJSON(w, http.StatusBadRequest, SubmitResponse{
			Success: false,
			Message: "invalid request body",
			Error:   err.Error(),
		})
		return
	}

	row := record.ToRow(h.now())
	result, err := h.backend.Append(r.Context(), row)
	if err != nil {
		observability.ServerLogger.Error("append failed",
			zap.String("jobNumber", record.JobNumber),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, SubmitResponse{
			Success: false,
			Message: "failed to add job",
			Error:   err.Error(),
		})
		return
	}

	observability.ServerLogger.Info("job submitted",
		zap.String("jobNumber", record.JobNumber),
		zap.String("updatedRange", result.UpdatedRange))

	writeJSON(w, http.StatusOK, SubmitResponse{
		Success: true,
		Message: "job added successfully",
		Data:    result,
	})
}

// List serves GET /api/jobs.
//
// Returns the raw cell values of the configured range. The header row
// is not skipped here; that responsibility belongs to the caller.
// Failures surface one generalized message, no detail leakage.
func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	values, err := h.backend.Read(r.Context())
	if err != nil {
		observability.ServerLogger.Error("read failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ListResponse{
			Success: false,
			Message: "failed to fetch job data",
		})
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{
		Success: true,
		Data:    values,
	})
}

// Probe serves GET /api/health: reports the write path is reachable,
// independent of the append path.
func (h *JobsHandler) Probe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProbeResponse{
		Status:  "ok",
		Message: "job entry API is running",
	})
}
