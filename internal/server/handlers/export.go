package handlers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/printdesk/jobtrack/internal/export"
	"github.com/printdesk/jobtrack/internal/jobs"
	"github.com/printdesk/jobtrack/internal/observability"
)

// Export serves GET /api/jobs/export: the full table as an XLSX
// download.
//
// Unlike the raw read, this path types every row, so a malformed row
// (backend schema drift) fails the export instead of silently
// producing blank cells.
func (h *JobsHandler) Export(w http.ResponseWriter, r *http.Request) {
	values, err := h.backend.Read(r.Context())
	if err != nil {
		observability.ServerLogger.Error("export read failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ListResponse{
			Success: false,
			Message: "failed to fetch job data",
		})
		return
	}

	// Row 0 is the header row.
	var dataRows [][]interface{}
	if len(values) > 1 {
		dataRows = values[1:]
	}

	records, err := jobs.FromRows(dataRows)
	if err != nil {
		observability.ServerLogger.Error("export mapping failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ListResponse{
			Success: false,
			Message: "job data is malformed",
		})
		return
	}

	workbook, err := export.JobsXLSX(records)
	if err != nil {
		observability.ServerLogger.Error("export build failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ListResponse{
			Success: false,
			Message: "failed to build export",
		})
		return
	}

	filename := fmt.Sprintf("jobs-%s.xlsx", h.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}
