package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printdesk/jobtrack/internal/jobs"
	"github.com/printdesk/jobtrack/internal/sheets"
)

type stubBackend struct {
	appendResult *sheets.AppendResult
	appendErr    error
	readValues   [][]interface{}
	readErr      error
	pingErr      error

	appendCalls int
	lastRow     []interface{}
}

func (s *stubBackend) Append(ctx context.Context, row []interface{}) (*sheets.AppendResult, error) {
	s.appendCalls++
	s.lastRow = row
	if s.appendErr != nil {
		return nil, s.appendErr
	}
	return s.appendResult, nil
}

func (s *stubBackend) Read(ctx context.Context) ([][]interface{}, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.readValues, nil
}

func (s *stubBackend) Ping(ctx context.Context) error {
	return s.pingErr
}

func validBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"jobNumber":       "J-1042",
		"customerName":    "Acme Print Co",
		"jobName":         "Spring Catalog",
		"jobLocation":     "Hall B",
		"salesPerson":     "Priya",
		"jobSize":         "A4",
		"quantity":        "5000",
		"jobCategory":     "Catalog",
		"jobBookedDate":   "2024-01-15",
		"jobStatus":       "Pending",
		"deliveryDate":    "2024-02-01",
		"deliveryDetails": "Loading dock, before noon",
		// remark deliberately omitted
	})
	require.NoError(t, err)
	return body
}

func TestSubmit(t *testing.T) {
	t.Run("success appends 14-column row", func(t *testing.T) {
		backend := &stubBackend{
			appendResult: &sheets.AppendResult{SpreadsheetID: "1AbC", UpdatedRows: 1},
		}
		submittedAt := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
		h := NewJobsHandler(backend, func() time.Time { return submittedAt })

		req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader(validBody(t)))
		rec := httptest.NewRecorder()

		h.Submit(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp SubmitResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		require.NotNil(t, resp.Data)
		assert.Equal(t, "1AbC", resp.Data.SpreadsheetID)

		require.Len(t, backend.lastRow, jobs.ColumnCount)
		assert.Equal(t, "J-1042", backend.lastRow[jobs.ColJobNumber])
		assert.Equal(t, "2024-01-15", backend.lastRow[jobs.ColJobBookedDate])

		// Omitted remark occupies its column as an empty string.
		assert.Equal(t, "", backend.lastRow[jobs.ColRemark])

		ts, ok := backend.lastRow[jobs.ColSubmissionDate].(string)
		require.True(t, ok)
		require.NotEmpty(t, ts)
		_, err := time.Parse(time.RFC3339, ts)
		assert.NoError(t, err)
	})

	t.Run("backend failure returns 500 with detail", func(t *testing.T) {
		backend := &stubBackend{appendErr: errors.New("invalid_grant: account not found")}
		h := NewJobsHandler(backend, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader(validBody(t)))
		rec := httptest.NewRecorder()

		h.Submit(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var resp SubmitResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "failed to add job", resp.Message)
		assert.Contains(t, resp.Error, "invalid_grant")
	})

	t.Run("malformed body returns 400 without touching backend", func(t *testing.T) {
		backend := &stubBackend{}
		h := NewJobsHandler(backend, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()

		h.Submit(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, backend.appendCalls)
	})
}

func TestList(t *testing.T) {
	t.Run("returns raw values header included", func(t *testing.T) {
		backend := &stubBackend{
			readValues: [][]interface{}{
				{"Job#", "Customer"},
				{"J001", "Acme"},
			},
		}
		h := NewJobsHandler(backend, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
		rec := httptest.NewRecorder()

		h.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp ListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		// Header row is not skipped server-side.
		require.Len(t, resp.Data, 2)
		assert.Equal(t, "Job#", resp.Data[0][0])
	})

	t.Run("failure generalizes the message", func(t *testing.T) {
		backend := &stubBackend{readErr: errors.New("googleapi: Error 403: forbidden")}
		h := NewJobsHandler(backend, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
		rec := httptest.NewRecorder()

		h.List(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var resp ListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "failed to fetch job data", resp.Message)
		assert.NotContains(t, rec.Body.String(), "403")
	})

	t.Run("empty range yields empty data not error", func(t *testing.T) {
		backend := &stubBackend{readValues: [][]interface{}{}}
		h := NewJobsHandler(backend, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
		rec := httptest.NewRecorder()

		h.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp ListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})
}

func TestProbe(t *testing.T) {
	h := NewJobsHandler(&stubBackend{appendErr: errors.New("backend down")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	h.Probe(rec, req)

	// The probe is independent of the append path.
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProbeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Message)
}
