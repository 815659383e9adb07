package sheets

import "context"

// AppendResult is the backend's raw response to an append, passed
// through to API callers unmodified.
type AppendResult struct {
	SpreadsheetID string `json:"spreadsheetId"`
	UpdatedRange  string `json:"updatedRange,omitempty"`
	UpdatedRows   int64  `json:"updatedRows,omitempty"`
	UpdatedCells  int64  `json:"updatedCells,omitempty"`
}

// Backend is the spreadsheet store of record.
//
// Implementations are stateless per invocation and safe for concurrent
// use; the spreadsheet service itself serializes concurrent appends.
type Backend interface {
	// Append appends one row to the configured sheet.
	Append(ctx context.Context, row []interface{}) (*AppendResult, error)

	// Read fetches the full configured range, header row included.
	// Cells are strings, numbers, or booleans; trailing empty cells may
	// be absent.
	Read(ctx context.Context) ([][]interface{}, error)

	// Ping verifies the spreadsheet is reachable without touching row
	// data.
	Ping(ctx context.Context) error
}
