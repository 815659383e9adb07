// Package jobs defines the job record domain type and its positional
// mapping to and from spreadsheet rows.
//
// The spreadsheet contract is positional: column order is fixed and is
// the contract, not column headers. Row 0 of the sheet is a header row
// and is skipped by every consumer of raw row data.
package jobs

import (
	"fmt"
	"time"
)

// Column indices of the persisted row layout. The 13 client-supplied
// fields come first, in submission order, followed by the
// server-computed submission timestamp.
const (
	ColJobNumber = iota
	ColCustomerName
	ColJobName
	ColJobLocation
	ColSalesPerson
	ColJobSize
	ColQuantity
	ColJobCategory
	ColJobBookedDate
	ColJobStatus
	ColDeliveryDate
	ColDeliveryDetails
	ColRemark
	ColSubmissionDate

	// ColumnCount is the full persisted row width.
	ColumnCount = ColSubmissionDate + 1

	// InputColumnCount is the number of client-supplied columns. Rows
	// appended before the submission timestamp existed may be one cell
	// short, so typed mapping only requires the input columns.
	InputColumnCount = ColRemark + 1
)

// Job status values. Anything outside this set is preserved verbatim
// but rendered with neutral styling by the UI.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusDelivered  = "Delivered"
)

// Statuses lists the enumerated job statuses in display order.
var Statuses = []string{StatusPending, StatusInProgress, StatusCompleted, StatusDelivered}

// ValidStatus reports whether s is one of the enumerated statuses.
// Matching is exact; no case folding.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Record is a single job entry.
//
// All fields are transmitted as strings: quantity is numeric in
// practice but carried as text, and the two date fields are expected to
// already be ISO YYYY-MM-DD by the time a Record reaches the write
// path. Required-field enforcement happens client-side; the write path
// passes field values through verbatim.
type Record struct {
	JobNumber       string `json:"jobNumber"`
	CustomerName    string `json:"customerName"`
	JobName         string `json:"jobName"`
	JobLocation     string `json:"jobLocation"`
	SalesPerson     string `json:"salesPerson"`
	JobSize         string `json:"jobSize"`
	Quantity        string `json:"quantity"`
	JobCategory     string `json:"jobCategory"`
	JobBookedDate   string `json:"jobBookedDate"`
	JobStatus       string `json:"jobStatus"`
	DeliveryDate    string `json:"deliveryDate"`
	DeliveryDetails string `json:"deliveryDetails"`
	Remark          string `json:"remark,omitempty"`

	// SubmissionDate is set by the server at append time and is never
	// part of the input schema.
	SubmissionDate string `json:"submissionDate,omitempty"`
}

// ToRow maps the record to the fixed 14-column row layout, stamping the
// submission timestamp from submittedAt. An omitted remark occupies its
// column as an empty string so positions stay stable.
func (r Record) ToRow(submittedAt time.Time) []interface{} {
	row := make([]interface{}, ColumnCount)
	row[ColJobNumber] = r.JobNumber
	row[ColCustomerName] = r.CustomerName
	row[ColJobName] = r.JobName
	row[ColJobLocation] = r.JobLocation
	row[ColSalesPerson] = r.SalesPerson
	row[ColJobSize] = r.JobSize
	row[ColQuantity] = r.Quantity
	row[ColJobCategory] = r.JobCategory
	row[ColJobBookedDate] = r.JobBookedDate
	row[ColJobStatus] = r.JobStatus
	row[ColDeliveryDate] = r.DeliveryDate
	row[ColDeliveryDetails] = r.DeliveryDetails
	row[ColRemark] = r.Remark
	row[ColSubmissionDate] = submittedAt.Format(time.RFC3339)
	return row
}

// MalformedRowError reports a row that cannot be mapped to a Record.
//
// Index is the zero-based position of the row within the data rows (the
// header row is not counted).
type MalformedRowError struct {
	Index int
	Width int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d: malformed row: got %d cells, need at least %d", e.Index, e.Width, InputColumnCount)
}

// FromRow maps one raw data row into a Record.
//
// Rows narrower than the 13 client-supplied columns fail closed with a
// MalformedRowError rather than silently defaulting cells, so backend
// schema drift surfaces instead of producing blank records. Only the
// submission timestamp column may be absent (rows predating it).
// Non-string cells (numbers, booleans) are stringified.
func FromRow(index int, row []interface{}) (Record, error) {
	if len(row) < InputColumnCount {
		return Record{}, &MalformedRowError{Index: index, Width: len(row)}
	}

	cell := func(col int) string {
		if col >= len(row) || row[col] == nil {
			return ""
		}
		if s, ok := row[col].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", row[col])
	}

	return Record{
		JobNumber:       cell(ColJobNumber),
		CustomerName:    cell(ColCustomerName),
		JobName:         cell(ColJobName),
		JobLocation:     cell(ColJobLocation),
		SalesPerson:     cell(ColSalesPerson),
		JobSize:         cell(ColJobSize),
		Quantity:        cell(ColQuantity),
		JobCategory:     cell(ColJobCategory),
		JobBookedDate:   cell(ColJobBookedDate),
		JobStatus:       cell(ColJobStatus),
		DeliveryDate:    cell(ColDeliveryDate),
		DeliveryDetails: cell(ColDeliveryDetails),
		Remark:          cell(ColRemark),
		SubmissionDate:  cell(ColSubmissionDate),
	}, nil
}

// FromRows maps raw rows (header already removed) into Records,
// failing closed on the first malformed row.
func FromRows(rows [][]interface{}) ([]Record, error) {
	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		rec, err := FromRow(i, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Headers returns the header labels used by exports, matching the
// persisted column order.
func Headers() []string {
	return []string{
		"Job Number",
		"Customer Name",
		"Job Name",
		"Job Location",
		"Sales Person",
		"Job Size",
		"Quantity",
		"Job Category",
		"Job Booked Date",
		"Job Status",
		"Delivery Date",
		"Delivery Details",
		"Remark",
		"Submission Date",
	}
}
