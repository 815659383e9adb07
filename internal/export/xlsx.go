// Package export produces XLSX workbooks from job records.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/printdesk/jobtrack/internal/jobs"
)

const sheetName = "Jobs"

// JobsXLSX returns an XLSX workbook (as bytes) containing a header row
// followed by one row per record, in the persisted column order.
func JobsXLSX(records []jobs.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if index, _ := f.GetSheetIndex(sheetName); index == -1 {
		if _, err := f.NewSheet(sheetName); err != nil {
			return nil, fmt.Errorf("create sheet: %w", err)
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(activeIndex)

	// Drop the default sheet so the workbook has a single tab.
	if sheetName != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	for i, h := range jobs.Headers() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header %s: %w", h, err)
		}
	}

	for rowIdx, rec := range records {
		row := rowIdx + 2
		write := func(col int, v string) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}

		write(jobs.ColJobNumber, rec.JobNumber)
		write(jobs.ColCustomerName, rec.CustomerName)
		write(jobs.ColJobName, rec.JobName)
		write(jobs.ColJobLocation, rec.JobLocation)
		write(jobs.ColSalesPerson, rec.SalesPerson)
		write(jobs.ColJobSize, rec.JobSize)
		write(jobs.ColQuantity, rec.Quantity)
		write(jobs.ColJobCategory, rec.JobCategory)
		write(jobs.ColJobBookedDate, rec.JobBookedDate)
		write(jobs.ColJobStatus, rec.JobStatus)
		write(jobs.ColDeliveryDate, rec.DeliveryDate)
		write(jobs.ColDeliveryDetails, rec.DeliveryDetails)
		write(jobs.ColRemark, rec.Remark)
		write(jobs.ColSubmissionDate, rec.SubmissionDate)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
