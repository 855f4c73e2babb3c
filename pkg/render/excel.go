// pkg/render/excel.go
package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/advancementlab/donorpipe/pkg/report"
)

// Sheet names used by the workbook export
const (
	SheetSummary  = "Summary"
	SheetReach    = "Reach"
	SheetActivity = "Activity"
)

// Workbook accumulates report outputs into an xlsx file
type Workbook struct {
	file *excelize.File
}

// NewWorkbook creates an empty workbook
func NewWorkbook() *Workbook {
	return &Workbook{file: excelize.NewFile()}
}

// AddCrossTab writes a staff-by-method cross-tab, including the totals
// row and column, onto the Summary sheet
func (wb *Workbook) AddCrossTab(ct *report.CrossTab) error {
	if _, err := wb.file.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", SheetSummary, err)
	}

	header := append([]string{"Staff"}, ct.Methods...)
	header = append(header, TotalsLabel)
	if err := wb.setStringRow(SheetSummary, 1, header); err != nil {
		return err
	}

	rowIdx := 2
	for _, staff := range ct.Staff {
		cells := []interface{}{staff}
		for _, method := range ct.Methods {
			cells = append(cells, ct.Cell(staff, method))
		}
		cells = append(cells, ct.RowTotals[staff])
		if err := wb.setRow(SheetSummary, rowIdx, cells); err != nil {
			return err
		}
		rowIdx++
	}

	footer := []interface{}{TotalsLabel}
	for _, method := range ct.Methods {
		footer = append(footer, ct.ColTotals[method])
	}
	footer = append(footer, ct.GrandTotal)
	return wb.setRow(SheetSummary, rowIdx, footer)
}

// AddReachAndOutcomes writes per-staff reach and outcome counts onto
// the Reach sheet
func (wb *Workbook) AddReachAndOutcomes(outcomes []report.StaffOutcome) error {
	if _, err := wb.file.NewSheet(SheetReach); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", SheetReach, err)
	}

	header := []string{"Staff", "Reports", "UniqueDonors", "Positive", "Negative"}
	if err := wb.setStringRow(SheetReach, 1, header); err != nil {
		return err
	}

	for i, o := range outcomes {
		cells := []interface{}{o.Staff, o.Reports, o.UniqueDonors, o.Positive, o.Negative}
		if err := wb.setRow(SheetReach, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

// AddCumulativeActivity writes the per-staff running report series
// onto the Activity sheet
func (wb *Workbook) AddCumulativeActivity(points []report.ActivityPoint) error {
	if _, err := wb.file.NewSheet(SheetActivity); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", SheetActivity, err)
	}

	header := []string{"Staff", "Date", "Reports", "Cumulative"}
	if err := wb.setStringRow(SheetActivity, 1, header); err != nil {
		return err
	}

	for i, p := range points {
		cells := []interface{}{p.Staff, p.Date.Format("2006-01-02"), p.Count, p.Cumulative}
		if err := wb.setRow(SheetActivity, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

// SaveAs writes the workbook to disk, dropping the default sheet
// excelize creates
func (wb *Workbook) SaveAs(path string) error {
	if len(wb.file.GetSheetList()) > 1 {
		if err := wb.file.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}
	if err := wb.file.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Close releases the underlying file resources
func (wb *Workbook) Close() error {
	return wb.file.Close()
}

func (wb *Workbook) setStringRow(sheet string, row int, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return wb.setRow(sheet, row, cells)
}

func (wb *Workbook) setRow(sheet string, row int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := wb.file.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}
