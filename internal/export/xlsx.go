// Package export writes list views to spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/Domenick1991/flightdb/internal/domain"
	"github.com/xuri/excelize/v2"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX writes headers in row 1 and one row per record below it, using
// the same columns as the HTML table.
func WriteXLSX[T domain.Record](w io.Writer, sheet string, headers []string, rows []T) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	if err := writeRow(f, sheet, 1, headers); err != nil {
		return err
	}
	style, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if len(headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheet, "A1", last, style)
		lastCol, _, _ := excelize.SplitCellName(last)
		_ = f.SetColWidth(sheet, "A", lastCol, 20)
	}

	for i, row := range rows {
		if err := writeRow(f, sheet, i+2, row.Cells()); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("error writing row %d: %w", row, err)
	}
	return nil
}

// FileName is the attachment name for an export of table.
func FileName(table domain.Table) string {
	return fmt.Sprintf("%s.xlsx", table)
}
