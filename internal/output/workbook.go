package output

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/internal/report"
)

const defaultSheet = "Sheet1"

// WriteWorkbook writes every table to an XLSX workbook at path, one sheet
// per table named after the report.
func WriteWorkbook(path string, tables []*report.Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("no tables to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		idx, err := f.NewSheet(t.Name)
		if err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", t.Name, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}
		if err := writeSheet(f, t); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", t.Name, err)
		}
	}

	if tables[0].Name != defaultSheet {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	logging.Debug().
		Str("file", path).
		Int("sheets", len(tables)).
		Msg("Wrote workbook")
	return nil
}

func writeSheet(f *excelize.File, t *report.Table) error {
	header := make([]any, len(t.Columns))
	for i, name := range t.Header() {
		header[i] = name
	}
	if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return err
	}

	for r, row := range t.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = sheetValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Name, cell, &cells); err != nil {
			return err
		}
	}
	return nil
}

// sheetValue converts a cell to what excelize stores. Dates are written as
// ISO text to match the CSV output.
func sheetValue(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		return report.FormatValue(x)
	default:
		return v
	}
}
