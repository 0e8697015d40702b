package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/collectionsdesk/paxcash/pkg/core/services"
)

const sheetName = "Verified Reports"

// WriteXLSX writes the export header and rows as an Excel workbook
func WriteXLSX(w io.Writer, result *services.ExportResult) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := setRow(f, 1, result.Header); err != nil {
		return err
	}
	for i, row := range result.Rows {
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, rowNo int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return fmt.Errorf("failed to build cell name: %w", err)
	}

	// SetSheetRow needs a []interface{} slice
	row := make([]interface{}, len(values))
	for i, value := range values {
		row[i] = value
	}

	if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
		return fmt.Errorf("failed to set row %d: %w", rowNo, err)
	}
	return nil
}
