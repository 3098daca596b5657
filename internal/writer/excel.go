package writer

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/cashflow-ocr/internal/models"
	"github.com/insightdelivered/cashflow-ocr/internal/store"
)

// AppendToWorkbook appends records to the cumulative report workbook at
// path, creating it with a header row when it does not exist yet.
func AppendToWorkbook(path string, records []models.Record) error {
	var f *excelize.File
	var nextRow int

	if _, err := os.Stat(path); os.IsNotExist(err) {
		f = excelize.NewFile()
		if err := setRow(f, 1, recordHeader); err != nil {
			return err
		}
		nextRow = 2
	} else {
		var err error
		f, err = excelize.OpenFile(path)
		if err != nil {
			return fmt.Errorf("opening report workbook: %w", err)
		}
		rows, err := f.GetRows(f.GetSheetName(0))
		if err != nil {
			return fmt.Errorf("reading report workbook: %w", err)
		}
		nextRow = len(rows) + 1
	}
	defer f.Close()

	for i, rec := range records {
		if err := setRow(f, nextRow+i, recordRow(rec)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving report workbook: %w", err)
	}
	return nil
}

// ExportStored writes stored records to a fresh workbook at path,
// including database identity and save timestamps.
func ExportStored(path string, records []store.StoredRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	header := append([]string{"ID"}, recordHeader...)
	header = append(header, "Saved At")
	if err := setRow(f, 1, header); err != nil {
		return err
	}

	for i, rec := range records {
		row := append([]string{fmt.Sprintf("%d", rec.ID)}, recordRow(rec.Record)...)
		row = append(row, rec.SavedAt)
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving export workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(f.GetSheetName(0), cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}
