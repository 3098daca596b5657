package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/insightdelivered/cashflow-ocr/internal/models"
)

// recordHeader is the column order shared by the CSV and Excel writers.
var recordHeader = []string{
	"A/C No", "Bank Name", "Company Name", "Currency",
	"Document Date", "Reference No", "Total Value", "Transaction",
	"Source File", "Page",
}

func recordRow(rec models.Record) []string {
	return []string{
		rec.AccountNo,
		rec.BankName,
		rec.CompanyName,
		rec.Currency,
		rec.DocumentDate,
		rec.ReferenceNo,
		rec.TotalValue,
		string(rec.Transaction),
		rec.SourceFile,
		strconv.Itoa(rec.Page),
	}
}

// CSVWriter writes extracted records to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes records to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, records []models.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, records)
}

// Write writes records in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, records []models.Record) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	if w.IncludeHeader {
		if err := cw.Write(recordHeader); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	for _, rec := range records {
		if err := cw.Write(recordRow(rec)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
