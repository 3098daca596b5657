package writer

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/cashflow-ocr/internal/models"
	"github.com/insightdelivered/cashflow-ocr/internal/store"
)

func sampleRecords() []models.Record {
	return []models.Record{
		{
			AccountNo:    "9943-000613-001",
			BankName:     "Krungthai",
			CompanyName:  "CP Trading Co Ltd",
			Currency:     "USD",
			DocumentDate: "02-Dec-2025",
			ReferenceNo:  "IC 25/0662",
			TotalValue:   "87300.06",
			Transaction:  models.Debit,
			Page:         1,
			SourceFile:   "advice1.pdf",
		},
		{
			AccountNo:   "7012345678",
			BankName:    "CIMB",
			Transaction: models.Credit,
			TotalValue:  "500.00",
			Page:        2,
		},
	}
}

func TestCSVWriterWithHeader(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	require.NoError(t, w.Write(&buf, sampleRecords()))

	want := "A/C No,Bank Name,Company Name,Currency,Document Date,Reference No,Total Value,Transaction,Source File,Page\n" +
		"9943-000613-001,Krungthai,CP Trading Co Ltd,USD,02-Dec-2025,IC 25/0662,87300.06,DEBIT,advice1.pdf,1\n" +
		"7012345678,CIMB,,,,,500.00,CREDIT,,2\n"
	assert.Equal(t, want, buf.String())
}

func TestCSVWriterWithoutHeader(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	require.NoError(t, w.Write(&buf, sampleRecords()[:1]))
	assert.Equal(t, "9943-000613-001,Krungthai,CP Trading Co Ltd,USD,02-Dec-2025,IC 25/0662,87300.06,DEBIT,advice1.pdf,1\n", buf.String())
}

func TestCSVWriterToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := &CSVWriter{IncludeHeader: true}
	require.NoError(t, w.WriteToFile(path, nil))
	assert.FileExists(t, path)
}

func TestAppendToWorkbookCreatesThenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CashFlow_Report.xlsx")
	records := sampleRecords()

	require.NoError(t, AppendToWorkbook(path, records[:1]))
	require.NoError(t, AppendToWorkbook(path, records[1:]))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, recordHeader, rows[0])
	assert.Equal(t, "9943-000613-001", rows[1][0])
	assert.Equal(t, "87300.06", rows[1][6])
	assert.Equal(t, "7012345678", rows[2][0])
	assert.Equal(t, "CREDIT", rows[2][7])
}

func TestExportStored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "DB_Report.xlsx")
	stored := []store.StoredRecord{
		{ID: 7, Record: sampleRecords()[0], SavedAt: "2026-01-02 10:00:00"},
	}

	require.NoError(t, ExportStored(path, stored))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Saved At", rows[0][len(rows[0])-1])
	assert.Equal(t, "7", rows[1][0])
	assert.Equal(t, "9943-000613-001", rows[1][1])
	assert.Equal(t, "2026-01-02 10:00:00", rows[1][len(rows[1])-1])
}
