package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/cashflow-ocr/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecords() []models.Record {
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
			AccountNo:    "7012345678",
			BankName:     "CIMB",
			CompanyName:  "CP Feed Co Ltd",
			Currency:     "THB",
			DocumentDate: "23/12/2025",
			ReferenceNo:  "IBC2512/0045",
			TotalValue:   "1,253,225.00",
			Transaction:  models.Credit,
			Page:         2,
			SourceFile:   "advice2.pdf",
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := openTestStore(t)

	n, err := s.Save(testRecords())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := s.Load(Filter{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Dates are normalized to ISO on the way in, totals round-trip
	// through the numeric column.
	assert.Equal(t, "2025-12-02", got[0].DocumentDate)
	assert.Equal(t, "87300.06", got[0].TotalValue)
	assert.Equal(t, models.Debit, got[0].Transaction)
	assert.Equal(t, "advice1.pdf", got[0].SourceFile)
	assert.NotEmpty(t, got[0].SavedAt)

	assert.Equal(t, "2025-12-23", got[1].DocumentDate)
	assert.Equal(t, "1253225.00", got[1].TotalValue)

	// Oldest first, ids assigned in insert order.
	assert.Less(t, got[0].ID, got[1].ID)
}

func TestSaveEmptyBatch(t *testing.T) {
	s := openTestStore(t)
	n, err := s.Save(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSaveUnparseableTotal(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Save([]models.Record{{AccountNo: "1", TotalValue: "N/A"}})
	require.NoError(t, err)

	got, err := s.Load(Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "0.00", got[0].TotalValue)
}

func TestLoadFilters(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Save(testRecords())
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"by bank", Filter{Bank: "CIMB"}, 1},
		{"bank All is no filter", Filter{Bank: "All"}, 2},
		{"by company", Filter{Company: "CP Trading Co Ltd"}, 1},
		{"by currency", Filter{Currency: "THB"}, 1},
		{"date range hit", Filter{StartDate: "2025-12-01", EndDate: "2025-12-10"}, 1},
		{"date range inclusive", Filter{StartDate: "2025-12-02", EndDate: "2025-12-23"}, 2},
		{"date range miss", Filter{StartDate: "2026-01-01"}, 0},
		{"combined", Filter{Bank: "Krungthai", Currency: "USD"}, 1},
		{"combined miss", Filter{Bank: "Krungthai", Currency: "THB"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Load(tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Save(testRecords())
	require.NoError(t, err)

	got, err := s.Load(Filter{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	n, err := s.Delete([]int64{got[0].ID})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	remaining, err := s.Load(Filter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, got[1].ID, remaining[0].ID)

	n, err = s.Delete(nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.Delete([]int64{9999})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFilterOptions(t *testing.T) {
	s := openTestStore(t)
	records := testRecords()
	records = append(records, models.Record{AccountNo: "3", TotalValue: "1.00"})
	_, err := s.Save(records)
	require.NoError(t, err)

	banks, companies, currencies, err := s.FilterOptions()
	require.NoError(t, err)

	// Sorted distinct values; the blank record contributes nothing.
	assert.Equal(t, []string{"CIMB", "Krungthai"}, banks)
	assert.Equal(t, []string{"CP Feed Co Ltd", "CP Trading Co Ltd"}, companies)
	assert.Equal(t, []string{"THB", "USD"}, currencies)
}
