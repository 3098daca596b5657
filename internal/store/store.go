// Package store persists reviewed advice records in a local sqlite
// database, mirroring the review workflow: extracted records are saved
// after approval and queried back by the dashboard.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/insightdelivered/cashflow-ocr/internal/models"
	"github.com/insightdelivered/cashflow-ocr/internal/parser"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ac_no TEXT,
	bank_name TEXT,
	company_name TEXT,
	currency TEXT,
	doc_date TEXT,
	ref_no TEXT,
	total_value REAL,
	transaction_type TEXT,
	page INTEGER,
	source_file TEXT,
	saved_at TEXT
)`

// Store wraps the sqlite database holding saved records.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// StoredRecord is a saved record plus its database identity.
type StoredRecord struct {
	ID int64 `json:"id"`
	models.Record
	SavedAt string `json:"savedAt"`
}

// Filter narrows Load results. Zero values (or "All") mean no filtering
// on that dimension. Dates compare lexically against the normalized
// ISO doc_date column, inclusive on both ends.
type Filter struct {
	Bank      string
	Company   string
	Currency  string
	StartDate string
	EndDate   string
}

// Open creates or opens the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db, log: slog.Default().With("component", "store")}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts records, normalizing dates to ISO 8601 and coercing the
// total to a number on the way in. Unparseable totals are stored as 0
// so a bad OCR figure never blocks the rest of a batch.
func (s *Store) Save(records []models.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning save: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO transactions
		(ac_no, bank_name, company_name, currency, doc_date, ref_no, total_value, transaction_type, page, source_file, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	savedAt := time.Now().Format("2006-01-02 15:04:05")
	for _, rec := range records {
		total := 0.0
		if d, err := decimal.NewFromString(strings.ReplaceAll(rec.TotalValue, ",", "")); err == nil {
			total = d.InexactFloat64()
		}
		if _, err := stmt.Exec(
			rec.AccountNo, rec.BankName, rec.CompanyName, rec.Currency,
			parser.NormalizeDate(rec.DocumentDate), rec.ReferenceNo,
			total, string(rec.Transaction), rec.Page, rec.SourceFile, savedAt,
		); err != nil {
			return 0, fmt.Errorf("inserting record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing save: %w", err)
	}
	s.log.Info("records saved", "count", len(records))
	return len(records), nil
}

// Load fetches records matching the filter, oldest first.
func (s *Store) Load(f Filter) ([]StoredRecord, error) {
	query := `SELECT id, ac_no, bank_name, company_name, currency, doc_date, ref_no,
		total_value, transaction_type, page, source_file, saved_at
		FROM transactions WHERE 1=1`
	var args []any

	addEq := func(col, val string) {
		if val != "" && val != "All" {
			query += " AND " + col + " = ?"
			args = append(args, val)
		}
	}
	addEq("bank_name", f.Bank)
	addEq("company_name", f.Company)
	addEq("currency", f.Currency)
	if f.StartDate != "" {
		query += " AND doc_date >= ?"
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		query += " AND doc_date <= ?"
		args = append(args, f.EndDate)
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var out []StoredRecord
	for rows.Next() {
		var r StoredRecord
		var total float64
		var txType string
		if err := rows.Scan(&r.ID, &r.AccountNo, &r.BankName, &r.CompanyName,
			&r.Currency, &r.DocumentDate, &r.ReferenceNo, &total,
			&txType, &r.Page, &r.SourceFile, &r.SavedAt); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		r.Transaction = models.TransactionType(txType)
		r.TotalValue = decimal.NewFromFloat(total).StringFixed(2)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Delete removes records by id and returns how many went away.
func (s *Store) Delete(ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	res, err := s.db.Exec("DELETE FROM transactions WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return 0, fmt.Errorf("deleting records: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// FilterOptions returns the distinct banks, companies and currencies
// present in the store, for dashboard filter dropdowns.
func (s *Store) FilterOptions() (banks, companies, currencies []string, err error) {
	collect := func(col string) ([]string, error) {
		rows, err := s.db.Query("SELECT DISTINCT " + col + " FROM transactions WHERE " + col + " != '' ORDER BY " + col)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		var vals []string
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return vals, rows.Err()
	}

	if banks, err = collect("bank_name"); err != nil {
		return nil, nil, nil, fmt.Errorf("listing banks: %w", err)
	}
	if companies, err = collect("company_name"); err != nil {
		return nil, nil, nil, fmt.Errorf("listing companies: %w", err)
	}
	if currencies, err = collect("currency"); err != nil {
		return nil, nil, nil, fmt.Errorf("listing currencies: %w", err)
	}
	return banks, companies, currencies, nil
}
