// Package master holds the canonical account directory used to enrich
// extracted records with bank, company and currency information.
package master

import (
	"strings"

	"github.com/insightdelivered/cashflow-ocr/internal/models"
)

// Account is one canonical directory entry from the AC master workbook.
// The directory is externally owned and read-only to this engine.
type Account struct {
	AccountNo   string
	BankName    string
	AccountName string
	AccountType string
	Currency    string
	Branch      string
}

// Directory is an ordered account directory. Lookup is first match in
// directory order; there is no scoring.
type Directory []Account

var accountScrubber = strings.NewReplacer(" ", "", "\t", "", "'", "", "-", "")

// normalizeAccountNo strips whitespace, apostrophes and hyphens so that
// hyphenated directory entries match OCR-flattened extractions and vice
// versa.
func normalizeAccountNo(s string) string {
	return accountScrubber.Replace(strings.TrimSpace(s))
}

// Lookup resolves an extracted account number by bidirectional substring
// containment on normalized values: a directory entry matches when either
// side contains the other. This tolerates OCR-truncated or OCR-padded
// numbers at the cost of occasional over-matching on short substrings;
// callers needing stricter behavior should pre-filter the directory to a
// minimum account-number length.
func (d Directory) Lookup(accountNo string) (Account, bool) {
	clean := normalizeAccountNo(accountNo)
	if clean == "" {
		return Account{}, false
	}
	for _, acc := range d {
		ref := normalizeAccountNo(acc.AccountNo)
		if ref == "" {
			continue
		}
		if strings.Contains(clean, ref) || strings.Contains(ref, clean) {
			return acc, true
		}
	}
	return Account{}, false
}

// Enrich backfills BankName, CompanyName and Currency on records whose
// account number resolves against the directory. Fields already set by
// an extractor are never overwritten, and lookup misses leave the record
// unchanged. Safe to call on a nil directory.
func (d Directory) Enrich(records []models.Record) {
	if len(d) == 0 {
		return
	}
	for i := range records {
		rec := &records[i]
		if rec.AccountNo == "" {
			continue
		}
		if rec.BankName != "" && rec.CompanyName != "" && rec.Currency != "" {
			continue
		}
		acc, ok := d.Lookup(rec.AccountNo)
		if !ok {
			continue
		}
		if rec.BankName == "" {
			rec.BankName = acc.BankName
		}
		if rec.CompanyName == "" {
			rec.CompanyName = acc.AccountName
		}
		if rec.Currency == "" {
			rec.Currency = acc.Currency
		}
	}
}
