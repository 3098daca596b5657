package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/cashflow-ocr/internal/models"
)

// advicePresentPattern gates record promotion: a chunk only becomes a
// record when it carries an explicit advice banner (or the extractor
// already found a transaction type).
var advicePresentPattern = regexp.MustCompile(`(?i)DEBIT\s*ADVICE|CREDIT\s*ADVICE`)

// headerState carries document-level fields forward across chunks.
// Values only move from unset to set, or to a later overriding value;
// they never reset within one document. One instance lives per call, so
// concurrent documents never share state.
type headerState struct {
	documentDate string
	referenceNo  string
	accountNo    string
}

// ExtractAll runs the full pipeline over one document's raw OCR text:
// dialect detection, chunk segmentation, per-chunk field extraction,
// header carry-forward and record promotion. Empty or whitespace-only
// input yields no records. The master-directory enrichment pass is the
// caller's final step (master.Directory.Enrich).
func ExtractAll(text string) []models.Record {
	return ExtractAllWith(ForText(text), text)
}

// ExtractAllWith is ExtractAll with the dialect parser chosen by the
// caller, for documents whose bank is known up front.
func ExtractAllWith(p Parser, text string) []models.Record {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	idx := BuildPageIndex(text)
	var records []models.Record
	var state headerState

	for _, chunk := range SplitChunks(text) {
		rec := p.ExtractChunk(chunk.Text)
		rec.Page = idx.PageAt(chunk.Start)

		// Forward fill: a chunk's header fields update the carried
		// state; missing ones are taken from it.
		if rec.DocumentDate != "" {
			state.documentDate = rec.DocumentDate
		} else {
			rec.DocumentDate = state.documentDate
		}
		if rec.ReferenceNo != "" {
			state.referenceNo = rec.ReferenceNo
		} else {
			rec.ReferenceNo = state.referenceNo
		}
		if rec.AccountNo != "" {
			state.accountNo = rec.AccountNo
		} else {
			rec.AccountNo = state.accountNo
		}

		switch {
		case advicePresentPattern.MatchString(chunk.Text) || rec.Transaction != "":
			records = append(records, rec)
		case len(records) > 0 && rec.TotalValue == "" && rec.CompanyName == "":
			// Header-only chunk after a promoted record: bank layouts
			// sometimes trail the account or reference below the advice
			// body, even on the next page. Backfill whatever the last
			// record is still missing.
			last := &records[len(records)-1]
			if last.DocumentDate == "" {
				last.DocumentDate = rec.DocumentDate
			}
			if last.ReferenceNo == "" {
				last.ReferenceNo = rec.ReferenceNo
			}
			if last.AccountNo == "" {
				last.AccountNo = rec.AccountNo
			}
		}
	}

	return records
}
