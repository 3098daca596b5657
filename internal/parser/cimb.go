package parser

import (
	"regexp"

	"github.com/insightdelivered/cashflow-ocr/internal/models"
)

// CIMBParser handles CIMB trade-services advice documents.
//
// CIMB advices are form-like: "Date: 23/12/2025", a plain-digit
// "Account No.", and an "Inward Bill Collection No." as the reference.
// Totals are not reliably labeled, so amount extraction prefers
// currency-tagged figures and takes the last one — the settlement total
// closes the charge block.
type CIMBParser struct{}

func (p *CIMBParser) BankName() string {
	return "CIMB"
}

var cimbAccountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Account\s*No[.,\s]*\s*(\d+)`),
	regexp.MustCompile(`(?i)A/C\s*No[.,\s]*\s*(\d+)`),
	regexp.MustCompile(`(?i)Debit\s*Current\s*Account\s*[([]?\s*Account\s*No[.,\s]*\s*(\d+)`),
	regexp.MustCompile(`(?i)Current\s*Account\s*[([]?\s*Account\s*No[.,\s]*\s*(\d+)\s*[)\]]?`),
}

var cimbDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Date\s*:\s*(\d{1,2}/\d{1,2}/\d{4})`),
	regexp.MustCompile(`(?i)Date\s*:\s*(\d{1,2}-\d{1,2}-\d{4})`),
}

var cimbRefPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Inward\s*Bill\s*Collection\s*No\.?\s*[:;.-]?\s*([\w/-]{5,})`),
	regexp.MustCompile(`(?i)Our\s*Ref\s*[:;.-]?\s*([\w/-]{5,})`),
	regexp.MustCompile(`(?i)SWIFT\s*ID\s*[:;.-]?\s*(\w{5,})`),
}

func (p *CIMBParser) ExtractChunk(text string) models.Record {
	rec := models.Record{BankName: p.BankName()}

	rec.AccountNo = extractAccount(text, cimbAccountPatterns)
	rec.DocumentDate = extractFirstMatch(text, cimbDatePatterns)
	rec.ReferenceNo = extractFirstMatch(text, cimbRefPatterns)
	rec.Transaction = detectTransaction(text)

	if rec.Transaction != "" {
		rec.TotalValue = p.extractTotal(text)
	}

	return rec
}

// extractTotal prefers the last currency-prefixed figure in the chunk,
// falling back to the last bare two-decimal figure.
func (p *CIMBParser) extractTotal(text string) string {
	if vals := findCurrencyAmounts(text); len(vals) > 0 {
		return canonicalAmount(vals[len(vals)-1])
	}
	if vals := findAmounts(text); len(vals) > 0 {
		return canonicalAmount(vals[len(vals)-1])
	}
	return ""
}
