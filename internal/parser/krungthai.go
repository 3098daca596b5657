package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/cashflow-ocr/internal/models"
)

// KrungthaiParser handles Krungthai Bank debit/credit advice documents.
//
// Krungthai advices are letter-style: a dated header with the account
// number and "Our Ref" code, an ADVICE banner, then an itemized charge
// block ending in a total line ("Total Debited : USD 87,300.06").
// OCR of these scans is noisy — "A/C" arrives as "AIC" or "AVC", ":"
// as ";" and "-" as "=" — so every field runs an ordered pattern list
// from strictest to most tolerant.
type KrungthaiParser struct{}

func (p *KrungthaiParser) BankName() string {
	return "Krungthai"
}

// Account patterns, most specific first. The labeled forms cover the
// common OCR corruptions of "A/C NO".
var krungthaiAccountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:A[/|I]?C['\s]*NO|Account\s*No|AVCNO|AIC\s?No)[;:.\s=]*\s*([\d\-=]{7,})`),
	regexp.MustCompile(`(?i)Id>([\d-]{7,})</Id`),
	regexp.MustCompile(`(?i)(?:A[/|I]?C['\s]*NO|Account\s*No|AVCNO|AIC\s?No)[;:.\s=]*\s*([\d\-=]+)`),
}

var krungthaiDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Date\s*[;:.]?\s*(\d{1,2}-[A-Za-z]{3}-\d{4})`),
	regexp.MustCompile(`(?i)\b(\d{1,2}-[A-Za-z]{3}-\d{4})\b`),
	regexp.MustCompile(`(?i)([A-Z]+ \d{1,2}, \d{4})`),
}

var (
	krungthaiRefPattern = regexp.MustCompile(
		`(?i)(?:Our Ref|B/C|REFERENCE NO\.|c/o.*?[:;])\s*[;:.]?\s*([\w/ -]{5,})`)
	// Bare reference codes like "IC 25/0662" or "OR12/2024".
	refCodePattern = regexp.MustCompile(`(?i)\b((?:OR|IC|EC|BC)\s?\d{2}/\d{4})\b`)
)

// Amount keywords in priority order; the generic "Amount" is last
// because it matches almost anywhere.
var krungthaiAmountKeywords = []amountKeyword{
	{pattern: regexp.MustCompile(`(?i)A[nm]ount\s*Credited`), pickLast: true},
	{pattern: regexp.MustCompile(`(?i)Total\s*Debited`)},
	{pattern: regexp.MustCompile(`(?i)Total\s*Credited`)},
	{pattern: regexp.MustCompile(`(?i)Total\s*Amount`)},
	{pattern: regexp.MustCompile(`(?i)Total\s*Value`)},
	{pattern: regexp.MustCompile(`(?i)Debit\s*Amount`)},
	{pattern: regexp.MustCompile(`(?i)Credit\s*Amount`)},
	{pattern: regexp.MustCompile(`(?i)Amount`)},
}

func (p *KrungthaiParser) ExtractChunk(text string) models.Record {
	rec := models.Record{BankName: p.BankName()}

	rec.AccountNo = extractAccount(text, krungthaiAccountPatterns)
	rec.DocumentDate = extractFirstMatch(text, krungthaiDatePatterns)
	rec.ReferenceNo = p.extractReference(text)
	rec.Transaction = detectTransaction(text)

	// An amount is never reported without a known transaction type:
	// non-advice content sharing a page (shipment receipts) is full of
	// figures that would otherwise become false positives.
	if rec.Transaction != "" && !isShipmentReceiptOnly(text) {
		rec.TotalValue = extractAmount(text, krungthaiAmountKeywords)
	}

	return rec
}

// extractReference tries the labeled form first, then the bare code. A
// labeled capture that ran into a neighboring label (account or amount
// text) is re-searched for the narrower code instead of being dropped.
func (p *KrungthaiParser) extractReference(text string) string {
	m := krungthaiRefPattern.FindStringSubmatch(text)
	if m == nil {
		if code := refCodePattern.FindStringSubmatch(text); code != nil {
			return strings.TrimSpace(code[1])
		}
		return ""
	}

	val := strings.TrimSpace(m[1])
	upper := strings.ToUpper(val)
	for _, bad := range []string{"A/C", "AMOUNT", "DATE"} {
		if strings.Contains(upper, bad) {
			if code := refCodePattern.FindStringSubmatch(val); code != nil {
				return strings.TrimSpace(code[1])
			}
			return ""
		}
	}
	return val
}

// isShipmentReceiptOnly reports whether the chunk is a shipment receipt
// with no advice banner at all.
func isShipmentReceiptOnly(text string) bool {
	return shipmentReceiptPattern.MatchString(text) && !advicePattern.MatchString(text)
}

// GenericParser is the fallback when no bank signature matched. It runs
// the Krungthai heuristics — the most tolerant of the dialects — but
// never asserts a bank name.
type GenericParser struct {
	inner KrungthaiParser
}

func (p *GenericParser) BankName() string {
	return ""
}

func (p *GenericParser) ExtractChunk(text string) models.Record {
	rec := p.inner.ExtractChunk(text)
	rec.BankName = ""
	return rec
}
