package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/cashflow-ocr/internal/models"
)

// Parser extracts advice fields from one chunk of OCR text. Extractors
// never fail: fields that cannot be found stay empty, and discard/merge
// decisions belong to the pipeline in extract.go.
type Parser interface {
	// ExtractChunk returns a partial record for a single text chunk.
	ExtractChunk(text string) models.Record
	// BankName returns the bank name this dialect asserts, or "" for
	// the generic fallback.
	BankName() string
}

// New returns a parser for the given dialect. Unknown dialects get the
// generic fallback rather than an error; the engine degrades instead of
// aborting.
func New(bank models.BankType) Parser {
	switch bank {
	case models.BankKrungthai:
		return &KrungthaiParser{}
	case models.BankCIMB:
		return &CIMBParser{}
	default:
		return &GenericParser{}
	}
}

// Detect identifies the bank dialect from the full document text. The
// decision is made once per document: letterhead and footer text is
// stable across pages, so a single global choice is more robust than a
// per-chunk guess.
func Detect(text string) models.BankType {
	upper := strings.ToUpper(text)
	if strings.Contains(upper, "KRUNGTHAI") || strings.Contains(upper, "KRUNG THAI") {
		return models.BankKrungthai
	}
	if strings.Contains(upper, "CIMB") {
		return models.BankCIMB
	}
	return models.BankGeneric
}

// ForText picks the dialect parser for a whole document.
func ForText(text string) Parser {
	return New(Detect(text))
}

// Transaction type keywords. A type is only ever assigned on an explicit
// keyword match, never guessed from amount sign.
var (
	debitAdvicePattern  = regexp.MustCompile(`(?i)DEBIT\s*ADVICE`)
	creditAdvicePattern = regexp.MustCompile(`(?i)CREDIT\s*ADVICE`)
	balanceFwdPattern   = regexp.MustCompile(`(?i)BALANCE\s+(?:BROUGHT|CARRIED)\s+FORWARD|\bB/F\s+BALANCE`)

	advicePattern          = regexp.MustCompile(`(?i)ADVICE`)
	shipmentReceiptPattern = regexp.MustCompile(`(?i)Shipment\s*Receipt`)
)

func detectTransaction(text string) models.TransactionType {
	switch {
	case debitAdvicePattern.MatchString(text):
		return models.Debit
	case creditAdvicePattern.MatchString(text):
		return models.Credit
	case balanceFwdPattern.MatchString(text):
		return models.BalanceForward
	}
	return ""
}

// extractAccount tries each account pattern in order. A captured value
// shorter than 5 characters is OCR noise; the search moves on to the
// next, more permissive pattern. "=" is a common misread of "-".
func extractAccount(text string, patterns []*regexp.Regexp) string {
	for _, pat := range patterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		val := strings.ReplaceAll(strings.TrimSpace(m[1]), "=", "-")
		if len(val) >= 5 {
			return val
		}
	}
	return ""
}

// extractFirstMatch returns the first capture of the first pattern that
// matches, trimmed.
func extractFirstMatch(text string, patterns []*regexp.Regexp) string {
	for _, pat := range patterns {
		if m := pat.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// amountKeyword pairs an amount-introducing keyword with its tie-break
// policy for the look-ahead window that follows it.
type amountKeyword struct {
	pattern *regexp.Regexp
	// pickLast selects the last token in the window instead of the
	// first. Only "Amount Credited" uses it: that keyword's relevant
	// figure appears after ancillary charge lines in observed layouts.
	pickLast bool
}

// extractAmount scans the keyword table in priority order and takes the
// chosen token from the text after the matching keyword. When no keyword
// matches, the absolute fallback is the last currency-looking token
// anywhere in the chunk.
func extractAmount(text string, keywords []amountKeyword) string {
	for _, kw := range keywords {
		loc := kw.pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		vals := findAmounts(text[loc[1]:])
		if len(vals) == 0 {
			continue
		}
		if kw.pickLast {
			return canonicalAmount(vals[len(vals)-1])
		}
		return canonicalAmount(vals[0])
	}

	if vals := findAmounts(text); len(vals) > 0 {
		return canonicalAmount(vals[len(vals)-1])
	}
	return ""
}
