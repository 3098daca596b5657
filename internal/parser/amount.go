package parser

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Currency-looking tokens: an optional 3-letter currency code, Thai
// currency word or currency symbol, then comma/space-grouped digits with
// exactly two decimal places.
var (
	amountTokenPattern = regexp.MustCompile(`(?:[A-Z]{3}|[ก-ฮ]{3}|[฿$])?[\s.]*((?:\d{1,3}[\s,]*)+\.\d{2})`)
	// Same token but the currency prefix is mandatory. Used where a
	// dialect trusts currency-tagged figures over bare ones.
	currencyAmountPattern = regexp.MustCompile(`(?:[A-Z]{3}|[ก-ฮ]{3}|[฿$])[\s.]*((?:\d{1,3}[\s,]*)+\.\d{2})`)

	amountSeparatorPattern = regexp.MustCompile(`[\s,]`)
)

// findAmounts returns every currency-looking token in text, in order,
// with thousand separators and internal whitespace stripped. A token
// directly followed by another digit has more than two decimal places
// (OCR run-on) and is skipped. RE2 has no lookahead, so the trailing
// guard is checked against the match index instead.
func findAmounts(text string) []string {
	return findAmountTokens(text, amountTokenPattern)
}

// findCurrencyAmounts is findAmounts restricted to tokens preceded by a
// currency code or symbol.
func findCurrencyAmounts(text string) []string {
	return findAmountTokens(text, currencyAmountPattern)
}

func findAmountTokens(text string, pattern *regexp.Regexp) []string {
	var vals []string
	for _, m := range pattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[2], m[3]
		if end < len(text) && text[end] >= '0' && text[end] <= '9' {
			continue
		}
		vals = append(vals, amountSeparatorPattern.ReplaceAllString(text[start:end], ""))
	}
	return vals
}

// canonicalAmount validates a separator-stripped token as a non-negative
// decimal and renders it with exactly two fractional digits. Malformed
// tokens yield "" rather than an error.
func canonicalAmount(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return ""
	}
	return d.StringFixed(2)
}
