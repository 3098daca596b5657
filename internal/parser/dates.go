package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04", "may": "05", "jun": "06",
	"jul": "07", "aug": "08", "sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// Supported date layouts, tried in order. The first match wins.
var (
	// DD-Mon-YYYY (e.g. "02-Dec-2025")
	dateDashMonPattern = regexp.MustCompile(`^(\d{1,2})-([A-Za-z]{3})-(\d{4})`)
	// DD/MM/YYYY or DD-MM-YYYY
	dateNumericPattern = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
	// Month DD, YYYY (e.g. "December 2, 2025")
	dateLongPattern = regexp.MustCompile(`^([A-Za-z]+)\s+(\d{1,2}),\s*(\d{4})`)
	// YYYY-MM-DD or YYYY/MM/DD, ignoring any trailing time component
	dateISOPattern = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)
)

// NormalizeDate canonicalizes an extracted date string to ISO 8601
// (YYYY-MM-DD). Unrecognized input is returned unchanged so the caller
// never loses the original value; empty input stays empty.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if m := dateDashMonPattern.FindStringSubmatch(s); m != nil {
		mon, ok := monthNumbers[strings.ToLower(m[2])]
		if !ok {
			mon = "01"
		}
		return isoDate(m[3], mon, m[1])
	}
	if m := dateNumericPattern.FindStringSubmatch(s); m != nil {
		return isoDate(m[3], m[2], m[1])
	}
	if m := dateLongPattern.FindStringSubmatch(s); m != nil {
		mon := "01"
		for name, num := range monthNumbers {
			if strings.HasPrefix(strings.ToLower(m[1]), name) {
				mon = num
				break
			}
		}
		return isoDate(m[3], mon, m[2])
	}
	if m := dateISOPattern.FindStringSubmatch(s); m != nil {
		return isoDate(m[1], m[2], m[3])
	}

	return s
}

func isoDate(year, month, day string) string {
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	return fmt.Sprintf("%s-%02d-%02d", year, m, d)
}
