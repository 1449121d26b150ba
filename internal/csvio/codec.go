// Package csvio implements the budget file format: an ad-hoc CSV dialect
// with quote-aware field splitting, currency-formatted amounts, and a lenient
// row-skipping import policy.
package csvio

import (
	"strconv"
	"strings"
)

// SplitLine splits a CSV line into fields, honoring commas inside quoted
// fields. Quote characters toggle the in-quotes state and are dropped from
// the output. Doubled quotes inside a quoted field are NOT un-escaped; this
// matches the historical behavior of the format and is covered by tests.
func SplitLine(line string) []string {
	fields := make([]string, 0, 8)
	var b strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	fields = append(fields, b.String())
	return fields
}

// EscapeField makes a value safe to embed in a CSV row. Values without
// commas, quotes, or newlines pass through unchanged; anything else has its
// quotes doubled and is wrapped in quotes.
func EscapeField(v string) string {
	if !strings.ContainsAny(v, ",\"\n") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// ParseAmount parses a currency-formatted amount such as "$1,234.56" into a
// float. Dollar signs and thousands separators are stripped first. Malformed
// or empty input yields 0.0 rather than an error, so a single bad cell never
// aborts an import.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(s))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatAmount renders an amount the way the budget file stores it, with two
// decimal places and no currency symbol.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
