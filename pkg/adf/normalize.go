// Package adf extracts structured data from the portal's server-rendered
// ADF pages: result tables, course detail documents, and the label/value
// layouts the framework produces. Everything here is best-effort and total:
// extraction degrades to partial results rather than failing, because the
// same logical page renders with or without headers, labels, or data
// depending on the query.
package adf

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and removes combining marks, so "MEDELLÍN"
// compares equal to "medellin" after case folding.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases s and strips diacritical marks. Used for every fuzzy
// comparison against portal text: displayed labels are accented and
// abbreviated while caller-supplied queries are casual.
func Normalize(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
