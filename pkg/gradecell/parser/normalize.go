package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds s into the key used to compare names and labels: accents
// removed, case folded, surrounding whitespace trimmed and inner runs of
// whitespace collapsed to one space. "  González  GONZÁLEZ, Marta" and
// "gonzalez gonzalez, marta" normalize to the same key.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = cases.Fold().String(folded)
	return strings.Join(strings.Fields(folded), " ")
}
