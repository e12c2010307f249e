// Package classify implements the keyword classification core: text
// canonicalization, whole-word keyword matching, the party/topic/leader
// classifiers and the timestamp day parser.
//
// All classifiers are pure functions over immutable keyword configuration
// and are safe for concurrent use.
package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and removes combining marks (Mn), so
// "saúde" and "saude" share one canonical form.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Canonical produces the matching surface for a text: diacritics
// stripped, lowercased, and every rune that is not a word character,
// whitespace or '#' removed. Hashtags survive as distinguishable tokens.
//
// Canonical is idempotent: Canonical(Canonical(s)) == Canonical(s).
func Canonical(text string) string {
	if text == "" {
		return ""
	}

	stripped, _, err := transform.String(stripMarks, text)
	if err != nil {
		stripped = text
	}
	stripped = strings.ToLower(stripped)

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if r == '#' || r == '_' || unicode.IsSpace(r) || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
