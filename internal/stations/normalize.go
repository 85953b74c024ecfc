package stations

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the comparison key of a station name: lower-cased, accents removed,
// punctuation turned into single spaces and surrounding whitespace trimmed.
//
// Normalize is total and idempotent; "Émile-Zola" and "emile zola" share a key.
func Normalize(name string) string {
	if name == "" {
		return ""
	}

	// transform.Chain keeps internal state, so it is built per call.
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripper, strings.ToLower(name))
	if err != nil {
		stripped = strings.ToLower(name)
	}

	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		// hyphens, underscores, apostrophes, quotes and any other symbol
		return ' '
	}, stripped)

	return strings.Join(strings.Fields(mapped), " ")
}

// Tokens splits a normalized key into its words.
func Tokens(key string) []string {
	return strings.Fields(key)
}
