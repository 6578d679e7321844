package matching

import (
	"strings"
	"unicode"
)

// NormalizeName canonicalizes a free-text item name into the key used for all
// coverage decisions: lower-cased, characters that are neither letters, digits
// nor whitespace removed, remaining tokens joined with a single underscore.
// Example: "Brodo di Verdure!" -> "brodo_di_verdure"
//
// The underscore is read as a token separator so that already normalized keys
// map onto themselves. Deleting it like other punctuation would turn "a_b"
// into "ab" and break idempotence. The key must stay stable: no Unicode
// folding, stemming or synonyms.
func NormalizeName(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case isAlphanumeric(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '_':
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "_")
}

// ContainsName reports whether the normalized form of name contains the
// normalized form of query.
func ContainsName(name, query string) bool {
	return strings.Contains(NormalizeName(name), NormalizeName(query))
}

// isAlphanumeric matches letters and any numeric rune
func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
