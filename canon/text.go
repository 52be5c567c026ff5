package canon

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds case, strips diacritics, collapses runs of whitespace,
// dashes and underscores into single spaces, and trims the result.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// Casers and transformer chains are stateful, so build them per call.
	folded := cases.Fold().String(s)
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), folded)
	if err == nil {
		folded = stripped
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		if isSeparator(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isSeparator reports whether r collapses into a single space.
func isSeparator(r rune) bool {
	switch r {
	case '-', '_', '‐', '‑', '‒', '–', '—':
		return true
	}
	return unicode.IsSpace(r)
}

// titleCase renders normalized text for display, e.g. "new york" -> "New York".
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// words normalizes s and reduces it to space-separated letter and digit runs,
// e.g. "San Francisco, CA" -> "san francisco ca".
func words(s string) string {
	return strings.Join(strings.FieldsFunc(Normalize(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), " ")
}

// containsPhrase reports whether phrase occurs in text on word boundaries.
// Both arguments must already be reduced with words.
func containsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	return strings.Contains(" "+text+" ", " "+phrase+" ")
}
