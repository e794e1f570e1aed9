package paradas

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// abbreviationRe finds abbreviation candidates. RE2 word boundaries are
// ASCII only, so removeAbbreviations rechecks the neighbouring runes.
var abbreviationRe = regexp.MustCompile(`\b(?:avda|av|dr|gral)\b`)

// Normalize returns the canonical form of a street name used as a matching
// key. The result is lowercase, free of diacritics and periods, has the
// abbreviations "av", "avda", "dr" and "gral" removed and single spaces
// between words. Normalize is idempotent.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = stripMarks(s)
	s = strings.ReplaceAll(s, ".", "")
	s = removeAbbreviations(s)
	return strings.Join(strings.Fields(s), " ")
}

// stripMarks decomposes s and drops nonspacing combining marks.
// Transformers keep internal state, so a fresh chain is built per call.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// removeAbbreviations drops abbreviations that stand as whole words, where
// any Unicode letter or digit counts as part of a word.
func removeAbbreviations(s string) string {
	matches := abbreviationRe.FindAllStringIndex(s, -1)
	if matches == nil {
		return s
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		if !standalone(s, m[0], m[1]) {
			continue
		}
		b.WriteString(s[last:m[0]])
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func standalone(s string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(s[:start]); isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
