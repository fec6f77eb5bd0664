package titles

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// leadingArticles are the article tokens stripped from the front of a title
// when article dropping is requested. Covers English, French, Spanish, and
// Italian forms seen in TMDB titles.
var leadingArticles = map[string]struct{}{
	"the": {}, "a": {}, "an": {},
	"le": {}, "la": {}, "les": {}, "un": {}, "une": {}, "des": {},
	"el": {}, "los": {}, "las": {},
	"il": {}, "lo": {}, "gli": {}, "i": {},
}

// Normalize canonicalizes a title for comparison: optional single leading
// article removal, lowercase, diacritic folding, then everything that is not
// a lowercase ASCII letter or digit is dropped. Empty input yields "".
func Normalize(text string, dropArticles bool) string {
	if dropArticles {
		text = stripLeadingArticle(text)
	}
	text = foldDiacritics(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// foldDiacritics decomposes accented characters and discards the combining
// marks, so "Amélie" folds to "Amelie".
func foldDiacritics(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return folded
}

// stripLeadingArticle removes at most one leading article token, including
// the elided "l'" form, and trims the separator that followed it.
func stripLeadingArticle(text string) string {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	for _, elided := range []string{"l'", "l’"} {
		if strings.HasPrefix(lower, elided) {
			return strings.TrimLeft(trimmed[len(elided):], " \t")
		}
	}

	token, rest, found := strings.Cut(trimmed, " ")
	if !found {
		return trimmed
	}
	if _, ok := leadingArticles[strings.ToLower(token)]; ok {
		return strings.TrimLeft(rest, " \t")
	}
	return trimmed
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// ExtractYear pulls a 4-digit year token (19xx/20xx) out of a raw guess.
// It returns the remaining title fragment with parentheses stripped and
// trimmed, and the year as a string, empty when no token was present.
func ExtractYear(raw string) (fragment, year string) {
	year = yearPattern.FindString(raw)
	fragment = raw
	if year != "" {
		fragment = strings.Replace(fragment, year, "", 1)
	}
	fragment = strings.NewReplacer("(", "", ")", "").Replace(fragment)
	return strings.TrimSpace(fragment), year
}
