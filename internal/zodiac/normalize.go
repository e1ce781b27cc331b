package zodiac

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds case and strips diacritics so that "Tauro", "TAURO" and
// "táuro" all compare equal. It never fails; the empty string maps to itself.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	// a transform.Chain keeps state, so build one per call. All marks go,
	// spacing and enclosing ones included, not only non-spacing accents.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.M)))
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
