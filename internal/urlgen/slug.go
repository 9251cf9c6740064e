// internal/urlgen/slug.go
//
// Slug helper.
//
// Slugify(text) converts arbitrary text into a URL-safe token restricted to
// ASCII a-z, 0-9 and "-".
//
// Rules
// -----
// 1. Trim surrounding whitespace.
// 2. Lower-case with Unicode casing rules (golang.org/x/text/cases).
// 3. Fold accented Latin letters to ASCII: decompose (NFD) and drop the
//    combining marks, so "å", "ä", "ö" become "a", "a", "o".
// 4. Convert any run of characters outside [a-z0-9-] to one "-".
// 5. Collapse consecutive "-" and trim leading / trailing "-".
//
// Notes
// -----
// • The output is a fixed point: Slugify(Slugify(s)) == Slugify(s).
// • Letters without a decomposition (ø, ß, æ) become "-".
// • Casers and transform chains keep state, so both are built per call.
package urlgen

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlug = regexp.MustCompile(`[^a-z0-9-]+`)
	dashes  = regexp.MustCompile(`-{2,}`)
)

// Slugify converts text → lower-kebab ASCII.  Empty input, or input with no
// usable characters, yields "".
func Slugify(text string) string {
	s := cases.Lower(language.Und).String(strings.TrimSpace(text))

	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}

	s = nonSlug.ReplaceAllString(s, "-")
	s = dashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
