package lexicon

import "strings"

// smartQuotes maps curly Unicode quote marks to their ASCII equivalents
// before stripping, so "don't" typed with U+2019 still normalizes the same
// as the straight-quote spelling.
var smartQuotes = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", "\"",
	"”", "\"",
)

// Normalize lowercases w, folds smart quotes to ASCII, and keeps only
// [a-z0-9'-], matching the lexicon's own normalization so lookups agree.
func Normalize(w string) string {
	w = smartQuotes.Replace(w)
	w = strings.ToLower(w)

	var b strings.Builder
	b.Grow(len(w))
	for _, r := range w {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '\'' || r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
