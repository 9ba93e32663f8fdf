package dataset

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key canonicalizes a region or occupation label for lookup: lowercase,
// accents stripped, whitespace collapsed. Query parameters arrive from
// browsers and shell scripts that rarely type "São Paulo" correctly, so
// matching runs on keys while the table keeps the published labels.
func Key(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(out)
	return strings.Join(strings.Fields(out), " ")
}

// Resolve finds the published label whose Key matches the candidate, or
// returns ok=false when nothing matches.
func Resolve(labels []string, candidate string) (string, bool) {
	want := Key(candidate)
	for _, l := range labels {
		if Key(l) == want {
			return l, true
		}
	}
	return "", false
}
