// Package normalize canonicalizes free-text city and region names for
// grouping and geographic matching.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops combining marks, and recomposes.
// "Évry-Courcouronnes" -> "Evry-Courcouronnes".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// connectors are the French connector words dropped during region matching.
// "saint" is abbreviated rather than dropped so "Saint-Denis" and "St-Denis"
// normalize to the same token.
var connectors = map[string]string{
	"saint": "st",
	"l":     "",
	"le":    "",
	"la":    "",
	"les":   "",
	"sur":   "",
	"en":    "",
	"des":   "",
	"sous":  "",
}

// City title-cases each whitespace-separated token: uppercase first letter,
// lowercase rest. It is used for display and as the city grouping key, so
// sessions tagged "paris" and "Paris" aggregate together.
func City(raw string) string {
	fields := strings.Fields(raw)
	for i, f := range fields {
		r := []rune(strings.ToLower(f))
		r[0] = unicode.ToUpper(r[0])
		fields[i] = string(r)
	}
	return strings.Join(fields, " ")
}

// RegionToken normalizes a name for geographic resolution: strips diacritics,
// lowercases, treats hyphens and apostrophes as spaces, removes connector
// words, and collapses whitespace. The result is deliberately lossy: it
// conflates "Le Blanc-Mesnil" and "Blanc Mesnil" to maximize recall against
// the reference table. No stemming or edit-distance matching beyond this.
func RegionToken(raw string) string {
	s, _, err := transform.String(stripMarks, raw)
	if err != nil {
		s = raw
	}
	s = strings.ToLower(s)
	s = strings.NewReplacer("-", " ", "'", " ", "’", " ").Replace(s)

	fields := strings.Fields(s)
	out := fields[:0]
	for _, f := range fields {
		if repl, ok := connectors[f]; ok {
			if repl != "" {
				out = append(out, repl)
			}
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}
