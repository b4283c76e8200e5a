package report

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// typographic maps punctuation the PDF core fonts cannot encode to ASCII look-alikes.
var typographic = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\u2014", "-", // em dash
	"\u2013", "-", // en dash
	"\u2012", "-",
	"\u2010", "-",
	"\u2011", "-",
	"\u2212", "-",
	"\u2018", "'",
	"\u2019", "'",
	"\u201a", "'",
	"\u201b", "'",
	"\u2032", "'",
	"\u201c", "\"",
	"\u201d", "\"",
	"\u201e", "\"",
	"\u2033", "\"",
	"\u00ab", "\"",
	"\u00bb", "\"",
	"\u00a0", " ", // no-break space
	"\u2007", " ",
	"\u2009", " ",
	"\u202f", " ",
	"\u2026", "...",
	"\u2022", "*",
)

func printableASCII(r rune) rune {
	if r == '\n' || r == '\t' || (r >= 0x20 && r < 0x7f) {
		return r
	}
	return '?'
}

// SanitizeText rewrites s so that every rune is printable ASCII (plus newline and tab).
// Known typographic characters get their visual equivalent, accented letters lose their
// marks, and anything left becomes '?'.
func SanitizeText(s string) string {
	s = typographic.Replace(s)
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), runes.Map(printableASCII))
	out, _, err := transform.String(fold, s)
	if err != nil {
		return strings.Map(printableASCII, s)
	}
	return out
}
