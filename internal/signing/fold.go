package signing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldName normalizes a person name for comparison: accents stripped, case
// lowered, runs of whitespace collapsed. "José  da Silva" and "jose da silva"
// fold to the same string, which is what the signing page needs when the
// operator typed the name with accents and the student without.
func FoldName(name string) string {
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// ExactName lowercases and trims only, the strict comparison mode.
func ExactName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
