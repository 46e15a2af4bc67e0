package storage

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// SanitizeName ASCII-folds accented characters and replaces anything that is
// not a letter or digit with an underscore, so student and course names can
// safely become object keys.
func SanitizeName(raw string) string {
	folder := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, raw)
	if err != nil {
		folded = raw
	}
	cleaned := nonAlphanumeric.ReplaceAllString(folded, "_")
	return strings.Trim(cleaned, "_")
}

// DraftPath builds the object key for a freshly generated contract PDF.
func DraftPath(prefix, studentName, courseName string) string {
	return fmt.Sprintf("%s/Minuta_%s_%s.pdf", strings.Trim(prefix, "/"), SanitizeName(studentName), SanitizeName(courseName))
}

// SignedPath derives the object key of the stamped variant from the draft key.
func SignedPath(draftPath string) string {
	if strings.HasSuffix(draftPath, ".pdf") {
		return strings.TrimSuffix(draftPath, ".pdf") + "_assinado.pdf"
	}
	return draftPath + "_assinado"
}
