// Package util holds small helpers shared across packages.
package util

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
)

var (
	unsafeFilenameRunes = regexp.MustCompile(`[\\/<>:;"'|?!*{}#%&^+,~\s]+`)
	filenameTrim        = "_-."
)

// SanitizeFilename turns s into a name that is valid on every platform.
func SanitizeFilename(s string) string {
	s = unsafeFilenameRunes.ReplaceAllString(s, "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, filenameTrim)
}

// Quantify prefixes the singular or plural noun with count.
func Quantify(count int, singular, plural string) string {
	return fmt.Sprintf("%d %s", count, lo.Ternary(count == 1, singular, plural))
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
