package render

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename derives a download name from a dialog name: whitespace runs become
// hyphens and the result is lower-cased. Leading and trailing whitespace is
// not trimmed, so " Hero " gives "-hero-". An empty name falls back to
// "dialog".
func Filename(name, extension string) string {
	base := "dialog"
	if name != "" {
		base = strings.ToLower(whitespaceRun.ReplaceAllString(name, "-"))
	}
	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return base + extension
}
