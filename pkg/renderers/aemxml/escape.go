package aemxml

import (
	"fmt"
	"strings"
)

// The replacer scans the input once, so "&" produced by an earlier entity is
// never escaped again.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape converts arbitrary text into XML-attribute-safe text.
func Escape(value string) string {
	return attrEscaper.Replace(value)
}

// EscapeValue escapes strings and formats every other value unchanged.
func EscapeValue(value any) string {
	switch v := value.(type) {
	case string:
		return Escape(v)
	case fmt.Stringer:
		return Escape(v.String())
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
