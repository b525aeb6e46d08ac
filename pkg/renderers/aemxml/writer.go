package aemxml

import (
	"strconv"
	"strings"
)

const (
	primaryTypeUnstructured = "nt:unstructured"
	booleanTrue             = "{Boolean}true"
)

// elementWriter emits the one-attribute-per-line layout used for dialog
// nodes:
//
//	<name
//	jcr:primaryType="nt:unstructured"
//	attr="value"
//	/>
type elementWriter struct {
	b strings.Builder
}

func (w *elementWriter) open(name string) {
	w.b.WriteByte('<')
	w.b.WriteString(name)
	w.b.WriteByte('\n')
}

// attr writes an escaped attribute.
func (w *elementWriter) attr(name, value string) {
	w.rawAttr(name, Escape(value))
}

// attrIfSet writes an escaped attribute when value is not empty.
func (w *elementWriter) attrIfSet(name, value string) {
	if value == "" {
		return
	}
	w.attr(name, value)
}

// rawAttr writes an attribute whose value is already safe (fixed strings,
// numbers).
func (w *elementWriter) rawAttr(name, value string) {
	w.b.WriteString(name)
	w.b.WriteString(`="`)
	w.b.WriteString(value)
	w.b.WriteString("\"\n")
}

// boolAttr writes {Boolean}true when on. False booleans are omitted.
func (w *elementWriter) boolAttr(name string, on bool) {
	if on {
		w.rawAttr(name, booleanTrue)
	}
}

// intAttr writes a positive integer attribute.
func (w *elementWriter) intAttr(name string, value int) {
	if value > 0 {
		w.rawAttr(name, strconv.Itoa(value))
	}
}

func (w *elementWriter) selfClose() {
	w.b.WriteString("/>")
}

func (w *elementWriter) endOpen() {
	w.b.WriteString(">\n")
}

func (w *elementWriter) closeTag(name string) {
	w.b.WriteString("</")
	w.b.WriteString(name)
	w.b.WriteByte('>')
}

// line writes a single body line followed by a newline.
func (w *elementWriter) line(parts ...string) {
	for _, part := range parts {
		w.b.WriteString(part)
	}
	w.b.WriteByte('\n')
}

// fragment writes a multi-line fragment, prefixing every line with indent.
func (w *elementWriter) fragment(fragment, indent string) {
	w.b.WriteString(indentLines(fragment, indent))
	w.b.WriteByte('\n')
}

func (w *elementWriter) String() string {
	return w.b.String()
}

func indentLines(fragment, indent string) string {
	lines := strings.Split(fragment, "\n")
	for idx, line := range lines {
		lines[idx] = indent + line
	}
	return strings.Join(lines, "\n")
}
