package aemxml

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/goliatone/go-aemdialog/pkg/model"
	"github.com/goliatone/go-aemdialog/pkg/render"
)

const (
	// NoActiveDialog is rendered in place of a document when there is no
	// dialog to export.
	NoActiveDialog = "<!-- No active dialog -->"

	blockIndent = "                    "

	documentHeader = `<?xml version="1.0" encoding="UTF-8"?>
<jcr:root xmlns:sling="http://sling.apache.org/jcr/sling/1.0" xmlns:granite="http://www.adobe.com/jcr/granite/1.0" xmlns:cq="http://www.day.com/jcr/cq/1.0" xmlns:jcr="http://www.jcp.org/jcr/1.0" xmlns:nt="http://www.jcp.org/jcr/nt/1.0"
jcr:primaryType="nt:unstructured"
jcr:title="`

	contentOpen = `
sling:resourceType="cq/gui/components/authoring/dialog">
<content
    jcr:primaryType="nt:unstructured"
    sling:resourceType="granite/ui/components/coral/foundation/container">
    <items jcr:primaryType="nt:unstructured">`

	documentFooter = `
    </items>
</content>
</jcr:root>`
)

// RenderDialog assembles the complete cq:dialog document. Blocks that fail to
// render are replaced by an XML comment and reported via opts; the remaining
// blocks are still emitted. A nil dialog yields NoActiveDialog.
func RenderDialog(dialog *model.Dialog, opts render.RenderOptions) string {
	if dialog == nil {
		return NoActiveDialog
	}

	var b strings.Builder
	b.WriteString(documentHeader)
	b.WriteString(Escape(dialog.Name))
	b.WriteByte('"')
	if dialog.HelpPath != "" {
		b.WriteString("\nhelpPath=\"")
		b.WriteString(Escape(dialog.HelpPath))
		b.WriteByte('"')
	}
	b.WriteString(contentOpen)

	for idx, tab := range dialog.Tabs {
		blocks := dialog.BlocksForTab(tab.ID)
		if len(blocks) == 0 {
			continue
		}

		node := tabNodeName(tab.Name, idx)
		b.WriteString("\n        <")
		b.WriteString(node)
		b.WriteString("\n            jcr:primaryType=\"nt:unstructured\"\n            jcr:title=\"")
		b.WriteString(Escape(tab.Name))
		b.WriteString("\"\n            sling:resourceType=\"")
		b.WriteString(graniteContainer)
		b.WriteString("\">\n            <items jcr:primaryType=\"nt:unstructured\">\n")

		rendered := make([]string, 0, len(blocks))
		for _, block := range blocks {
			rendered = append(rendered, indentLines(renderBlockOrComment(block, opts), blockIndent))
		}
		b.WriteString(strings.Join(rendered, "\n"))

		b.WriteString("\n            </items>\n        </")
		b.WriteString(node)
		b.WriteByte('>')
	}

	b.WriteString(documentFooter)
	return b.String()
}

func renderBlockOrComment(block model.Block, opts render.RenderOptions) string {
	out, err := RenderBlock(block)
	if err != nil {
		opts.ReportBlockError(block, render.NewBlockError(block, err))
		return errorComment(block)
	}
	return out
}

func errorComment(block model.Block) string {
	return "<!-- Error generating XML for " + commentSafe(string(block.Type)) + ": " + commentSafe(block.Name) + " -->"
}

// commentSafe keeps user text from terminating the surrounding comment.
func commentSafe(value string) string {
	for strings.Contains(value, "--") {
		value = strings.ReplaceAll(value, "--", "-")
	}
	return value
}

// tabNodeName lower-cases the tab name and strips whitespace. A name left
// empty falls back to tab<N>.
func tabNodeName(name string, idx int) string {
	node := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(name))
	if node == "" {
		return "tab" + strconv.Itoa(idx+1)
	}
	return node
}
