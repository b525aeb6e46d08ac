package blocks

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-aemdialog/pkg/model"
)

// PaletteEntry is one item the user can place on a dialog: either a built-in
// field type or a project custom block.
type PaletteEntry struct {
	Type          model.FieldType `json:"type"`
	Name          string          `json:"name"`
	Label         string          `json:"label"`
	Icon          string          `json:"icon,omitempty"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	CustomBlockID string          `json:"customBlockId,omitempty"`
}

// Palette lists the registered definitions followed by the supplied custom
// blocks. The generic custom type is omitted: custom blocks are only placed
// from a concrete palette entry.
func (r *Registry) Palette(custom []model.CustomBlock) []PaletteEntry {
	definitions := r.Definitions()
	entries := make([]PaletteEntry, 0, len(definitions)+len(custom))
	for _, definition := range definitions {
		if definition.Type == model.FieldTypeCustom {
			continue
		}
		entries = append(entries, PaletteEntry{
			Type:  definition.Type,
			Name:  definition.Name,
			Label: definition.Label,
			Icon:  definition.Icon,
		})
	}
	for _, block := range custom {
		entries = append(entries, PaletteEntry{
			Type:          model.FieldTypeCustom,
			Name:          "custom",
			Label:         SanitizeLabel(block.Name),
			ImageURL:      block.ImageURL,
			CustomBlockID: block.ID,
		})
	}
	return entries
}

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// SanitizeLabel strips any markup from user supplied display text. The
// result is plain text: entities produced by the sanitizer are decoded again
// so renderers escape it exactly once.
func SanitizeLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(labelPolicy.Sanitize(trimmed)))
}
