package blocks_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-aemdialog/pkg/blocks"
	"github.com/goliatone/go-aemdialog/pkg/model"
)

func TestDefaultRegistry_CoversEveryFieldType(t *testing.T) {
	registry := blocks.NewDefaultRegistry()

	if diff := cmp.Diff(model.FieldTypes(), registry.Types(), cmpSortTypes()); diff != "" {
		t.Fatalf("registered types mismatch (-want +got):\n%s", diff)
	}

	for _, fieldType := range registry.Types() {
		definition, ok := registry.Definition(fieldType)
		if !ok {
			t.Fatalf("definition for %q missing", fieldType)
		}
		if got := definition.Defaults().FieldType(); got != fieldType {
			t.Fatalf("defaults for %q produce %q", fieldType, got)
		}
	}
}

func TestRegistry_NewBlockUsesFreshDefaults(t *testing.T) {
	registry := blocks.NewDefaultRegistry()

	first, err := registry.NewBlock(model.FieldTypeSelect, "")
	if err != nil {
		t.Fatalf("new block: %v", err)
	}
	second, err := registry.NewBlock(model.FieldTypeSelect, "size")
	if err != nil {
		t.Fatalf("new block: %v", err)
	}

	if first.Name != "select" {
		t.Fatalf("default name = %q, want select", first.Name)
	}
	if second.Name != "size" {
		t.Fatalf("name = %q, want size", second.Name)
	}

	first.Properties.(model.SelectProperties).Options[0].Text = "mutated"
	if got := second.Properties.(model.SelectProperties).Options[0].Text; got != "Option 1" {
		t.Fatalf("defaults shared between blocks: %q", got)
	}
}

func TestRegistry_RejectsMismatchedDefaults(t *testing.T) {
	registry := blocks.New()
	err := registry.Register(blocks.Definition{
		Type:     model.FieldTypeTextArea,
		Defaults: func() model.Properties { return model.TextFieldProperties{} },
	})
	if err == nil {
		t.Fatal("expected mismatched defaults to be rejected")
	}

	if _, err := registry.NewBlock(model.FieldTypeTextArea, "x"); err == nil {
		t.Fatal("expected unregistered type to fail")
	}
}

func TestRegistry_CloneIsIsolated(t *testing.T) {
	base := blocks.NewDefaultRegistry()
	clone := base.Clone()

	clone.MustRegister(blocks.Definition{
		Type:     model.FieldTypeHeading,
		Label:    "Section Title",
		Defaults: func() model.Properties { return model.HeadingProperties{Level: 2} },
	})

	original, _ := base.Definition(model.FieldTypeHeading)
	if original.Label != "Heading" {
		t.Fatalf("base registry mutated: %q", original.Label)
	}
	if got := clone.Types(); len(got) != len(base.Types()) {
		t.Fatalf("override changed catalog size: %v", got)
	}
}

func TestPalette_SanitizesCustomBlockNames(t *testing.T) {
	registry := blocks.NewDefaultRegistry()
	entries := registry.Palette([]model.CustomBlock{
		{ID: "c1", Name: `<b>Hero</b> banner<script>alert(1)</script>`, ImageURL: "data:image/png;base64,AAA"},
	})

	last := entries[len(entries)-1]
	if last.CustomBlockID != "c1" || last.Type != model.FieldTypeCustom {
		t.Fatalf("unexpected custom entry %+v", last)
	}
	if last.Label != "Hero banner" {
		t.Fatalf("label = %q, want sanitized text", last.Label)
	}
	for _, entry := range entries[:len(entries)-1] {
		if entry.Type == model.FieldTypeCustom {
			t.Fatal("generic custom type should not appear in the palette")
		}
	}
}

func cmpSortTypes() cmp.Option {
	return cmp.Transformer("sorted", func(in []model.FieldType) map[model.FieldType]bool {
		out := make(map[model.FieldType]bool, len(in))
		for _, fieldType := range in {
			out[fieldType] = true
		}
		return out
	})
}
