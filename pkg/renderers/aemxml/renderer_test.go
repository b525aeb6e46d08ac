package aemxml_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-aemdialog/pkg/model"
	"github.com/goliatone/go-aemdialog/pkg/render"
	"github.com/goliatone/go-aemdialog/pkg/renderers/aemxml"
	"github.com/goliatone/go-aemdialog/pkg/testsupport"
)

func TestRenderer_Contract(t *testing.T) {
	dialog := testsupport.MustLoadDialog(t, filepath.Join("testdata", "hero_project.json"))

	renderer := aemxml.New()
	output, err := renderer.Render(testsupport.Context(), &dialog, render.RenderOptions{
		OnBlockError: func(block model.Block, err error) {
			t.Fatalf("unexpected block error for %s: %v", block.Name, err)
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	goldenPath := filepath.Join("testdata", "dialog.golden.xml")
	if testsupport.WriteMaybeGolden(t, goldenPath, output) {
		return
	}

	want := testsupport.MustReadGolden(t, goldenPath)
	if diff := testsupport.CompareGolden(string(want), string(output)); diff != "" {
		t.Fatalf("xml mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_Metadata(t *testing.T) {
	renderer := aemxml.New()
	if renderer.Name() != "aem-xml" {
		t.Fatalf("name = %q", renderer.Name())
	}
	if renderer.ContentType() != "application/xml" || renderer.FileExtension() != ".xml" {
		t.Fatalf("unexpected metadata %q %q", renderer.ContentType(), renderer.FileExtension())
	}
}

func TestRenderer_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dialog := testsupport.HeadlineDialog()
	if _, err := aemxml.New().Render(ctx, &dialog, render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRenderDialog_IsDeterministic(t *testing.T) {
	dialog := testsupport.MustLoadDialog(t, filepath.Join("testdata", "hero_project.json"))

	first := aemxml.RenderDialog(&dialog, render.RenderOptions{})
	second := aemxml.RenderDialog(&dialog, render.RenderOptions{})
	if first != second {
		t.Fatal("rendering the same dialog twice produced different output")
	}
}

func TestRenderDialog_HeadlineTextField(t *testing.T) {
	dialog := testsupport.HeadlineDialog()
	out := aemxml.RenderDialog(&dialog, render.RenderOptions{})

	if got := strings.Count(out, "<headline\n"); got != 1 {
		t.Fatalf("headline elements = %d, want 1\n%s", got, out)
	}
	for _, want := range []string{
		`fieldLabel="Headline"`,
		`name="./headline"`,
		`required="{Boolean}true"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %s\n%s", want, out)
		}
	}
	if strings.Contains(out, "value=") {
		t.Fatalf("empty defaultValue should not emit value\n%s", out)
	}
	if strings.Contains(out, "helpPath") {
		t.Fatalf("empty helpPath should be omitted\n%s", out)
	}
}

func TestRenderDialog_SkipsEmptyTabs(t *testing.T) {
	dialog := testsupport.HeadlineDialog()
	dialog.Tabs = append(dialog.Tabs, model.Tab{ID: "t2", Name: "Advanced"})

	out := aemxml.RenderDialog(&dialog, render.RenderOptions{})
	if strings.Contains(out, "<advanced") || strings.Contains(out, `jcr:title="Advanced"`) {
		t.Fatalf("empty tab should not emit a container\n%s", out)
	}
	if !strings.Contains(out, "<properties\n") {
		t.Fatalf("populated tab container missing\n%s", out)
	}
}

func TestRenderDialog_TabNameFallback(t *testing.T) {
	dialog := testsupport.HeadlineDialog()
	dialog.Tabs[0].Name = " \t "

	out := aemxml.RenderDialog(&dialog, render.RenderOptions{})
	if !strings.Contains(out, "<tab1\n") || !strings.Contains(out, "</tab1>") {
		t.Fatalf("expected tab1 fallback container\n%s", out)
	}
}

func TestRenderDialog_TabNodeNameKeepsLetters(t *testing.T) {
	cases := map[string]string{
		"Imágenes":               "imágenes",
		"Configuración Avanzada": "configuraciónavanzada",
		"XML Options":            "xmloptions",
		"1st Tab":                "1sttab",
	}
	for name, node := range cases {
		t.Run(name, func(t *testing.T) {
			dialog := testsupport.HeadlineDialog()
			dialog.Tabs[0].Name = name

			out := aemxml.RenderDialog(&dialog, render.RenderOptions{})
			if !strings.Contains(out, "<"+node+"\n") || !strings.Contains(out, "</"+node+">") {
				t.Fatalf("expected %s container\n%s", node, out)
			}
			if !strings.Contains(out, `jcr:title="`+name+`"`) {
				t.Fatalf("tab title should keep the original name\n%s", out)
			}
		})
	}
}

func TestRenderDialog_MalformedBlockBecomesComment(t *testing.T) {
	broken := model.Block{
		ID:         "b2",
		Type:       model.FieldTypeSelect,
		Name:       "size",
		TabID:      "default",
		Properties: model.RawProperties{Kind: model.FieldTypeSelect, Err: `property "options" missing`},
	}
	dialog := testsupport.HeadlineDialog()
	dialog.Blocks = append(dialog.Blocks, broken, testsupport.Block("b3", model.CheckboxProperties{Text: "Show"}, "cta"))

	var reported []error
	out := aemxml.RenderDialog(&dialog, render.RenderOptions{
		OnBlockError: func(block model.Block, err error) {
			if block.ID != "b2" {
				t.Fatalf("unexpected block reported: %s", block.ID)
			}
			reported = append(reported, err)
		},
	})

	if !strings.Contains(out, "                    <!-- Error generating XML for select: size -->") {
		t.Fatalf("missing error comment\n%s", out)
	}
	if !strings.Contains(out, "<headline\n") || !strings.Contains(out, "<cta\n") {
		t.Fatalf("remaining blocks should still render\n%s", out)
	}
	if len(reported) != 1 {
		t.Fatalf("reported %d errors, want 1", len(reported))
	}
	var blockErr *render.BlockError
	if !errors.As(reported[0], &blockErr) || blockErr.Name != "size" {
		t.Fatalf("expected BlockError for size, got %v", reported[0])
	}
	if !errors.Is(reported[0], aemxml.ErrMalformedProperties) {
		t.Fatalf("expected ErrMalformedProperties, got %v", reported[0])
	}
}

func TestRenderDialog_ErrorCommentCannotBreakOut(t *testing.T) {
	dialog := testsupport.DialogWith("Broken", model.Block{
		ID:    "b1",
		Type:  model.FieldType("carousel"),
		Name:  "a-->b",
		TabID: "default",
	})

	out := aemxml.RenderDialog(&dialog, render.RenderOptions{})
	if !strings.Contains(out, "<!-- Error generating XML for carousel: a->b -->") {
		t.Fatalf("comment text not sanitised\n%s", out)
	}
}

func TestRenderDialog_NilDialog(t *testing.T) {
	if got := aemxml.RenderDialog(nil, render.RenderOptions{}); got != aemxml.NoActiveDialog {
		t.Fatalf("got %q, want placeholder", got)
	}
}

func TestExportFilename(t *testing.T) {
	cases := map[string]string{
		"Hero Banner":       "hero-banner.xml",
		" Hero ":            "-hero-.xml",
		"  Two   Spaces  ":  "-two-spaces-.xml",
		"Tabs\tAnd\nLines":  "tabs-and-lines.xml",
		"":                  "dialog.xml",
		"Already-lowercase": "already-lowercase.xml",
	}
	for input, want := range cases {
		if got := aemxml.ExportFilename(input); got != want {
			t.Fatalf("ExportFilename(%q) = %q, want %q", input, got, want)
		}
	}
}
