package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-aemdialog/pkg/model"
	"github.com/goliatone/go-aemdialog/pkg/render"
)

type stubRenderer struct {
	name string
	ext  string
}

func (s stubRenderer) Name() string          { return s.name }
func (s stubRenderer) ContentType() string   { return "text/plain" }
func (s stubRenderer) FileExtension() string {
	if s.ext == "" {
		return ".txt"
	}
	return s.ext
}
func (s stubRenderer) Render(context.Context, *model.Dialog, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "aem-xml"})
	registry.MustRegister(stubRenderer{name: "Markdown"})

	if diff := cmp.Diff([]string{"aem-xml", "markdown"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("MARKDOWN") {
		t.Fatal("lookup should be case-insensitive")
	}

	renderer, err := registry.Get(" aem-xml ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if renderer.Name() != "aem-xml" {
		t.Fatalf("unexpected renderer %q", renderer.Name())
	}
}

func TestRegistry_Errors(t *testing.T) {
	registry := render.NewRegistry()
	if err := registry.Register(nil); err == nil {
		t.Fatal("expected nil renderer error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatal("expected empty name error")
	}
	registry.MustRegister(stubRenderer{name: "aem-xml"})
	if err := registry.Register(stubRenderer{name: "AEM-XML"}); err == nil {
		t.Fatal("expected duplicate error")
	}
	if _, err := registry.Get("pdf"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestRegistry_Aliases(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "aem-xml", ext: ".xml"})

	if err := registry.Alias("XML", "aem-xml"); err != nil {
		t.Fatalf("alias: %v", err)
	}
	renderer, err := registry.Get("xml")
	if err != nil {
		t.Fatalf("get alias: %v", err)
	}
	if renderer.Name() != "aem-xml" {
		t.Fatalf("alias resolved to %q", renderer.Name())
	}
	if !registry.Has("Xml") {
		t.Fatal("Has should resolve aliases")
	}
	if diff := cmp.Diff([]string{"aem-xml"}, registry.List()); diff != "" {
		t.Fatalf("aliases should not be listed (-want +got):\n%s", diff)
	}

	if err := registry.Alias("md", "markdown"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("alias to unknown renderer: got %v", err)
	}
	if err := registry.Alias("aem-xml", "aem-xml"); err == nil {
		t.Fatal("alias shadowing a renderer name should fail")
	}
	if err := registry.Register(stubRenderer{name: "xml"}); err == nil {
		t.Fatal("renderer shadowing an alias should fail")
	}
}

func TestRegistry_ForExtension(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "aem-xml", ext: ".xml"})
	registry.MustRegister(stubRenderer{name: "markdown", ext: ".md"})

	for _, ext := range []string{".md", "md", ".MD"} {
		renderer, err := registry.ForExtension(ext)
		if err != nil {
			t.Fatalf("ForExtension(%q): %v", ext, err)
		}
		if renderer.Name() != "markdown" {
			t.Fatalf("ForExtension(%q) = %q", ext, renderer.Name())
		}
	}
	if _, err := registry.ForExtension(".pdf"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestBlockError(t *testing.T) {
	cause := errors.New("options missing")
	err := render.NewBlockError(model.Block{ID: "b1", Type: model.FieldTypeSelect, Name: "size"}, cause)

	if !errors.Is(err, cause) {
		t.Fatal("BlockError should unwrap to its cause")
	}
	if got, want := err.Error(), `render: block select "size": options missing`; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
}

func TestRenderOptions_ReportBlockError(t *testing.T) {
	var seen []string
	opts := render.RenderOptions{OnBlockError: func(block model.Block, err error) {
		seen = append(seen, block.Name+": "+err.Error())
	}}

	opts.ReportBlockError(model.Block{Name: "a"}, errors.New("boom"))
	opts.ReportBlockError(model.Block{Name: "b"}, nil)
	render.RenderOptions{}.ReportBlockError(model.Block{Name: "c"}, errors.New("ignored"))

	if diff := cmp.Diff([]string{"a: boom"}, seen); diff != "" {
		t.Fatalf("reported errors mismatch (-want +got):\n%s", diff)
	}
}
