// Package markdown renders a human-readable reference of a dialog: one table
// of blocks per tab. It is meant for pull request descriptions and component
// documentation, next to the exported XML.
package markdown

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-aemdialog/pkg/model"
	"github.com/goliatone/go-aemdialog/pkg/render"
	"github.com/goliatone/go-aemdialog/pkg/render/template"
	"github.com/goliatone/go-aemdialog/pkg/render/template/gotemplate"
)

const (
	rendererName    = "markdown"
	defaultTemplate = "templates/dialog.md.tpl"

	// NoActiveDialog is rendered when there is no dialog to describe.
	NoActiveDialog = "_No active dialog._\n"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Option configures the renderer before construction.
type Option func(*config)

type config struct {
	templates fs.FS
	name      string
	engine    template.TemplateRenderer
}

// WithTemplatesFS loads the dialog template from files instead of the
// embedded default. name is the template path within files.
func WithTemplatesFS(files fs.FS, name string) Option {
	return func(cfg *config) {
		if files == nil {
			return
		}
		cfg.templates = files
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// WithTemplateRenderer renders through engine instead of the bundled
// go-template adapter. The engine must resolve the template name itself and
// provide the mdcell filter when the template uses it.
func WithTemplateRenderer(engine template.TemplateRenderer) Option {
	return func(cfg *config) {
		if engine != nil {
			cfg.engine = engine
		}
	}
}

// WithTemplateName selects the template an injected engine renders.
func WithTemplateName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// Renderer implements render.Renderer for Markdown output.
type Renderer struct {
	engine template.TemplateRenderer
	name   string
}

var _ render.Renderer = (*Renderer)(nil)

// New builds the renderer over the go-template adapter, loading the dialog
// template eagerly so a missing template fails here.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{
		templates: embeddedTemplates,
		name:      defaultTemplate,
	}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	if cfg.engine != nil {
		return &Renderer{engine: cfg.engine, name: cfg.name}, nil
	}

	engine, err := gotemplate.New(
		gotemplate.WithFS(cfg.templates),
		gotemplate.WithExtension(".tpl"),
		gotemplate.WithTemplateFunc(map[string]any{
			"mdcell": pongo2.FilterFunction(filterMarkdownCell),
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("markdown: configure template engine: %w", err)
	}
	if err := engine.Load(cfg.name); err != nil {
		return nil, fmt.Errorf("markdown: load template %q: %w", cfg.name, err)
	}
	return &Renderer{engine: engine, name: cfg.name}, nil
}

// MustNew panics when the template cannot be parsed. Useful for init-time
// wiring with the embedded template.
func MustNew(options ...Option) *Renderer {
	renderer, err := New(options...)
	if err != nil {
		panic(err)
	}
	return renderer
}

func (*Renderer) Name() string { return rendererName }

func (*Renderer) ContentType() string { return "text/markdown" }

func (*Renderer) FileExtension() string { return ".md" }

// Render describes dialog as Markdown. Blocks are listed whether or not they
// would serialize cleanly; RenderOptions is accepted for interface parity.
func (r *Renderer) Render(ctx context.Context, dialog *model.Dialog, _ render.RenderOptions) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if r == nil || r.engine == nil {
		return nil, errors.New("markdown: renderer not initialised")
	}
	if dialog == nil {
		return []byte(NoActiveDialog), nil
	}

	out, err := r.engine.RenderTemplate(r.name, map[string]any{
		"dialog": dialogView{Name: dialog.Name, HelpPath: dialog.HelpPath},
		"tabs":   buildTabs(dialog),
	})
	if err != nil {
		return nil, fmt.Errorf("markdown: render template: %w", err)
	}
	return []byte(out), nil
}

type dialogView struct {
	Name     string
	HelpPath string
}

type tabView struct {
	Name   string
	Blocks []blockView
	Nested []nestedView
}

type blockView struct {
	Name        string
	Type        string
	Label       string
	Required    string
	Description string
}

type nestedView struct {
	Parent string
	Name   string
	Type   string
	Label  string
}

func buildTabs(dialog *model.Dialog) []tabView {
	tabs := make([]tabView, 0, len(dialog.Tabs))
	for _, tab := range dialog.Tabs {
		blocks := dialog.BlocksForTab(tab.ID)
		if len(blocks) == 0 {
			continue
		}
		view := tabView{Name: tab.Name}
		for _, block := range blocks {
			view.Blocks = append(view.Blocks, newBlockView(block))
			if multi, ok := block.Properties.(model.MultiFieldProperties); ok {
				for _, nested := range multi.NestedComponents {
					view.Nested = append(view.Nested, nestedView{
						Parent: block.Name,
						Name:   nested.Name,
						Type:   string(nested.Type),
						Label:  nested.FieldLabel,
					})
				}
			}
		}
		tabs = append(tabs, view)
	}
	return tabs
}

func newBlockView(block model.Block) blockView {
	common := model.CommonOf(block.Properties)
	label := common.FieldLabel
	if label == "" {
		label = block.Label
	}
	required := "no"
	if common.Required {
		required = "yes"
	}
	if _, broken := block.Properties.(model.RawProperties); broken {
		required = "?"
	}
	return blockView{
		Name:        block.Name,
		Type:        string(block.Type),
		Label:       label,
		Required:    required,
		Description: common.FieldDescription,
	}
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

// filterMarkdownCell keeps a value on one table row.
func filterMarkdownCell(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(cellEscaper.Replace(in.String())), nil
}
