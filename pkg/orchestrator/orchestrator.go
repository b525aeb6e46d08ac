package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goliatone/go-aemdialog/pkg/model"
	"github.com/goliatone/go-aemdialog/pkg/project"
	"github.com/goliatone/go-aemdialog/pkg/render"
	"github.com/goliatone/go-aemdialog/pkg/renderers/aemxml"
	"github.com/goliatone/go-aemdialog/pkg/renderers/markdown"
)

const defaultRendererName = "aem-xml"

// ErrDialogNotFound is returned when a request names a dialog the project
// does not contain.
var ErrDialogNotFound = errors.New("orchestrator: dialog not found")

// ProjectDecoder turns a project file into a Project.
type ProjectDecoder func(r io.Reader) (model.Project, error)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithProjectDecoder replaces project.Decode for requests that carry a
// Source.
func WithProjectDecoder(decoder ProjectDecoder) Option {
	return func(o *Orchestrator) {
		o.decoder = decoder
	}
}

// WithTransformer registers a Transformer that runs against a copy of the
// dialog before rendering.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// Orchestrator resolves a dialog from a project and renders it. It applies
// sensible defaults (AEM XML and Markdown renderers, project.Decode) while
// remaining open to dependency injection.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	decoder         ProjectDecoder
	transformer     Transformer
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// DefaultRegistry returns a registry holding the built-in renderers.
func DefaultRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()
	registry.MustRegister(aemxml.New())
	md, err := markdown.New()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: markdown renderer: %w", err)
	}
	registry.MustRegister(md)
	for alias, target := range map[string]string{"xml": aemxml.New().Name(), "md": md.Name()} {
		if err := registry.Alias(alias, target); err != nil {
			return nil, fmt.Errorf("orchestrator: alias %s: %w", alias, err)
		}
	}
	return registry, nil
}

// Request describes what to render.
type Request struct {
	// Dialog bypasses project resolution entirely.
	Dialog *model.Dialog

	// Project supplies an already decoded project.
	Project *model.Project

	// Source is read as a project file when neither Dialog nor Project is
	// set.
	Source io.Reader

	// DialogID selects the dialog within the project. Empty selects the first
	// dialog; a project without dialogs renders the "no active dialog"
	// placeholder.
	DialogID string

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request hooks such as OnBlockError.
	RenderOptions render.RenderOptions
}

// Result is a rendered document together with the metadata needed to serve
// or save it.
type Result struct {
	Output      []byte
	ContentType string
	Filename    string
	Renderer    string
	Dialog      *model.Dialog
}

// Generate renders the requested dialog and returns the bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	result, err := o.Export(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}

// Export renders the requested dialog and reports the content type and the
// download filename alongside the output.
func (o *Orchestrator) Export(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	dialog, err := o.resolveDialog(req)
	if err != nil {
		return Result{}, err
	}
	if err := o.applyTransformer(ctx, dialog); err != nil {
		return Result{}, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	output, err := renderer.Render(ctx, dialog, req.RenderOptions)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render output: %w", err)
	}

	name := ""
	if dialog != nil {
		name = dialog.Name
	}
	return Result{
		Output:      output,
		ContentType: renderer.ContentType(),
		Filename:    render.Filename(name, renderer.FileExtension()),
		Renderer:    renderer.Name(),
		Dialog:      dialog,
	}, nil
}

// Registry exposes the renderer registry, nil when the defaults failed to
// initialise.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) resolveDialog(req Request) (*model.Dialog, error) {
	if req.Dialog != nil {
		dialog := req.Dialog.Clone()
		return &dialog, nil
	}

	p, err := o.resolveProject(req)
	if err != nil {
		return nil, err
	}
	if req.DialogID == "" {
		if len(p.Dialogs) == 0 {
			return nil, nil
		}
		dialog := p.Dialogs[0].Clone()
		return &dialog, nil
	}
	dialog, ok := p.Dialog(req.DialogID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDialogNotFound, req.DialogID)
	}
	dialog = dialog.Clone()
	return &dialog, nil
}

func (o *Orchestrator) resolveProject(req Request) (model.Project, error) {
	if req.Project != nil {
		return *req.Project, nil
	}
	if req.Source == nil {
		return model.Project{}, errors.New("orchestrator: dialog, project or source is required")
	}
	p, err := o.decoder(req.Source)
	if err != nil {
		return model.Project{}, fmt.Errorf("orchestrator: load project: %w", err)
	}
	return p, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, dialog *model.Dialog) error {
	if o.transformer == nil || dialog == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, dialog); err != nil {
		return fmt.Errorf("orchestrator: transform dialog: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.decoder == nil {
		o.decoder = project.Decode
	}
	if o.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			o.initialiseErr = err
			return
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
