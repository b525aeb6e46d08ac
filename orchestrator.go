package aemdialog

import (
	"context"
	"io"

	"github.com/goliatone/go-aemdialog/pkg/model"
	"github.com/goliatone/go-aemdialog/pkg/orchestrator"
	"github.com/goliatone/go-aemdialog/pkg/render"
	"github.com/goliatone/go-aemdialog/pkg/renderers/aemxml"
)

// RenderOptions describes per-request hooks renderers honour, such as the
// OnBlockError callback fired for blocks rendered as error comments.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request for callers that only import the root
// package.
type Request = orchestrator.Request

// Transformer aliases orchestrator.Transformer.
type Transformer = orchestrator.Transformer

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateXML serialises a single dialog to an AEM cq:dialog document. A nil
// dialog yields the "no active dialog" placeholder.
func GenerateXML(ctx context.Context, dialog *model.Dialog, opts RenderOptions) ([]byte, error) {
	if dialog == nil {
		return []byte(aemxml.NoActiveDialog), nil
	}
	return orchestrator.New().Generate(ctx, orchestrator.Request{
		Dialog:        dialog,
		Renderer:      "aem-xml",
		RenderOptions: opts,
	})
}

// GenerateFromProject reads a project file, selects the dialog by ID (empty
// selects the first dialog) and renders it using the named renderer.
func GenerateFromProject(ctx context.Context, source io.Reader, dialogID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		DialogID: dialogID,
		Renderer: rendererName,
	})
}

// RenderBlock serialises one block to its XML fragment.
func RenderBlock(block model.Block) (string, error) {
	return aemxml.RenderBlock(block)
}

// WithTransformer forwards a dialog transformer to the orchestrator.
func WithTransformer(t Transformer) orchestrator.Option {
	return orchestrator.WithTransformer(t)
}
