package aemxml

import (
	"context"

	"github.com/goliatone/go-aemdialog/pkg/model"
	"github.com/goliatone/go-aemdialog/pkg/render"
)

const (
	rendererName  = "aem-xml"
	contentType   = "application/xml"
	fileExtension = ".xml"
)

// Renderer adapts RenderDialog to the render.Renderer contract.
type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the AEM XML renderer.
func New() *Renderer {
	return &Renderer{}
}

func (*Renderer) Name() string { return rendererName }

func (*Renderer) ContentType() string { return contentType }

func (*Renderer) FileExtension() string { return fileExtension }

// Render produces the cq:dialog document for dialog.
func (r *Renderer) Render(ctx context.Context, dialog *model.Dialog, opts render.RenderOptions) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return []byte(RenderDialog(dialog, opts)), nil
}
