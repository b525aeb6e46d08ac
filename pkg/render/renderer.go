package render

import (
	"context"

	"github.com/goliatone/go-aemdialog/pkg/model"
)

// Renderer converts a dialog into a byte representation (AEM XML, Markdown,
// etc.). A nil dialog means "no active dialog"; renderers respond with a
// placeholder rather than an error.
type Renderer interface {
	Name() string
	ContentType() string
	FileExtension() string
	Render(ctx context.Context, dialog *model.Dialog, options RenderOptions) ([]byte, error)
}
