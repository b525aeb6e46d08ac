package render

import "github.com/goliatone/go-aemdialog/pkg/model"

// RenderOptions describe per-request hooks that renderers honour without
// changing the dialog being rendered.
type RenderOptions struct {
	// OnBlockError is invoked for every block a renderer had to skip. The
	// document is still produced; callers use the hook to surface the failure
	// (log line, toast, HTTP header) without losing the other blocks.
	OnBlockError func(block model.Block, err error)
}

// ReportBlockError calls OnBlockError when configured.
func (o RenderOptions) ReportBlockError(block model.Block, err error) {
	if o.OnBlockError != nil && err != nil {
		o.OnBlockError(block, err)
	}
}
