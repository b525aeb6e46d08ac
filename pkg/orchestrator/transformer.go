package orchestrator

import (
	"context"
	"fmt"

	"github.com/goliatone/go-aemdialog/pkg/model"
)

// Transformer mutates a copy of the dialog before it is rendered. The stored
// project is never affected.
type Transformer interface {
	Transform(ctx context.Context, dialog *model.Dialog) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, dialog *model.Dialog) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, dialog *model.Dialog) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, dialog)
}

// Chain runs transformers in order, stopping at the first error.
func Chain(transformers ...Transformer) Transformer {
	return TransformerFunc(func(ctx context.Context, dialog *model.Dialog) error {
		for _, t := range transformers {
			if t == nil {
				continue
			}
			if err := t.Transform(ctx, dialog); err != nil {
				return err
			}
		}
		return nil
	})
}

// OnlyTabs keeps the listed tabs and the blocks placed on them. Unknown tab
// IDs are an error so typos do not silently produce an empty export.
func OnlyTabs(tabIDs ...string) Transformer {
	return TransformerFunc(func(_ context.Context, dialog *model.Dialog) error {
		if len(tabIDs) == 0 {
			return nil
		}
		keep := make(map[string]bool, len(tabIDs))
		for _, id := range tabIDs {
			if _, ok := dialog.Tab(id); !ok {
				return fmt.Errorf("orchestrator: tab %q not in dialog %q", id, dialog.Name)
			}
			keep[id] = true
		}

		tabs := dialog.Tabs[:0]
		for _, tab := range dialog.Tabs {
			if keep[tab.ID] {
				tabs = append(tabs, tab)
			}
		}
		dialog.Tabs = tabs

		blocks := dialog.Blocks[:0]
		for _, block := range dialog.Blocks {
			if keep[block.TabID] {
				blocks = append(blocks, block)
			}
		}
		dialog.Blocks = blocks
		return nil
	})
}
