package designer

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-aemdialog/pkg/model"
)

// AddTab appends a tab to the active dialog and makes it active.
func (d *Designer) AddTab(s State, name string) (State, model.Tab, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, model.Tab{}, fmt.Errorf("%w: tab name is required", ErrInvalidName)
	}

	tab := model.Tab{ID: d.newID(), Name: name}
	next, err := d.mutateActiveDialog(s, func(next *State, dialog *model.Dialog) error {
		dialog.Tabs = append(dialog.Tabs, tab)
		next.ActiveTabID = tab.ID
		return nil
	})
	if err != nil {
		return s, model.Tab{}, err
	}
	return next, tab, nil
}

// RemoveTab deletes a tab and every block on it. The last tab cannot be
// removed. Removing the active tab activates the first remaining one.
func (d *Designer) RemoveTab(s State, id string) (State, error) {
	return d.mutateActiveDialog(s, func(next *State, dialog *model.Dialog) error {
		idx := tabIndex(dialog, id)
		if idx < 0 {
			return fmt.Errorf("%w: tab %q", ErrNotFound, id)
		}
		if len(dialog.Tabs) <= 1 {
			return ErrLastTab
		}

		dialog.Tabs = append(dialog.Tabs[:idx], dialog.Tabs[idx+1:]...)
		kept := dialog.Blocks[:0]
		for _, block := range dialog.Blocks {
			if block.TabID == id {
				if next.SelectedBlockID == block.ID {
					next.SelectedBlockID = ""
				}
				continue
			}
			kept = append(kept, block)
		}
		dialog.Blocks = kept

		if next.ActiveTabID == id {
			next.ActiveTabID = dialog.Tabs[0].ID
		}
		return nil
	})
}

// UpdateTab renames a tab of the active dialog.
func (d *Designer) UpdateTab(s State, id, name string) (State, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, fmt.Errorf("%w: tab name is required", ErrInvalidName)
	}
	return d.mutateActiveDialog(s, func(_ *State, dialog *model.Dialog) error {
		idx := tabIndex(dialog, id)
		if idx < 0 {
			return fmt.Errorf("%w: tab %q", ErrNotFound, id)
		}
		dialog.Tabs[idx].Name = name
		return nil
	})
}

// SetActiveTab moves the cursor to a tab of the active dialog.
func (d *Designer) SetActiveTab(s State, id string) (State, error) {
	dialog, err := d.ActiveDialog(s)
	if err != nil {
		return s, err
	}
	if _, ok := dialog.Tab(id); !ok {
		return s, fmt.Errorf("%w: tab %q", ErrNotFound, id)
	}
	s.ActiveTabID = id
	return s, nil
}
