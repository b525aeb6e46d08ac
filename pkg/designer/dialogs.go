package designer

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-aemdialog/pkg/model"
)

// CreateDialog appends a dialog with the default tab and makes it active.
func (d *Designer) CreateDialog(s State, name string) (State, model.Dialog, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, model.Dialog{}, fmt.Errorf("%w: dialog name is required", ErrInvalidName)
	}

	dialog := d.newDialog(name)
	next, err := d.mutateProject(s, func(p *model.Project) error {
		p.Dialogs = append(p.Dialogs, dialog)
		return nil
	})
	if err != nil {
		return s, model.Dialog{}, err
	}
	next.ActiveDialogID = dialog.ID
	next.ActiveTabID = dialog.Tabs[0].ID
	next.SelectedBlockID = ""
	return next, dialog.Clone(), nil
}

// RemoveDialog deletes a dialog. The last dialog cannot be removed. Removing
// the active dialog activates the first remaining one.
func (d *Designer) RemoveDialog(s State, id string) (State, error) {
	next, err := d.mutateProject(s, func(p *model.Project) error {
		idx := dialogIndex(p, id)
		if idx < 0 {
			return fmt.Errorf("%w: dialog %q", ErrNotFound, id)
		}
		if len(p.Dialogs) <= 1 {
			return ErrLastDialog
		}
		p.Dialogs = append(p.Dialogs[:idx], p.Dialogs[idx+1:]...)
		return nil
	})
	if err != nil {
		return s, err
	}

	if next.ActiveDialogID == id {
		first := next.Project.Dialogs[0]
		next.ActiveDialogID = first.ID
		next.ActiveTabID = firstTabID(first)
	}
	next.SelectedBlockID = ""
	return next, nil
}

// UpdateDialogName renames a dialog.
func (d *Designer) UpdateDialogName(s State, id, name string) (State, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, fmt.Errorf("%w: dialog name is required", ErrInvalidName)
	}
	return d.mutateProject(s, func(p *model.Project) error {
		idx := dialogIndex(p, id)
		if idx < 0 {
			return fmt.Errorf("%w: dialog %q", ErrNotFound, id)
		}
		p.Dialogs[idx].Name = name
		return nil
	})
}

// SetActiveDialog moves the cursor to a dialog and its first tab.
func (d *Designer) SetActiveDialog(s State, id string) (State, error) {
	if s.Project == nil {
		return s, ErrNoProject
	}
	dialog, ok := s.Project.Dialog(id)
	if !ok {
		return s, fmt.Errorf("%w: dialog %q", ErrNotFound, id)
	}
	next := s
	next.ActiveDialogID = id
	next.ActiveTabID = firstTabID(dialog)
	next.SelectedBlockID = ""
	return next, nil
}

// ActiveDialog returns the active dialog or ErrNoActiveDialog.
func (d *Designer) ActiveDialog(s State) (model.Dialog, error) {
	if s.Project == nil {
		return model.Dialog{}, ErrNoProject
	}
	dialog, ok := s.ActiveDialog()
	if !ok {
		return model.Dialog{}, ErrNoActiveDialog
	}
	return dialog.Clone(), nil
}

// SetDialogHelpPath sets the helpPath of the active dialog. An empty path
// removes it from the exported XML.
func (d *Designer) SetDialogHelpPath(s State, path string) (State, error) {
	return d.mutateActiveDialog(s, func(_ *State, dialog *model.Dialog) error {
		dialog.HelpPath = strings.TrimSpace(path)
		return nil
	})
}

func firstTabID(dialog model.Dialog) string {
	if len(dialog.Tabs) == 0 {
		return ""
	}
	return dialog.Tabs[0].ID
}
