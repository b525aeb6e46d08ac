package designer

import "github.com/goliatone/go-aemdialog/pkg/model"

// State is a snapshot of the designer: the open project plus the editing
// cursor. It serializes to the shape persisted by the workspace.
type State struct {
	Project           *model.Project `json:"currentProject"`
	ActiveDialogID    string         `json:"activeDialogId,omitempty"`
	ActiveTabID       string         `json:"activeTabId,omitempty"`
	SelectedBlockID   string         `json:"selectedBlockId,omitempty"`
	HasUnsavedChanges bool           `json:"hasUnsavedChanges"`
}

// ActiveDialog returns the dialog the cursor points at.
func (s State) ActiveDialog() (model.Dialog, bool) {
	if s.Project == nil || s.ActiveDialogID == "" {
		return model.Dialog{}, false
	}
	return s.Project.Dialog(s.ActiveDialogID)
}

// SelectedBlock returns the selected block of the active dialog.
func (s State) SelectedBlock() (model.Block, bool) {
	dialog, ok := s.ActiveDialog()
	if !ok || s.SelectedBlockID == "" {
		return model.Block{}, false
	}
	idx := dialog.BlockIndex(s.SelectedBlockID)
	if idx < 0 {
		return model.Block{}, false
	}
	return dialog.Blocks[idx], true
}

func (s State) clone() State {
	if s.Project != nil {
		project := s.Project.Clone()
		s.Project = &project
	}
	return s
}

func (s State) activeDialogIndex() int {
	if s.Project == nil || s.ActiveDialogID == "" {
		return -1
	}
	return dialogIndex(s.Project, s.ActiveDialogID)
}

func dialogIndex(project *model.Project, id string) int {
	for idx, dialog := range project.Dialogs {
		if dialog.ID == id {
			return idx
		}
	}
	return -1
}

func tabIndex(dialog *model.Dialog, id string) int {
	for idx, tab := range dialog.Tabs {
		if tab.ID == id {
			return idx
		}
	}
	return -1
}
