package designer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-aemdialog/pkg/model"
)

// BlockUpdate lists the block fields to change. Nil fields are left as they
// are. Properties must be of the block's own variant.
type BlockUpdate struct {
	Name       *string
	Label      *string
	TabID      *string
	Properties model.Properties
}

// AddBlock places a new block of fieldType on the active tab using the
// registry defaults. An empty name derives a unique one from the type.
func (d *Designer) AddBlock(s State, fieldType model.FieldType, name string) (State, model.Block, error) {
	if fieldType == model.FieldTypeCustom {
		return s, model.Block{}, fmt.Errorf("designer: custom blocks are placed with AddCustomBlockInstance")
	}
	name = strings.TrimSpace(name)
	block, err := d.registry.NewBlock(fieldType, name)
	if err != nil {
		return s, model.Block{}, err
	}
	return d.placeBlock(s, block, name == "")
}

// AddCustomBlockInstance places a copy of a project custom block on the
// active tab. The instance keeps its own copy of the template.
func (d *Designer) AddCustomBlockInstance(s State, customID, name string) (State, model.Block, error) {
	if s.Project == nil {
		return s, model.Block{}, ErrNoProject
	}
	custom, ok := s.Project.CustomBlock(customID)
	if !ok {
		return s, model.Block{}, fmt.Errorf("%w: custom block %q", ErrNotFound, customID)
	}

	name = strings.TrimSpace(name)
	block, err := d.registry.NewBlock(model.FieldTypeCustom, name)
	if err != nil {
		return s, model.Block{}, err
	}
	block.Label = custom.Name
	block.Properties = model.CustomProperties{
		XMLTemplate:   custom.XMLTemplate,
		CustomBlockID: custom.ID,
	}
	return d.placeBlock(s, block, name == "")
}

func (d *Designer) placeBlock(s State, block model.Block, derivedName bool) (State, model.Block, error) {
	if !derivedName && !model.ValidName(block.Name) {
		return s, model.Block{}, fmt.Errorf("%w: %q is not a valid node name", ErrInvalidName, block.Name)
	}

	var placed model.Block
	next, err := d.mutateActiveDialog(s, func(next *State, dialog *model.Dialog) error {
		if next.ActiveTabID == "" || tabIndex(dialog, next.ActiveTabID) < 0 {
			return fmt.Errorf("%w: active tab %q", ErrNotFound, next.ActiveTabID)
		}
		if derivedName {
			block.Name = uniqueName(dialog, block.Name)
		}
		block.ID = d.newID()
		block.TabID = next.ActiveTabID
		dialog.Blocks = append(dialog.Blocks, block)
		placed = block.Clone()
		return nil
	})
	if err != nil {
		return s, model.Block{}, err
	}
	return next, placed, nil
}

// uniqueName suffixes base with a counter until no block in the dialog uses
// it. Sibling nodes with the same name would collide in the repository.
func uniqueName(dialog *model.Dialog, base string) string {
	taken := make(map[string]bool, len(dialog.Blocks))
	for _, block := range dialog.Blocks {
		taken[block.Name] = true
	}
	if !taken[base] {
		return base
	}
	for n := 1; ; n++ {
		candidate := base + strconv.Itoa(n)
		if !taken[candidate] {
			return candidate
		}
	}
}

// RemoveBlock deletes a block from the active dialog, clearing the selection
// if it pointed at it.
func (d *Designer) RemoveBlock(s State, id string) (State, error) {
	return d.mutateActiveDialog(s, func(next *State, dialog *model.Dialog) error {
		idx := dialog.BlockIndex(id)
		if idx < 0 {
			return fmt.Errorf("%w: block %q", ErrNotFound, id)
		}
		dialog.Blocks = append(dialog.Blocks[:idx], dialog.Blocks[idx+1:]...)
		if next.SelectedBlockID == id {
			next.SelectedBlockID = ""
		}
		return nil
	})
}

// UpdateBlock applies update to a block of the active dialog.
func (d *Designer) UpdateBlock(s State, id string, update BlockUpdate) (State, error) {
	return d.mutateActiveDialog(s, func(_ *State, dialog *model.Dialog) error {
		idx := dialog.BlockIndex(id)
		if idx < 0 {
			return fmt.Errorf("%w: block %q", ErrNotFound, id)
		}
		block := &dialog.Blocks[idx]

		if update.Name != nil {
			name := strings.TrimSpace(*update.Name)
			if !model.ValidName(name) {
				return fmt.Errorf("%w: %q is not a valid node name", ErrInvalidName, name)
			}
			block.Name = name
		}
		if update.Label != nil {
			block.Label = *update.Label
		}
		if update.TabID != nil {
			if tabIndex(dialog, *update.TabID) < 0 {
				return fmt.Errorf("%w: tab %q", ErrNotFound, *update.TabID)
			}
			block.TabID = *update.TabID
		}
		if update.Properties != nil {
			if got := update.Properties.FieldType(); got != block.Type {
				return fmt.Errorf("%w: %s block given %s properties", ErrTypeMismatch, block.Type, got)
			}
			block.Properties = model.CloneProperties(update.Properties)
		}
		return nil
	})
}

// MoveBlock moves the block at from to position to within the active
// dialog's block list. Positions refer to the whole list, not one tab.
func (d *Designer) MoveBlock(s State, from, to int) (State, error) {
	return d.mutateActiveDialog(s, func(_ *State, dialog *model.Dialog) error {
		count := len(dialog.Blocks)
		if from < 0 || from >= count || to < 0 || to >= count {
			return fmt.Errorf("%w: move %d to %d with %d blocks", ErrIndexOutOfRange, from, to, count)
		}
		moved := dialog.Blocks[from]
		dialog.Blocks = append(dialog.Blocks[:from], dialog.Blocks[from+1:]...)
		dialog.Blocks = append(dialog.Blocks[:to], append([]model.Block{moved}, dialog.Blocks[to:]...)...)
		return nil
	})
}

// SelectBlock moves the selection. An empty id clears it.
func (d *Designer) SelectBlock(s State, id string) (State, error) {
	if id == "" {
		s.SelectedBlockID = ""
		return s, nil
	}
	dialog, ok := s.ActiveDialog()
	if !ok {
		if s.Project == nil {
			return s, ErrNoProject
		}
		return s, ErrNoActiveDialog
	}
	if dialog.BlockIndex(id) < 0 {
		return s, fmt.Errorf("%w: block %q", ErrNotFound, id)
	}
	s.SelectedBlockID = id
	return s, nil
}

// ClearBlocks removes every block from the active dialog. Tabs are kept.
func (d *Designer) ClearBlocks(s State) (State, error) {
	return d.mutateActiveDialog(s, func(next *State, dialog *model.Dialog) error {
		dialog.Blocks = []model.Block{}
		next.SelectedBlockID = ""
		return nil
	})
}
