package model

import (
	"errors"
	"fmt"
)

// FieldType is the discriminant shared by blocks, registry definitions and
// renderers.
type FieldType string

const (
	FieldTypeTextField  FieldType = "textfield"
	FieldTypeTextArea   FieldType = "textarea"
	FieldTypeSelect     FieldType = "select"
	FieldTypeCheckbox   FieldType = "checkbox"
	FieldTypeHeading    FieldType = "heading"
	FieldTypeRichText   FieldType = "richtext"
	FieldTypePathField  FieldType = "pathfield"
	FieldTypeFileUpload FieldType = "fileupload"
	FieldTypeMultiField FieldType = "multifield"
	FieldTypeCustom     FieldType = "custom"
)

// FieldTypes lists every supported field type in catalog order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeTextField,
		FieldTypeTextArea,
		FieldTypeSelect,
		FieldTypeCheckbox,
		FieldTypeHeading,
		FieldTypeRichText,
		FieldTypePathField,
		FieldTypeFileUpload,
		FieldTypeMultiField,
		FieldTypeCustom,
	}
}

// Known reports whether t is one of the supported field types.
func (t FieldType) Known() bool {
	for _, candidate := range FieldTypes() {
		if candidate == t {
			return true
		}
	}
	return false
}

// NestedAllowed reports whether t may appear inside a multifield.
func (t FieldType) NestedAllowed() bool {
	switch t {
	case FieldTypeTextField, FieldTypeTextArea, FieldTypeSelect, FieldTypePathField:
		return true
	default:
		return false
	}
}

// Block is one placed, configured field inside a dialog (a FieldInstance).
// Name doubles as the XML node name and the stored property name, so it must
// be a valid XML local name; see ValidName.
type Block struct {
	ID         string
	Type       FieldType
	Name       string
	Label      string
	Icon       string
	Properties Properties
	TabID      string
}

// Tab groups blocks within a dialog.
type Tab struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Dialog is the designed artifact: a named form composed of tabs and blocks.
type Dialog struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	HelpPath string  `json:"helpPath"`
	Tabs     []Tab   `json:"tabs"`
	Blocks   []Block `json:"blocks"`
}

// CustomBlock is a user-authored palette entry carrying a literal XML
// fragment.
type CustomBlock struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl"`
	XMLTemplate string `json:"xmlTemplate"`
}

// Project is the persisted unit: every dialog the user is working on plus the
// custom blocks available to them.
type Project struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Dialogs      []Dialog      `json:"dialogs"`
	CustomBlocks []CustomBlock `json:"customBlocks"`
	LastModified string        `json:"lastModified"`
}

var (
	// ErrNoTabs is returned by Dialog.Validate when a dialog has no tabs.
	ErrNoTabs = errors.New("model: dialog must contain at least one tab")
	// ErrDanglingTab is returned when a block references a tab that does not
	// exist in its dialog.
	ErrDanglingTab = errors.New("model: block references unknown tab")
)

// Tab returns the tab with the given id.
func (d Dialog) Tab(id string) (Tab, bool) {
	for _, tab := range d.Tabs {
		if tab.ID == id {
			return tab, true
		}
	}
	return Tab{}, false
}

// BlocksForTab returns the blocks assigned to the tab, preserving dialog
// order.
func (d Dialog) BlocksForTab(tabID string) []Block {
	var out []Block
	for _, block := range d.Blocks {
		if block.TabID == tabID {
			out = append(out, block)
		}
	}
	return out
}

// BlockIndex returns the position of the block in Blocks, or -1.
func (d Dialog) BlockIndex(id string) int {
	for idx, block := range d.Blocks {
		if block.ID == id {
			return idx
		}
	}
	return -1
}

// Validate checks the structural invariants of a dialog: at least one tab and
// no block pointing at a missing tab.
func (d Dialog) Validate() error {
	if len(d.Tabs) == 0 {
		return ErrNoTabs
	}
	for _, block := range d.Blocks {
		if _, ok := d.Tab(block.TabID); !ok {
			return fmt.Errorf("%w: block %q (tab %q)", ErrDanglingTab, block.Name, block.TabID)
		}
	}
	return nil
}

// Dialog returns the dialog with the given id.
func (p Project) Dialog(id string) (Dialog, bool) {
	for _, dialog := range p.Dialogs {
		if dialog.ID == id {
			return dialog, true
		}
	}
	return Dialog{}, false
}

// CustomBlock returns the custom block with the given id.
func (p Project) CustomBlock(id string) (CustomBlock, bool) {
	for _, block := range p.CustomBlocks {
		if block.ID == id {
			return block, true
		}
	}
	return CustomBlock{}, false
}
