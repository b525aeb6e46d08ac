package testsupport

import "github.com/goliatone/go-aemdialog/pkg/model"

// HeadlineDialog returns a single-tab dialog holding one required textfield
// named headline.
func HeadlineDialog() model.Dialog {
	return model.Dialog{
		ID:   "d1",
		Name: "Hero",
		Tabs: []model.Tab{{ID: "default", Name: "Properties"}},
		Blocks: []model.Block{
			{
				ID:    "b1",
				Type:  model.FieldTypeTextField,
				Name:  "headline",
				TabID: "default",
				Properties: model.TextFieldProperties{
					Common: model.Common{FieldLabel: "Headline", Required: true},
				},
			},
		},
	}
}

// Block builds a block on the default tab.
func Block(id string, props model.Properties, name string) model.Block {
	return model.Block{
		ID:         id,
		Type:       props.FieldType(),
		Name:       name,
		TabID:      "default",
		Properties: props,
	}
}

// DialogWith returns a dialog with the default tab holding blocks.
func DialogWith(name string, blocks ...model.Block) model.Dialog {
	return model.Dialog{
		ID:     "d1",
		Name:   name,
		Tabs:   []model.Tab{{ID: "default", Name: "Properties"}},
		Blocks: blocks,
	}
}
