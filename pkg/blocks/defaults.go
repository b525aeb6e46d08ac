package blocks

import "github.com/goliatone/go-aemdialog/pkg/model"

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// field types.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(Definition{
		Type:  model.FieldTypeTextField,
		Label: "Text Field",
		Icon:  "text-cursor",
		Defaults: func() model.Properties {
			return model.TextFieldProperties{
				Common: model.Common{
					FieldLabel:       "Text",
					FieldDescription: "Text field description",
				},
			}
		},
	})
	registry.MustRegister(Definition{
		Type:  model.FieldTypeTextArea,
		Label: "Text Area",
		Icon:  "pilcrow",
		Defaults: func() model.Properties {
			return model.TextAreaProperties{
				Common: model.Common{
					FieldLabel:       "Text Area",
					FieldDescription: "Text area description",
				},
				Rows: 5,
			}
		},
	})
	registry.MustRegister(Definition{
		Type:  model.FieldTypeSelect,
		Label: "Select",
		Icon:  "list",
		Defaults: func() model.Properties {
			return model.SelectProperties{
				Common: model.Common{
					FieldLabel:       "Select",
					FieldDescription: "Select description",
				},
				Options: []model.Option{
					{Text: "Option 1", Value: "option1"},
					{Text: "Option 2", Value: "option2"},
				},
			}
		},
	})
	registry.MustRegister(Definition{
		Type:  model.FieldTypeCheckbox,
		Label: "Checkbox",
		Icon:  "check-square",
		Defaults: func() model.Properties {
			return model.CheckboxProperties{
				Common: model.Common{FieldDescription: "Checkbox description"},
				Text:   "Enable",
			}
		},
	})
	registry.MustRegister(Definition{
		Type:  model.FieldTypeHeading,
		Label: "Heading",
		Icon:  "heading",
		Defaults: func() model.Properties {
			return model.HeadingProperties{Text: "Heading", Level: 3}
		},
	})
	registry.MustRegister(Definition{
		Type:  model.FieldTypeRichText,
		Label: "Rich Text Editor",
		Icon:  "file-text",
		Defaults: func() model.Properties {
			return model.RichTextProperties{
				Common: model.Common{
					FieldLabel:       "Rich Text",
					FieldDescription: "Rich text editor description",
				},
				UseFixedInlineToolbar: true,
				RTEPlugins: model.RTEPlugins{
					Format:     model.PluginFeatures{Features: []string{"bold", "italic", "underline"}},
					Justify:    model.PluginFeatures{Features: []string{"justifyleft", "justifycenter", "justifyright"}},
					Links:      model.PluginFeatures{Features: []string{"modifylink", "unlink"}},
					Lists:      model.PluginFeatures{Features: []string{"bullet", "numbered"}},
					ParaFormat: model.PluginFeatures{Features: []string{"default", "h1", "h2", "h3"}},
				},
			}
		},
	})
	registry.MustRegister(Definition{
		Type:  model.FieldTypeMultiField,
		Label: "Multifield",
		Icon:  "layers",
		Defaults: func() model.Properties {
			return model.MultiFieldProperties{
				Common: model.Common{
					FieldLabel:       "Multifield",
					FieldDescription: "Multifield description",
				},
				Composite: true,
				NestedComponents: []model.NestedComponent{
					{Type: model.FieldTypeTextField, Name: "textfield", FieldLabel: "Text"},
					{Type: model.FieldTypePathField, Name: "pathfield", FieldLabel: "Path", RootPath: "/content"},
				},
			}
		},
	})
	registry.MustRegister(Definition{
		Type:  model.FieldTypePathField,
		Label: "Path Field",
		Icon:  "folder",
		Defaults: func() model.Properties {
			return model.PathFieldProperties{
				Common: model.Common{
					FieldLabel:       "Path",
					FieldDescription: "Select a path",
				},
				RootPath: "/content",
			}
		},
	})
	registry.MustRegister(Definition{
		Type:  model.FieldTypeFileUpload,
		Label: "File Upload",
		Icon:  "upload",
		Defaults: func() model.Properties {
			return model.FileUploadProperties{
				Common: model.Common{
					FieldLabel:       "Image",
					FieldDescription: "Select an image to upload to the DAM",
				},
				AllowUpload:            true,
				SizeLimit:              2,
				MimeTypes:              []string{"image/jpeg", "image/png", "image/gif"},
				UploadURL:              "/content/dam",
				FileNameParameter:      "./fileName",
				FileReferenceParameter: "./fileReference",
				AutoStart:              true,
				UseHTML5:               true,
				UploadPrettyName:       true,
			}
		},
	})
	registry.MustRegister(Definition{
		Type:  model.FieldTypeCustom,
		Label: "Custom Block",
		Icon:  "code",
		Defaults: func() model.Properties {
			return model.CustomProperties{}
		},
	})

	return registry
}
