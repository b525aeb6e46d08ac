package aemxml

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-aemdialog/pkg/model"
)

const (
	graniteForm      = "granite/ui/components/coral/foundation/form/"
	graniteContainer = "granite/ui/components/coral/foundation/container"
	cqDialog         = "cq/gui/components/authoring/dialog/"
)

// component describes how one field type is serialized. attributes runs after
// the shared attributes; body, when set, turns the element into an explicitly
// closed node.
type component struct {
	resourceType string
	// label emits fieldLabel from the shared attributes.
	label bool
	// nameOnContainer moves the name attribute onto an inner container
	// rendered by body (multifield).
	nameOnContainer bool
	attributes      func(w *elementWriter, props model.Properties) error
	body            func(w *elementWriter, f field) error
}

// components is populated in init: the multifield body renders nested fields
// through the same table.
var components map[model.FieldType]component

func init() {
	components = map[model.FieldType]component{
		model.FieldTypeTextField: {
			resourceType: graniteForm + "textfield",
			label:        true,
			attributes: typedAttributes(func(w *elementWriter, props model.TextFieldProperties) {
				w.attrIfSet("value", props.DefaultValue)
			}),
		},
		model.FieldTypeTextArea: {
			resourceType: graniteForm + "textarea",
			label:        true,
			attributes: typedAttributes(func(w *elementWriter, props model.TextAreaProperties) {
				w.intAttr("rows", props.Rows)
			}),
		},
		model.FieldTypeSelect: {
			resourceType: graniteForm + "select",
			label:        true,
			body:         selectBody,
		},
		model.FieldTypeCheckbox: {
			resourceType: graniteForm + "checkbox",
			attributes: typedAttributes(func(w *elementWriter, props model.CheckboxProperties) {
				w.attrIfSet("text", props.Text)
				w.boolAttr("checked", props.Checked)
			}),
		},
		model.FieldTypeHeading: {
			resourceType: "granite/ui/components/coral/foundation/heading",
			attributes: typedAttributes(func(w *elementWriter, props model.HeadingProperties) {
				w.attrIfSet("text", props.Text)
				w.intAttr("level", props.Level)
			}),
		},
		model.FieldTypeRichText: {
			resourceType: cqDialog + "richtext",
			label:        true,
			attributes: typedAttributes(func(w *elementWriter, props model.RichTextProperties) {
				w.boolAttr("useFixedInlineToolbar", props.UseFixedInlineToolbar)
			}),
			body: richTextBody,
		},
		model.FieldTypePathField: {
			resourceType: graniteForm + "pathfield",
			label:        true,
			attributes: typedAttributes(func(w *elementWriter, props model.PathFieldProperties) {
				w.attrIfSet("rootPath", props.RootPath)
			}),
		},
		model.FieldTypeFileUpload: {
			resourceType: cqDialog + "fileupload",
			label:        true,
			attributes:   typedAttributes(fileUploadAttributes),
		},
		model.FieldTypeMultiField: {
			resourceType:    graniteForm + "multifield",
			label:           true,
			nameOnContainer: true,
			attributes: typedAttributes(func(w *elementWriter, props model.MultiFieldProperties) {
				w.boolAttr("composite", props.Composite)
			}),
			body: multiFieldBody,
		},
	}
}

func typedAttributes[T model.Properties](fn func(*elementWriter, T)) func(*elementWriter, model.Properties) error {
	return func(w *elementWriter, props model.Properties) error {
		typed, ok := props.(T)
		if !ok {
			var zero T
			return fmt.Errorf("expected %s properties, got %T", zero.FieldType(), props)
		}
		fn(w, typed)
		return nil
	}
}

func fileUploadAttributes(w *elementWriter, props model.FileUploadProperties) {
	w.boolAttr("allowUpload", props.AllowUpload)
	w.intAttr("sizeLimit", props.SizeLimit)
	if len(props.MimeTypes) > 0 {
		w.attr("mimeTypes", "["+strings.Join(props.MimeTypes, ",")+"]")
	}
	w.attrIfSet("uploadUrl", props.UploadURL)
	w.attrIfSet("fileNameParameter", props.FileNameParameter)
	w.attrIfSet("fileReferenceParameter", props.FileReferenceParameter)
	w.boolAttr("autoStart", props.AutoStart)
	w.boolAttr("useHTML5", props.UseHTML5)
	w.boolAttr("uploadPrettyName", props.UploadPrettyName)
}

func selectBody(w *elementWriter, f field) error {
	props, ok := f.properties.(model.SelectProperties)
	if !ok {
		return fmt.Errorf("expected select properties, got %T", f.properties)
	}
	for _, option := range props.Options {
		w.line(`  <option jcr:primaryType="`, primaryTypeUnstructured, `" text="`, Escape(option.Text), `" value="`, Escape(option.Value), `"/>`)
	}
	return nil
}

func richTextBody(w *elementWriter, f field) error {
	props, ok := f.properties.(model.RichTextProperties)
	if !ok {
		return fmt.Errorf("expected richtext properties, got %T", f.properties)
	}
	w.line(`<rtePlugins jcr:primaryType="`, primaryTypeUnstructured, `">`)
	for _, category := range props.RTEPlugins.Categories() {
		if len(category.Features) == 0 {
			continue
		}
		w.line(`  <`, category.Name, ` jcr:primaryType="`, primaryTypeUnstructured, `" features="`, Escape(strings.Join(category.Features, ",")), `"/>`)
	}
	w.line(`</rtePlugins>`)
	return nil
}

func multiFieldBody(w *elementWriter, f field) error {
	props, ok := f.properties.(model.MultiFieldProperties)
	if !ok {
		return fmt.Errorf("expected multifield properties, got %T", f.properties)
	}

	var container elementWriter
	container.open("field")
	container.rawAttr("jcr:primaryType", primaryTypeUnstructured)
	container.rawAttr("sling:resourceType", graniteContainer)
	container.attr("name", "./"+f.name)
	container.endOpen()
	container.line(`  <items jcr:primaryType="`, primaryTypeUnstructured, `">`)
	for idx, nested := range props.NestedComponents {
		fragment, err := renderField(nestedField(nested), true)
		if err != nil {
			return fmt.Errorf("nested component %d (%q): %w", idx, nested.Name, err)
		}
		container.fragment(fragment, "    ")
	}
	container.line(`  </items>`)
	container.closeTag("field")

	w.fragment(container.String(), "  ")
	return nil
}

// nestedField projects a multifield sub-component onto the properties variant
// of its type so it can go through the regular component table.
func nestedField(nested model.NestedComponent) field {
	common := model.Common{FieldLabel: nested.FieldLabel, Required: nested.Required}

	var props model.Properties
	switch nested.Type {
	case model.FieldTypeTextField:
		props = model.TextFieldProperties{Common: common}
	case model.FieldTypeTextArea:
		props = model.TextAreaProperties{Common: common}
	case model.FieldTypeSelect:
		props = model.SelectProperties{Common: common, Options: nested.Options}
	case model.FieldTypePathField:
		props = model.PathFieldProperties{Common: common, RootPath: nested.RootPath}
	}

	return field{
		fieldType:  nested.Type,
		name:       nested.Name,
		properties: props,
	}
}
