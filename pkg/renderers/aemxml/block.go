package aemxml

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-aemdialog/pkg/model"
)

var (
	// ErrUnsupportedType is returned for field types without a component.
	ErrUnsupportedType = errors.New("aemxml: unsupported field type")
	// ErrMalformedProperties is returned when a block's properties could not
	// be decoded or do not match its type.
	ErrMalformedProperties = errors.New("aemxml: malformed properties")
)

// field is the renderer's view of a block or nested component.
type field struct {
	fieldType  model.FieldType
	name       string
	properties model.Properties
}

func fieldFromBlock(block model.Block) field {
	return field{
		fieldType:  block.Type,
		name:       block.Name,
		properties: block.Properties,
	}
}

// RenderBlock serializes a single block. Custom blocks are returned verbatim.
// The block name is written as given; callers producing names should check
// them with model.ValidName.
func RenderBlock(block model.Block) (out string, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			out = ""
			err = fmt.Errorf("aemxml: render %s %q panicked: %v", block.Type, block.Name, recovered)
		}
	}()
	return renderField(fieldFromBlock(block), false)
}

func renderField(f field, nested bool) (string, error) {
	if f.fieldType == model.FieldTypeCustom {
		if nested {
			return "", fmt.Errorf("%w: custom cannot be nested", ErrUnsupportedType)
		}
		return customTemplate(f.properties)
	}

	comp, ok := components[f.fieldType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, f.fieldType)
	}
	if nested && !f.fieldType.NestedAllowed() {
		return "", fmt.Errorf("%w: %s cannot be nested", ErrUnsupportedType, f.fieldType)
	}
	if err := checkProperties(f); err != nil {
		return "", err
	}
	if f.name == "" {
		return "", errors.New("aemxml: block name is required")
	}

	common := model.CommonOf(f.properties)

	var w elementWriter
	w.open(f.name)
	w.rawAttr("jcr:primaryType", primaryTypeUnstructured)
	w.rawAttr("sling:resourceType", comp.resourceType)
	if comp.label {
		w.attrIfSet("fieldLabel", common.FieldLabel)
	}
	if !comp.nameOnContainer {
		w.attr("name", "./"+f.name)
	}
	w.boolAttr("required", common.Required)
	w.attrIfSet("fieldDescription", common.FieldDescription)
	if comp.attributes != nil {
		if err := comp.attributes(&w, f.properties); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedProperties, err)
		}
	}

	if comp.body == nil {
		w.selfClose()
		return w.String(), nil
	}

	w.endOpen()
	if err := comp.body(&w, f); err != nil {
		return "", err
	}
	w.closeTag(f.name)
	return w.String(), nil
}

func checkProperties(f field) error {
	switch props := f.properties.(type) {
	case nil:
		return fmt.Errorf("%w: %s %q has no properties", ErrMalformedProperties, f.fieldType, f.name)
	case model.RawProperties:
		return fmt.Errorf("%w: %s", ErrMalformedProperties, props.Err)
	}
	if got := f.properties.FieldType(); got != f.fieldType {
		return fmt.Errorf("%w: %s block carries %s properties", ErrMalformedProperties, f.fieldType, got)
	}
	return nil
}

func customTemplate(props model.Properties) (string, error) {
	switch typed := props.(type) {
	case nil:
		return "", nil
	case model.CustomProperties:
		return typed.XMLTemplate, nil
	case model.RawProperties:
		return "", fmt.Errorf("%w: %s", ErrMalformedProperties, typed.Err)
	default:
		return "", fmt.Errorf("%w: custom block carries %s properties", ErrMalformedProperties, props.FieldType())
	}
}
