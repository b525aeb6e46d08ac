package model

import "encoding/json"

// Properties is the type-specific configuration of a block. Each FieldType has
// exactly one variant; FieldType reports which.
type Properties interface {
	FieldType() FieldType
}

// Common holds the attributes shared by every standard field. Variants embed
// it, so its fields sit at the top level of the JSON payload.
type Common struct {
	FieldLabel       string `json:"fieldLabel,omitempty"`
	FieldDescription string `json:"fieldDescription,omitempty"`
	Required         bool   `json:"required"`
}

// Base returns the shared attributes. It is promoted onto every variant that
// embeds Common.
func (c Common) Base() Common { return c }

// CommonOf extracts the shared attributes from any variant. Variants without
// them (custom, raw) yield the zero value.
func CommonOf(p Properties) Common {
	if based, ok := p.(interface{ Base() Common }); ok {
		return based.Base()
	}
	return Common{}
}

// Option is one entry of a select.
type Option struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

// PluginFeatures lists the toolbar features enabled for one RTE plugin.
type PluginFeatures struct {
	Features []string `json:"features"`
}

// RTEPlugins groups the rich-text plugin categories in emission order.
type RTEPlugins struct {
	Format     PluginFeatures `json:"format"`
	Justify    PluginFeatures `json:"justify"`
	Links      PluginFeatures `json:"links"`
	Lists      PluginFeatures `json:"lists"`
	ParaFormat PluginFeatures `json:"paraformat"`
}

// Categories returns the plugin categories paired with their node names, in
// the order they are serialized.
func (p RTEPlugins) Categories() []PluginCategory {
	return []PluginCategory{
		{Name: "format", Features: p.Format.Features},
		{Name: "justify", Features: p.Justify.Features},
		{Name: "links", Features: p.Links.Features},
		{Name: "lists", Features: p.Lists.Features},
		{Name: "paraformat", Features: p.ParaFormat.Features},
	}
}

// PluginCategory is a named view over one RTE plugin.
type PluginCategory struct {
	Name     string
	Features []string
}

// NestedComponent is a sub-field of a multifield. It has no identity or
// lifecycle of its own.
type NestedComponent struct {
	Type       FieldType `json:"type"`
	Name       string    `json:"name"`
	FieldLabel string    `json:"fieldLabel,omitempty"`
	RootPath   string    `json:"rootPath,omitempty"`
	Required   bool      `json:"required"`
	Options    []Option  `json:"options,omitempty"`
}

type TextFieldProperties struct {
	Common
	DefaultValue string `json:"defaultValue"`
}

func (TextFieldProperties) FieldType() FieldType { return FieldTypeTextField }

type TextAreaProperties struct {
	Common
	Rows int `json:"rows,omitempty"`
}

func (TextAreaProperties) FieldType() FieldType { return FieldTypeTextArea }

type SelectProperties struct {
	Common
	Options []Option `json:"options"`
}

func (SelectProperties) FieldType() FieldType { return FieldTypeSelect }

type CheckboxProperties struct {
	Common
	Text    string `json:"text,omitempty"`
	Checked bool   `json:"checked"`
}

func (CheckboxProperties) FieldType() FieldType { return FieldTypeCheckbox }

type HeadingProperties struct {
	Common
	Text  string `json:"text,omitempty"`
	Level int    `json:"level,omitempty"`
}

func (HeadingProperties) FieldType() FieldType { return FieldTypeHeading }

type RichTextProperties struct {
	Common
	UseFixedInlineToolbar bool       `json:"useFixedInlineToolbar"`
	RTEPlugins            RTEPlugins `json:"rtePlugins"`
}

func (RichTextProperties) FieldType() FieldType { return FieldTypeRichText }

type PathFieldProperties struct {
	Common
	RootPath string `json:"rootPath,omitempty"`
}

func (PathFieldProperties) FieldType() FieldType { return FieldTypePathField }

type FileUploadProperties struct {
	Common
	AllowUpload            bool     `json:"allowUpload"`
	SizeLimit              int      `json:"sizeLimit,omitempty"`
	MimeTypes              []string `json:"mimeTypes,omitempty"`
	UploadURL              string   `json:"uploadUrl,omitempty"`
	FileNameParameter      string   `json:"fileNameParameter,omitempty"`
	FileReferenceParameter string   `json:"fileReferenceParameter,omitempty"`
	AutoStart              bool     `json:"autoStart"`
	UseHTML5               bool     `json:"useHTML5"`
	UploadPrettyName       bool     `json:"uploadPrettyName"`
}

func (FileUploadProperties) FieldType() FieldType { return FieldTypeFileUpload }

type MultiFieldProperties struct {
	Common
	Composite        bool              `json:"composite"`
	NestedComponents []NestedComponent `json:"nestedComponents"`
}

func (MultiFieldProperties) FieldType() FieldType { return FieldTypeMultiField }

// CustomProperties carries the literal XML fragment of a custom block.
// CustomBlockID links back to the palette entry the block was created from.
type CustomProperties struct {
	XMLTemplate   string `json:"xmlTemplate"`
	CustomBlockID string `json:"customBlockId,omitempty"`
}

func (CustomProperties) FieldType() FieldType { return FieldTypeCustom }

// RawProperties preserves a payload that could not be decoded for Kind. Err
// records why. It marshals back to Raw untouched.
type RawProperties struct {
	Kind FieldType
	Raw  json.RawMessage
	Err  string
}

func (p RawProperties) FieldType() FieldType { return p.Kind }

// MarshalJSON emits the preserved payload.
func (p RawProperties) MarshalJSON() ([]byte, error) {
	if len(p.Raw) == 0 {
		return []byte("{}"), nil
	}
	return p.Raw, nil
}
