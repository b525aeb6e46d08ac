package model

import (
	"regexp"
	"slices"
	"strings"
)

// Clone returns a deep copy of the block, including its properties.
func (b Block) Clone() Block {
	b.Properties = CloneProperties(b.Properties)
	return b
}

// Clone returns a deep copy of the dialog.
func (d Dialog) Clone() Dialog {
	d.Tabs = slices.Clone(d.Tabs)
	if d.Blocks != nil {
		blocks := make([]Block, len(d.Blocks))
		for idx, block := range d.Blocks {
			blocks[idx] = block.Clone()
		}
		d.Blocks = blocks
	}
	return d
}

// Clone returns a deep copy of the project.
func (p Project) Clone() Project {
	if p.Dialogs != nil {
		dialogs := make([]Dialog, len(p.Dialogs))
		for idx, dialog := range p.Dialogs {
			dialogs[idx] = dialog.Clone()
		}
		p.Dialogs = dialogs
	}
	p.CustomBlocks = slices.Clone(p.CustomBlocks)
	return p
}

// CloneProperties deep-copies the slices held by a properties variant.
func CloneProperties(p Properties) Properties {
	switch props := p.(type) {
	case SelectProperties:
		props.Options = slices.Clone(props.Options)
		return props
	case RichTextProperties:
		props.RTEPlugins = RTEPlugins{
			Format:     PluginFeatures{Features: slices.Clone(props.RTEPlugins.Format.Features)},
			Justify:    PluginFeatures{Features: slices.Clone(props.RTEPlugins.Justify.Features)},
			Links:      PluginFeatures{Features: slices.Clone(props.RTEPlugins.Links.Features)},
			Lists:      PluginFeatures{Features: slices.Clone(props.RTEPlugins.Lists.Features)},
			ParaFormat: PluginFeatures{Features: slices.Clone(props.RTEPlugins.ParaFormat.Features)},
		}
		return props
	case FileUploadProperties:
		props.MimeTypes = slices.Clone(props.MimeTypes)
		return props
	case MultiFieldProperties:
		if props.NestedComponents != nil {
			nested := make([]NestedComponent, len(props.NestedComponents))
			for idx, component := range props.NestedComponents {
				component.Options = slices.Clone(component.Options)
				nested[idx] = component
			}
			props.NestedComponents = nested
		}
		return props
	case RawProperties:
		props.Raw = cloneRaw(props.Raw)
		return props
	default:
		return p
	}
}

var xmlNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9._-]*$`)

// ValidName reports whether name can be used as an XML local name (and
// therefore as a block or nested component name). Names starting with "xml"
// are reserved by XML.
func ValidName(name string) bool {
	if !xmlNamePattern.MatchString(name) {
		return false
	}
	return !strings.HasPrefix(strings.ToLower(name), "xml")
}
