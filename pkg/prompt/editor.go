// Package prompt walks a block's properties through a terminal prompt driver
// so the CLI can edit blocks interactively.
package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-aemdialog/pkg/blocks"
	"github.com/goliatone/go-aemdialog/pkg/model"
)

// pluginCatalog lists the features offered per RTE plugin category.
var pluginCatalog = map[string][]string{
	"format":     {"bold", "italic", "underline"},
	"justify":    {"justifyleft", "justifycenter", "justifyright"},
	"links":      {"modifylink", "unlink", "anchor"},
	"lists":      {"bullet", "numbered", "outdent", "indent"},
	"paraformat": {"default", "h1", "h2", "h3", "h4", "h5", "h6"},
}

const doneOption = "Done"

// Editor prompts for new property values, starting from the current ones as
// defaults.
type Editor struct {
	driver Driver
}

// NewEditor builds an editor around the supplied driver.
func NewEditor(driver Driver) *Editor {
	return &Editor{driver: driver}
}

// ChooseEntry asks the user to pick one palette entry.
func (e *Editor) ChooseEntry(ctx context.Context, palette []blocks.PaletteEntry) (blocks.PaletteEntry, error) {
	if len(palette) == 0 {
		return blocks.PaletteEntry{}, fmt.Errorf("prompt: palette is empty")
	}
	labels := make([]string, len(palette))
	for i, entry := range palette {
		labels[i] = entry.Label
	}
	idx, err := e.driver.Select(ctx, SelectConfig{Message: "Block type", Options: labels})
	if err != nil {
		return blocks.PaletteEntry{}, err
	}
	if idx < 0 || idx >= len(palette) {
		return blocks.PaletteEntry{}, fmt.Errorf("prompt: selection %d out of range", idx)
	}
	return palette[idx], nil
}

// EditProperties prompts for every editable attribute of block and returns the
// updated properties. The input block is not modified.
func (e *Editor) EditProperties(ctx context.Context, block model.Block) (model.Properties, error) {
	switch props := model.CloneProperties(block.Properties).(type) {
	case model.TextFieldProperties:
		common, err := e.common(ctx, props.Common, true)
		if err != nil {
			return nil, err
		}
		props.Common = common
		if props.DefaultValue, err = e.input(ctx, "Default value", props.DefaultValue, nil); err != nil {
			return nil, err
		}
		return props, nil

	case model.TextAreaProperties:
		common, err := e.common(ctx, props.Common, true)
		if err != nil {
			return nil, err
		}
		props.Common = common
		if props.Rows, err = e.number(ctx, "Rows", props.Rows); err != nil {
			return nil, err
		}
		return props, nil

	case model.SelectProperties:
		common, err := e.common(ctx, props.Common, true)
		if err != nil {
			return nil, err
		}
		props.Common = common
		if props.Options, err = e.options(ctx, props.Options); err != nil {
			return nil, err
		}
		return props, nil

	case model.CheckboxProperties:
		common, err := e.common(ctx, props.Common, false)
		if err != nil {
			return nil, err
		}
		props.Common = common
		if props.Text, err = e.input(ctx, "Checkbox text", props.Text, nil); err != nil {
			return nil, err
		}
		if props.Checked, err = e.confirm(ctx, "Checked by default?", props.Checked); err != nil {
			return nil, err
		}
		return props, nil

	case model.HeadingProperties:
		var err error
		if props.Text, err = e.input(ctx, "Heading text", props.Text, nil); err != nil {
			return nil, err
		}
		levels := []string{"1", "2", "3", "4", "5", "6"}
		idx, err := e.driver.Select(ctx, SelectConfig{Message: "Level", Options: levels, DefaultIndex: props.Level - 1})
		if err != nil {
			return nil, err
		}
		if idx >= 0 {
			props.Level = idx + 1
		}
		return props, nil

	case model.RichTextProperties:
		common, err := e.common(ctx, props.Common, true)
		if err != nil {
			return nil, err
		}
		props.Common = common
		if props.UseFixedInlineToolbar, err = e.confirm(ctx, "Use fixed inline toolbar?", props.UseFixedInlineToolbar); err != nil {
			return nil, err
		}
		if props.RTEPlugins, err = e.plugins(ctx, props.RTEPlugins); err != nil {
			return nil, err
		}
		return props, nil

	case model.PathFieldProperties:
		common, err := e.common(ctx, props.Common, true)
		if err != nil {
			return nil, err
		}
		props.Common = common
		if props.RootPath, err = e.input(ctx, "Root path", props.RootPath, nil); err != nil {
			return nil, err
		}
		return props, nil

	case model.FileUploadProperties:
		common, err := e.common(ctx, props.Common, true)
		if err != nil {
			return nil, err
		}
		props.Common = common
		if props.AllowUpload, err = e.confirm(ctx, "Allow upload?", props.AllowUpload); err != nil {
			return nil, err
		}
		if props.SizeLimit, err = e.number(ctx, "Size limit", props.SizeLimit); err != nil {
			return nil, err
		}
		mimeTypes, err := e.input(ctx, "MIME types (comma separated)", strings.Join(props.MimeTypes, ", "), nil)
		if err != nil {
			return nil, err
		}
		props.MimeTypes = splitList(mimeTypes)
		if props.UploadURL, err = e.input(ctx, "Upload URL", props.UploadURL, nil); err != nil {
			return nil, err
		}
		return props, nil

	case model.MultiFieldProperties:
		common, err := e.common(ctx, props.Common, true)
		if err != nil {
			return nil, err
		}
		props.Common = common
		if props.Composite, err = e.confirm(ctx, "Composite?", props.Composite); err != nil {
			return nil, err
		}
		if props.NestedComponents, err = e.nested(ctx, props.NestedComponents); err != nil {
			return nil, err
		}
		return props, nil

	case model.CustomProperties:
		template, err := e.driver.TextArea(ctx, TextAreaConfig{Message: "XML template", Default: props.XMLTemplate})
		if err != nil {
			return nil, err
		}
		props.XMLTemplate = template
		return props, nil

	case nil:
		return nil, fmt.Errorf("%w: block %q has no properties", ErrNotEditable, block.Name)

	default:
		return nil, fmt.Errorf("%w: block %q (%s)", ErrNotEditable, block.Name, block.Type)
	}
}

func (e *Editor) common(ctx context.Context, c model.Common, label bool) (model.Common, error) {
	var err error
	if label {
		if c.FieldLabel, err = e.input(ctx, "Field label", c.FieldLabel, nil); err != nil {
			return c, err
		}
	}
	if c.FieldDescription, err = e.input(ctx, "Description", c.FieldDescription, nil); err != nil {
		return c, err
	}
	if c.Required, err = e.confirm(ctx, "Required?", c.Required); err != nil {
		return c, err
	}
	return c, nil
}

// options keeps the current list unless the user opts to replace it. An
// empty replacement keeps the current list.
func (e *Editor) options(ctx context.Context, current []model.Option) ([]model.Option, error) {
	replace, err := e.confirm(ctx, fmt.Sprintf("Replace the %d option(s)?", len(current)), false)
	if err != nil || !replace {
		return current, err
	}

	var next []model.Option
	for {
		text, err := e.input(ctx, "Option text (empty to finish)", "", nil)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			break
		}
		value, err := e.input(ctx, "Option value", optionValue(text), nil)
		if err != nil {
			return nil, err
		}
		next = append(next, model.Option{Text: text, Value: value})
	}
	if len(next) == 0 {
		if err := e.driver.Info(ctx, "No options entered, keeping the current list."); err != nil {
			return nil, err
		}
		return current, nil
	}
	return next, nil
}

func (e *Editor) plugins(ctx context.Context, current model.RTEPlugins) (model.RTEPlugins, error) {
	targets := map[string]*model.PluginFeatures{
		"format":     &current.Format,
		"justify":    &current.Justify,
		"links":      &current.Links,
		"lists":      &current.Lists,
		"paraformat": &current.ParaFormat,
	}
	for _, category := range current.Categories() {
		options := mergeFeatures(pluginCatalog[category.Name], category.Features)
		picked, err := e.driver.MultiSelect(ctx, SelectConfig{
			Message:  category.Name + " features",
			Options:  options,
			Defaults: indicesOf(options, category.Features),
		})
		if err != nil {
			return current, err
		}
		features := make([]string, 0, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(options) {
				features = append(features, options[idx])
			}
		}
		targets[category.Name].Features = features
	}
	return current, nil
}

// nested keeps the current components unless the user opts to rebuild them.
func (e *Editor) nested(ctx context.Context, current []model.NestedComponent) ([]model.NestedComponent, error) {
	rebuild, err := e.confirm(ctx, fmt.Sprintf("Rebuild the %d nested component(s)?", len(current)), false)
	if err != nil || !rebuild {
		return current, err
	}

	var allowed []model.FieldType
	for _, t := range model.FieldTypes() {
		if t.NestedAllowed() {
			allowed = append(allowed, t)
		}
	}
	choices := make([]string, 0, len(allowed)+1)
	for _, t := range allowed {
		choices = append(choices, string(t))
	}
	choices = append(choices, doneOption)

	var next []model.NestedComponent
	for {
		idx, err := e.driver.Select(ctx, SelectConfig{Message: "Nested component type", Options: choices})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(allowed) {
			break
		}
		component := model.NestedComponent{Type: allowed[idx]}
		if component.Name, err = e.input(ctx, "Name", "", validName); err != nil {
			return nil, err
		}
		if component.FieldLabel, err = e.input(ctx, "Field label", "", nil); err != nil {
			return nil, err
		}
		switch component.Type {
		case model.FieldTypePathField:
			if component.RootPath, err = e.input(ctx, "Root path", "/content", nil); err != nil {
				return nil, err
			}
		case model.FieldTypeSelect:
			if component.Options, err = e.options(ctx, nil); err != nil {
				return nil, err
			}
		}
		if component.Required, err = e.confirm(ctx, "Required?", false); err != nil {
			return nil, err
		}
		next = append(next, component)
	}
	if len(next) == 0 {
		if err := e.driver.Info(ctx, "No nested components entered, keeping the current list."); err != nil {
			return nil, err
		}
		return current, nil
	}
	return next, nil
}

func (e *Editor) input(ctx context.Context, message, def string, validator func(string) error) (string, error) {
	return e.driver.Input(ctx, InputConfig{Message: message, Default: def, Validator: validator})
}

func (e *Editor) confirm(ctx context.Context, message string, def bool) (bool, error) {
	return e.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def})
}

func (e *Editor) number(ctx context.Context, message string, def int) (int, error) {
	raw, err := e.input(ctx, message, strconv.Itoa(def), validNumber)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("prompt: %s: %w", message, err)
	}
	return n, nil
}

func validNumber(raw string) error {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}
	if n < 0 {
		return fmt.Errorf("enter zero or more")
	}
	return nil
}

func validName(raw string) error {
	if !model.ValidName(raw) {
		return fmt.Errorf("not a valid XML node name")
	}
	return nil
}

func optionValue(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), ""))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func mergeFeatures(catalog, current []string) []string {
	out := append([]string(nil), catalog...)
	for _, feature := range current {
		if indexOf(out, feature) < 0 {
			out = append(out, feature)
		}
	}
	return out
}
