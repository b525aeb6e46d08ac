package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-aemdialog/pkg/blocks"
	"github.com/goliatone/go-aemdialog/pkg/model"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	messages     []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newBlock(t *testing.T, fieldType model.FieldType, name string) model.Block {
	t.Helper()
	block, err := blocks.NewDefaultRegistry().NewBlock(fieldType, name)
	if err != nil {
		t.Fatalf("new block: %v", err)
	}
	return block
}

func TestEditProperties_TextField(t *testing.T) {
	driver := &stubDriver{
		inputs:  []string{"Headline", "Main title", "Hello"},
		confirm: []bool{true},
	}

	got, err := NewEditor(driver).EditProperties(context.Background(), newBlock(t, model.FieldTypeTextField, "headline"))
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	want := model.TextFieldProperties{
		Common:       model.Common{FieldLabel: "Headline", FieldDescription: "Main title", Required: true},
		DefaultValue: "Hello",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}
}

func TestEditProperties_SelectReplacesOptions(t *testing.T) {
	driver := &stubDriver{
		inputs:  []string{"Size", "", "Small", "s", "Extra Large", "xl", ""},
		confirm: []bool{false, true},
	}
	block := newBlock(t, model.FieldTypeSelect, "size")

	got, err := NewEditor(driver).EditProperties(context.Background(), block)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	props := got.(model.SelectProperties)
	want := []model.Option{{Text: "Small", Value: "s"}, {Text: "Extra Large", Value: "xl"}}
	if diff := cmp.Diff(want, props.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if len(block.Properties.(model.SelectProperties).Options) != 2 ||
		block.Properties.(model.SelectProperties).Options[0].Value != "option1" {
		t.Fatal("source block was modified")
	}
}

func TestEditProperties_EmptyOptionListKeepsCurrent(t *testing.T) {
	driver := &stubDriver{
		inputs:  []string{"Size", "", ""},
		confirm: []bool{false, true},
	}

	got, err := NewEditor(driver).EditProperties(context.Background(), newBlock(t, model.FieldTypeSelect, "size"))
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if len(got.(model.SelectProperties).Options) != 2 {
		t.Fatalf("options should be kept, got %+v", got)
	}
	if len(driver.infoMessages) != 1 {
		t.Fatalf("expected an info message, got %v", driver.infoMessages)
	}
}

func TestEditProperties_RichTextPlugins(t *testing.T) {
	driver := &stubDriver{
		inputs:   []string{"Body", ""},
		confirm:  []bool{false, false},
		multiIdx: [][]int{{0}, {}, {0, 1}, {1}, {0, 1}},
	}

	got, err := NewEditor(driver).EditProperties(context.Background(), newBlock(t, model.FieldTypeRichText, "body"))
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	props := got.(model.RichTextProperties)
	if props.UseFixedInlineToolbar {
		t.Fatal("toolbar flag not updated")
	}
	want := model.RTEPlugins{
		Format:     model.PluginFeatures{Features: []string{"bold"}},
		Justify:    model.PluginFeatures{Features: []string{}},
		Links:      model.PluginFeatures{Features: []string{"modifylink", "unlink"}},
		Lists:      model.PluginFeatures{Features: []string{"numbered"}},
		ParaFormat: model.PluginFeatures{Features: []string{"default", "h1"}},
	}
	if diff := cmp.Diff(want, props.RTEPlugins); diff != "" {
		t.Fatalf("plugins mismatch (-want +got):\n%s", diff)
	}
}

func TestEditProperties_MultiFieldRebuildsNested(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Links", "", "title", "Title", "link", "Link", "/content/site"},
		confirm:   []bool{false, true, true, true, false},
		selectIdx: []int{0, 3, 4},
	}

	got, err := NewEditor(driver).EditProperties(context.Background(), newBlock(t, model.FieldTypeMultiField, "links"))
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	want := []model.NestedComponent{
		{Type: model.FieldTypeTextField, Name: "title", FieldLabel: "Title", Required: true},
		{Type: model.FieldTypePathField, Name: "link", FieldLabel: "Link", RootPath: "/content/site"},
	}
	props := got.(model.MultiFieldProperties)
	if diff := cmp.Diff(want, props.NestedComponents); diff != "" {
		t.Fatalf("nested mismatch (-want +got):\n%s", diff)
	}
	if !props.Composite {
		t.Fatal("composite should stay true")
	}
}

func TestEditProperties_RejectsInvalidNestedName(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Links", "", "1bad"},
		confirm:   []bool{false, true, true},
		selectIdx: []int{0},
	}

	_, err := NewEditor(driver).EditProperties(context.Background(), newBlock(t, model.FieldTypeMultiField, "links"))
	if err == nil {
		t.Fatal("expected validator error")
	}
}

func TestEditProperties_CustomAndHeading(t *testing.T) {
	driver := &stubDriver{textAreas: []string{"<foo/>"}}
	block := model.Block{Name: "foo", Type: model.FieldTypeCustom, Properties: model.CustomProperties{}}

	got, err := NewEditor(driver).EditProperties(context.Background(), block)
	if err != nil {
		t.Fatalf("edit custom: %v", err)
	}
	if got.(model.CustomProperties).XMLTemplate != "<foo/>" {
		t.Fatalf("template = %+v", got)
	}

	driver = &stubDriver{inputs: []string{"Links"}, selectIdx: []int{1}}
	got, err = NewEditor(driver).EditProperties(context.Background(), newBlock(t, model.FieldTypeHeading, "title"))
	if err != nil {
		t.Fatalf("edit heading: %v", err)
	}
	if diff := cmp.Diff(model.HeadingProperties{Text: "Links", Level: 2}, got); diff != "" {
		t.Fatalf("heading mismatch (-want +got):\n%s", diff)
	}
}

func TestEditProperties_RawIsNotEditable(t *testing.T) {
	block := model.Block{
		Name:       "size",
		Type:       model.FieldTypeSelect,
		Properties: model.RawProperties{Kind: model.FieldTypeSelect, Raw: []byte(`{}`)},
	}
	_, err := NewEditor(&stubDriver{}).EditProperties(context.Background(), block)
	if !errors.Is(err, ErrNotEditable) {
		t.Fatalf("err = %v, want ErrNotEditable", err)
	}
}

func TestChooseEntry(t *testing.T) {
	palette := blocks.NewDefaultRegistry().Palette([]model.CustomBlock{{ID: "c1", Name: "Banner"}})
	driver := &stubDriver{selectIdx: []int{len(palette) - 1}}

	entry, err := NewEditor(driver).ChooseEntry(context.Background(), palette)
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if entry.CustomBlockID != "c1" {
		t.Fatalf("entry = %+v", entry)
	}
}
