package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-aemdialog/pkg/designer"
	"github.com/goliatone/go-aemdialog/pkg/model"
	"github.com/goliatone/go-aemdialog/pkg/project"
	"github.com/goliatone/go-aemdialog/pkg/prompt"
)

type cli struct {
	t       *testing.T
	dir     string
	driver  prompt.Driver
	stderr  bytes.Buffer
	lastOut string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	for _, key := range []string{"AEMD_EXPORT_DIR", "AEMD_RENDERER", "AEMD_LOG_LEVEL", "AEMD_LOG_FORMAT", "AEMD_LOG_FILE"} {
		t.Setenv(key, "")
	}
	return &cli{t: t, dir: t.TempDir()}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out bytes.Buffer
	a := newApp(strings.NewReader(""), &out, &c.stderr)
	a.driver = c.driver
	root := newRootCmd(a)
	root.SetArgs(append([]string{
		"--config", filepath.Join(c.dir, "config.yaml"),
		"--workspace", filepath.Join(c.dir, "workspace.db"),
	}, args...))
	err := root.ExecuteContext(context.Background())
	c.lastOut = out.String()
	return c.lastOut, err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "aemdialog %s", strings.Join(args, " "))
	return out
}

// idFrom returns the second field of a "kind id ..." line.
func idFrom(t *testing.T, out string) string {
	t.Helper()
	fields := strings.Fields(out)
	require.GreaterOrEqual(t, len(fields), 2, out)
	return fields[1]
}

func TestCLI_RequiresProject(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("block", "add", "textfield", "headline")
	assert.True(t, errors.Is(err, designer.ErrNoProject), "got %v", err)

	_, err = c.run("export", "--stdout")
	assert.ErrorIs(t, err, designer.ErrNoProject)
}

func TestCLI_DesignAndExport(t *testing.T) {
	c := newCLI(t)
	c.mustRun("project", "new", "Hero", "components")

	headline := idFrom(t, c.mustRun("block", "add", "textfield", "headline"))
	c.mustRun("block", "set", headline, "--props", `{"fieldLabel":"Headline","required":true,"fieldDescription":null}`)

	c.mustRun("tab", "add", "Link", "Settings")
	size := idFrom(t, c.mustRun("block", "add", "select", "size"))
	c.mustRun("block", "set", size, "--props", `{"options":[{"text":"Small","value":"s"}]}`)

	list := c.mustRun("block", "list")
	assert.Contains(t, list, "headline")
	assert.Contains(t, list, "size")

	xml := c.mustRun("export", "--stdout")
	assert.Contains(t, xml, `fieldLabel="Headline"`)
	assert.Contains(t, xml, `name="./headline"`)
	assert.Contains(t, xml, `required="{Boolean}true"`)
	assert.Contains(t, xml, "<linksettings\n")
	assert.Contains(t, xml, `text="Small"`)
	assert.NotContains(t, xml, "Text field description")

	path := filepath.Join(c.dir, "out.xml")
	assert.Contains(t, c.mustRun("export", "-o", path), path)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, xml, string(written))

	md := c.mustRun("export", "--stdout", "--renderer", "md")
	assert.True(t, strings.HasPrefix(md, "# Dialog 1\n"), md)

	notes := filepath.Join(c.dir, "notes.md")
	c.mustRun("export", "-o", notes)
	written, err = os.ReadFile(notes)
	require.NoError(t, err)
	assert.Equal(t, md, string(written))

	fragment := c.mustRun("block", "show", headline)
	assert.True(t, strings.HasPrefix(fragment, "<headline\n"), fragment)
}

func TestCLI_TabRemovalCascades(t *testing.T) {
	c := newCLI(t)
	c.mustRun("project", "new", "Site")
	tab := idFrom(t, c.mustRun("tab", "add", "Extra"))
	c.mustRun("block", "add", "checkbox", "show")
	c.mustRun("tab", "rm", tab)

	assert.Empty(t, strings.TrimSpace(c.mustRun("block", "list")))
	tabs := c.mustRun("tab", "list")
	assert.Contains(t, tabs, "* default")
}

func TestCLI_SaveAndOpenProject(t *testing.T) {
	c := newCLI(t)
	c.mustRun("project", "new", "Teasers")
	dialog := idFrom(t, c.mustRun("dialog", "add", "Card"))
	c.mustRun("dialog", "help-path", "https://example.com/help")
	custom := idFrom(t, c.mustRun("custom", "add", "<b>Banner</b>", "--template", `<banner jcr:primaryType="nt:unstructured"/>`))
	c.mustRun("block", "add", "--custom", custom, "banner")

	path := filepath.Join(c.dir, "teasers.aem-project.json")
	c.mustRun("project", "save", "-o", path)
	assert.Contains(t, c.mustRun("project", "show"), "unsaved: false")

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	saved, err := project.Decode(file)
	require.NoError(t, err)
	require.Len(t, saved.Dialogs, 2)
	assert.Equal(t, "Banner", saved.CustomBlocks[0].Name)
	card, ok := saved.Dialog(dialog)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/help", card.HelpPath)
	require.Len(t, card.Blocks, 1)
	assert.Equal(t, model.CustomProperties{XMLTemplate: `<banner jcr:primaryType="nt:unstructured"/>`, CustomBlockID: custom}, card.Blocks[0].Properties)

	fresh := newCLI(t)
	fresh.mustRun("project", "open", path)
	dialogs := fresh.mustRun("dialog", "list")
	assert.Contains(t, dialogs, "Card")
	xml := fresh.mustRun("export", "--stdout", "--dialog", dialog)
	assert.Contains(t, xml, `<banner jcr:primaryType="nt:unstructured"/>`)
	assert.Contains(t, xml, `helpPath="https://example.com/help"`)
}

func TestCLI_ExportLogsBlockFailures(t *testing.T) {
	c := newCLI(t)
	path := filepath.Join(c.dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"p1","name":"Broken","dialogs":[
		{"id":"d1","name":"Broken","tabs":[{"id":"default","name":"Properties"}],
		 "blocks":[{"id":"b1","type":"select","name":"size","tabId":"default","properties":{"fieldLabel":"Size"}}]}]}`), 0o600))

	c.mustRun("project", "open", path)
	xml := c.mustRun("export", "--stdout")
	assert.Contains(t, xml, "<!-- Error generating XML for select: size -->")
	assert.Contains(t, c.stderr.String(), "block render failed")
	assert.Contains(t, c.stderr.String(), "block=size")

	c.mustRun("block", "set", "b1", "--props", `{"options":[{"text":"S","value":"s"}]}`)
	assert.NotContains(t, c.mustRun("export", "--stdout"), "Error generating XML")
}

func TestCLI_ExportFromFile(t *testing.T) {
	c := newCLI(t)
	path := filepath.Join(c.dir, "site.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"p1","name":"Site","dialogs":[
		{"id":"d1","name":"Hero","tabs":[{"id":"default","name":"Properties"}],
		 "blocks":[{"id":"b1","type":"textfield","name":"headline","tabId":"default","properties":{"fieldLabel":"Headline"}}]},
		{"id":"d2","name":"Teaser","tabs":[{"id":"default","name":"Properties"}],
		 "blocks":[{"id":"b2","type":"select","name":"size","tabId":"default","properties":{"fieldLabel":"Size"}}]}]}`), 0o600))

	xml := c.mustRun("export", "--from", path, "--stdout")
	assert.Contains(t, xml, `name="./headline"`)
	assert.NotContains(t, xml, "Error generating XML")
	assert.Contains(t, c.stderr.String(), "block properties not decoded")
	assert.Contains(t, c.stderr.String(), "block=size")

	teaser := c.mustRun("export", "--from", path, "--dialog", "d2", "--stdout")
	assert.Contains(t, teaser, "<!-- Error generating XML for select: size -->")

	_, err := c.run("export", "--stdout")
	assert.ErrorIs(t, err, designer.ErrNoProject)

	_, err = c.run("export", "--from", filepath.Join(c.dir, "absent.json"), "--stdout")
	assert.Error(t, err)
}

func TestCLI_ExportDefaultRendererFromConfig(t *testing.T) {
	c := newCLI(t)
	t.Setenv("AEMD_RENDERER", "md")
	c.mustRun("project", "new", "Hero")
	c.mustRun("block", "add", "textfield", "headline")

	md := c.mustRun("export", "--stdout")
	assert.True(t, strings.HasPrefix(md, "# Dialog 1\n"), md)

	xml := c.mustRun("export", "--stdout", "--renderer", "xml")
	assert.Contains(t, xml, `name="./headline"`)

	path := filepath.Join(c.dir, "hero.xml")
	c.mustRun("export", "-o", path)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, xml, string(written))
}

func TestCLI_InteractiveEdit(t *testing.T) {
	c := newCLI(t)
	c.mustRun("project", "new", "Site")
	id := idFrom(t, c.mustRun("block", "add", "pathfield", "link"))

	c.driver = &scriptedDriver{
		inputs:  []string{"Link", "Where to go", "/content/site"},
		confirm: []bool{true},
	}
	c.mustRun("block", "edit", id)

	fragment := c.mustRun("block", "show", id)
	assert.Contains(t, fragment, `rootPath="/content/site"`)
	assert.Contains(t, fragment, `fieldDescription="Where to go"`)
	assert.Contains(t, fragment, `required="{Boolean}true"`)
}

func TestCLI_BlocksPalette(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("blocks")
	assert.Contains(t, out, "Text Field")
	assert.Contains(t, out, "File Upload")
	assert.NotContains(t, out, "Custom Block")
}

type scriptedDriver struct {
	inputs  []string
	confirm []bool
}

func (s *scriptedDriver) Input(_ context.Context, _ prompt.InputConfig) (string, error) {
	if len(s.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	v := s.inputs[0]
	s.inputs = s.inputs[1:]
	return v, nil
}

func (s *scriptedDriver) Confirm(_ context.Context, _ prompt.ConfirmConfig) (bool, error) {
	if len(s.confirm) == 0 {
		return false, errors.New("no confirm scripted")
	}
	v := s.confirm[0]
	s.confirm = s.confirm[1:]
	return v, nil
}

func (s *scriptedDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	return -1, errors.New("no select scripted")
}

func (s *scriptedDriver) MultiSelect(context.Context, prompt.SelectConfig) ([]int, error) {
	return nil, errors.New("no multiselect scripted")
}

func (s *scriptedDriver) TextArea(context.Context, prompt.TextAreaConfig) (string, error) {
	return "", errors.New("no textarea scripted")
}

func (s *scriptedDriver) Info(context.Context, string) error { return nil }
