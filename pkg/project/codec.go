// Package project reads and writes project files: the JSON document holding
// every dialog and custom block of a designer session.
package project

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-aemdialog/pkg/model"
	"github.com/goliatone/go-aemdialog/pkg/render"
)

// Extension is appended to project file names.
const Extension = ".aem-project.json"

// ErrInvalidProject is returned when a payload is not a project document.
var ErrInvalidProject = errors.New("project: invalid project file")

//go:embed schema.json
var schemaDocument []byte

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

func projectSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaDocument))
	})
	return compiledSchema, schemaErr
}

// Decode reads a project from JSON, or YAML as a convenience. The document
// must carry a dialogs array; everything else is optional. Blocks whose
// properties cannot be decoded are kept as model.RawProperties.
func Decode(r io.Reader) (model.Project, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Project{}, fmt.Errorf("project: read: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes is Decode over an in-memory payload.
func DecodeBytes(data []byte) (model.Project, error) {
	payload, err := normalisePayload(data)
	if err != nil {
		return model.Project{}, err
	}
	if err := Validate(payload); err != nil {
		return model.Project{}, err
	}

	var out model.Project
	if err := json.Unmarshal(payload, &out); err != nil {
		return model.Project{}, fmt.Errorf("%w: %v", ErrInvalidProject, err)
	}
	if out.CustomBlocks == nil {
		out.CustomBlocks = []model.CustomBlock{}
	}
	for idx := range out.Dialogs {
		if out.Dialogs[idx].Blocks == nil {
			out.Dialogs[idx].Blocks = []model.Block{}
		}
	}
	return out, nil
}

// Validate checks a JSON payload against the project schema.
func Validate(payload []byte) error {
	schema, err := projectSchema()
	if err != nil {
		return fmt.Errorf("project: compile schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProject, err)
	}
	if result.Valid() {
		return nil
	}
	issues := make([]string, 0, len(result.Errors()))
	for _, issue := range result.Errors() {
		issues = append(issues, issue.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidProject, strings.Join(issues, "; "))
}

// Encode writes p as 2-space indented JSON. HTML characters are left as-is
// so custom XML templates stay readable.
func Encode(w io.Writer, p model.Project) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(p); err != nil {
		return fmt.Errorf("project: encode: %w", err)
	}
	return nil
}

// Filename derives the download name of a project file.
func Filename(name string) string {
	if strings.TrimSpace(name) == "" {
		name = "project"
	}
	return render.Filename(name, Extension)
}

func normalisePayload(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidProject)
	}
	if json.Valid(trimmed) {
		return trimmed, nil
	}

	var doc any
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON or YAML", ErrInvalidProject)
	}
	payload, err := json.Marshal(jsonCompatible(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProject, err)
	}
	return payload, nil
}

// jsonCompatible converts the generic maps produced by the YAML decoder into
// shapes encoding/json accepts.
func jsonCompatible(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = jsonCompatible(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = jsonCompatible(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for idx, item := range v {
			out[idx] = jsonCompatible(item)
		}
		return out
	default:
		return v
	}
}
