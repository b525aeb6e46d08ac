package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-aemdialog/pkg/model"
)

// MustLoadProject reads a project JSON fixture. Testing helpers fail the test
// on error to keep contract tests concise.
func MustLoadProject(t *testing.T, path string) model.Project {
	t.Helper()

	project, err := LoadProject(path)
	if err != nil {
		t.Fatalf("load project: %v", err)
	}
	return project
}

// LoadProject returns a Project without requiring testing.T, allowing callers
// to wire fixtures in setup functions.
func LoadProject(path string) (model.Project, error) {
	if path == "" {
		return model.Project{}, errors.New("testsupport: project path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("testsupport: read project: %w", err)
	}
	var out model.Project
	if err := json.Unmarshal(data, &out); err != nil {
		return model.Project{}, fmt.Errorf("testsupport: unmarshal project: %w", err)
	}
	return out, nil
}

// MustLoadDialog returns the first dialog of a project fixture.
func MustLoadDialog(t *testing.T, path string) model.Dialog {
	t.Helper()

	project := MustLoadProject(t, path)
	if len(project.Dialogs) == 0 {
		t.Fatalf("fixture %s has no dialogs", path)
	}
	return project.Dialogs[0]
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	writeFile(t, path, data)
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}
