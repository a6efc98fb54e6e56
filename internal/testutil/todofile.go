// Package testutil provides reusable test utilities for Ambrogio tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TodoFile is a temporary workspace holding a todo file and its neighbours.
type TodoFile struct {
	// Dir is the temporary workspace root.
	Dir string

	// Path is the todo file inside Dir.
	Path string

	t       *testing.T
	content *string
	files   map[string]string
}

// NewTodoFile creates a todo file builder.
// Call Build() to create the workspace.
func NewTodoFile(t *testing.T) *TodoFile {
	t.Helper()
	return &TodoFile{
		t:     t,
		files: make(map[string]string),
	}
}

// With sets the todo file content. Without it the file is not created.
func (f *TodoFile) With(content string) *TodoFile {
	f.content = &content
	return f
}

// WithFile adds a file relative to the workspace root, such as an
// organiser or a hook script.
func (f *TodoFile) WithFile(relPath, content string) *TodoFile {
	f.files[relPath] = content
	return f
}

// WithOrganiser adds organiser.md to the workspace.
func (f *TodoFile) WithOrganiser(content string) *TodoFile {
	return f.WithFile("organiser.md", content)
}

// Build creates the workspace and returns the builder for chaining.
func (f *TodoFile) Build() *TodoFile {
	f.t.Helper()

	f.Dir = f.t.TempDir()
	f.Path = filepath.Join(f.Dir, "todos.md")

	if f.content != nil {
		f.writeFile("todos.md", *f.content)
	}
	for path, content := range f.files {
		f.writeFile(path, content)
	}
	return f
}

// Join returns a path inside the workspace.
func (f *TodoFile) Join(relPath string) string {
	return filepath.Join(f.Dir, relPath)
}

func (f *TodoFile) writeFile(relPath, content string) {
	f.t.Helper()
	fullPath := f.Join(relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		f.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		f.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// Read returns the todo file content.
func (f *TodoFile) Read() string {
	f.t.Helper()
	content, err := os.ReadFile(f.Path)
	if err != nil {
		f.t.Fatalf("failed to read %s: %v", f.Path, err)
	}
	return string(content)
}

// Exists reports whether the todo file exists.
func (f *TodoFile) Exists() bool {
	_, err := os.Stat(f.Path)
	return err == nil
}
