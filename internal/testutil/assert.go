package testutil

import (
	"strings"
	"testing"
)

// AssertContent fails the test unless the todo file holds exactly want.
func (f *TodoFile) AssertContent(want string) {
	f.t.Helper()
	if got := f.Read(); got != want {
		f.t.Errorf("todo file content mismatch\n got: %q\nwant: %q", got, want)
	}
}

// AssertContains fails the test if the todo file does not contain substr.
func (f *TodoFile) AssertContains(substr string) {
	f.t.Helper()
	if content := f.Read(); !strings.Contains(content, substr) {
		f.t.Errorf("expected todo file to contain %q, got:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if the todo file contains substr.
func (f *TodoFile) AssertNotContains(substr string) {
	f.t.Helper()
	if content := f.Read(); strings.Contains(content, substr) {
		f.t.Errorf("expected todo file to not contain %q, got:\n%s", substr, content)
	}
}

// AssertNotExists fails the test if the todo file was created.
func (f *TodoFile) AssertNotExists() {
	f.t.Helper()
	if f.Exists() {
		f.t.Errorf("expected %s to not exist", f.Path)
	}
}

// AssertHasWarning checks that the result contains a warning with the given code.
func (r *CLIResult) AssertHasWarning(t *testing.T, code string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Code == code {
			return
		}
	}
	t.Errorf("expected warning with code %s, got warnings: %+v", code, r.Warnings)
}

// AssertNoWarnings checks that the result has no warnings.
func (r *CLIResult) AssertNoWarnings(t *testing.T) {
	t.Helper()
	if len(r.Warnings) > 0 {
		t.Errorf("expected no warnings, got: %+v", r.Warnings)
	}
}

// AssertResultCount checks that a list in Data has the expected length.
func (r *CLIResult) AssertResultCount(t *testing.T, key string, expected int) {
	t.Helper()
	if results := r.DataList(key); len(results) != expected {
		t.Errorf("expected %d %s, got %d\nRaw: %s", expected, key, len(results), r.RawJSON)
	}
}
