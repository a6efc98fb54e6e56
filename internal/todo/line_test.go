package todo

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		kind      Kind
		text      string
		cancelled bool
	}{
		{name: "project", raw: "## Work", kind: KindProject, text: "Work"},
		{name: "project trims", raw: "##   Side gig  ", kind: KindProject, text: "Side gig"},
		{name: "empty project header", raw: "## ", kind: KindProject, text: ""},
		{name: "h1 is other", raw: "# Work", kind: KindOther},
		{name: "h3 is other", raw: "### Work", kind: KindOther},
		{name: "open task", raw: "- [ ] write report", kind: KindOpenTask, text: "write report"},
		{name: "open task crlf", raw: "- [ ] write report\r", kind: KindOpenTask, text: "write report"},
		{name: "done task", raw: "- [x] shipped", kind: KindDoneTask, text: "shipped"},
		{name: "capital X is other", raw: "- [X] shipped", kind: KindOther},
		{name: "indented checkbox is other", raw: "  - [ ] nested", kind: KindOther},
		{name: "plain bullet", raw: "- just a bullet", kind: KindOther},
		{name: "focus", raw: "  - 🍅 2024-03-01 09:30", kind: KindFocus},
		{name: "focus cancelled", raw: "  - 🍅 2024-03-01 09:30 cancelled", kind: KindFocus, cancelled: true},
		{name: "focus tab indent", raw: "\t- 🍅 2024-03-01 09:30", kind: KindFocus},
		{name: "focus bad stamp", raw: "  - 🍅 yesterday", kind: KindOther},
		{name: "focus unindented", raw: "- 🍅 2024-03-01 09:30", kind: KindOther},
		{name: "note", raw: "  - 📝 call back Bob", kind: KindNote, text: "call back Bob"},
		{name: "blank", raw: "", kind: KindOther},
		{name: "prose", raw: "some notes", kind: KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.raw)
			if got.Kind != tt.kind {
				t.Fatalf("Classify(%q).Kind = %v, want %v", tt.raw, got.Kind, tt.kind)
			}
			if got.Raw != tt.raw {
				t.Errorf("Raw = %q, want verbatim %q", got.Raw, tt.raw)
			}
			if tt.kind != KindFocus && got.Text != tt.text {
				t.Errorf("Text = %q, want %q", got.Text, tt.text)
			}
			if got.Cancelled != tt.cancelled {
				t.Errorf("Cancelled = %v, want %v", got.Cancelled, tt.cancelled)
			}
		})
	}
}

func TestClassifyFocusTimestamp(t *testing.T) {
	got := Classify("  - 🍅 2024-03-01 09:30")
	want := time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)
	if !got.StartedAt.Equal(want) {
		t.Fatalf("StartedAt = %v, want %v", got.StartedAt, want)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	started := time.Date(2024, 12, 31, 23, 5, 0, 0, time.Local)

	tests := []struct {
		name string
		line string
		kind Kind
	}{
		{name: "project", line: FormatProject("Home"), kind: KindProject},
		{name: "task", line: FormatTask("buy milk"), kind: KindOpenTask},
		{name: "focus", line: FormatFocus(started, false), kind: KindFocus},
		{name: "focus cancelled", line: FormatFocus(started, true), kind: KindFocus},
		{name: "note", line: FormatNote("remember the oat one"), kind: KindNote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.line).Kind; got != tt.kind {
				t.Fatalf("Classify(%q) = %v, want %v", tt.line, got, tt.kind)
			}
		})
	}

	if got := FormatFocus(started, true); got != "  - 🍅 2024-12-31 23:05 cancelled" {
		t.Errorf("FormatFocus() = %q", got)
	}
}
