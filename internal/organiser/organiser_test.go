package organiser

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

const organiser = `Inbox notes that belong to no day.

# 2026-01-23

**09:00** standup
**14:30** dentist [TODO]
- [DONE] pay rent

## Evening

dinner with Ada

# Not a date

still the 23rd

# 2026-01-24
` + "```" + `
# 2026-01-25
` + "```" + `
**10:00** review
`

func TestSections(t *testing.T) {
	sections := Sections(organiser)
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2: %+v", len(sections), sections)
	}

	first := sections[0]
	if first.Day != "2026-01-23" || first.Line != 3 {
		t.Errorf("first section = %q line %d", first.Day, first.Line)
	}
	if !strings.HasPrefix(first.Body, "**09:00** standup") {
		t.Errorf("first body starts %q", first.Body)
	}
	for _, want := range []string{"## Evening", "# Not a date", "still the 23rd"} {
		if !strings.Contains(first.Body, want) {
			t.Errorf("first body missing %q", want)
		}
	}
	if strings.Contains(first.Body, "Inbox") {
		t.Error("content before the first day leaked into it")
	}

	second := sections[1]
	if second.Day != "2026-01-24" {
		t.Errorf("second section = %q", second.Day)
	}
	if !strings.Contains(second.Body, "# 2026-01-25") || !strings.Contains(second.Body, "**10:00** review") {
		t.Errorf("fenced heading must stay in the body, got %q", second.Body)
	}
	if second.Date.Day() != 24 || second.Date.Month() != time.January {
		t.Errorf("second Date = %v", second.Date)
	}
}

func TestSectionFor(t *testing.T) {
	sections := Sections(organiser)

	got, ok := SectionFor(sections, time.Date(2026, 1, 24, 18, 0, 0, 0, time.Local))
	if !ok || got.Day != "2026-01-24" {
		t.Fatalf("SectionFor(24th) = %+v, %v", got, ok)
	}
	if _, ok := SectionFor(sections, time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local)); ok {
		t.Fatal("SectionFor(missing day) reported ok")
	}
}

func TestItems(t *testing.T) {
	s := Section{Body: "**09:00** standup\n\n**14:30** dentist [TODO]\n- [DONE] pay rent\n## Evening\n* dinner"}
	got := s.Items()
	want := []Item{
		{Time: "09:00", Text: "standup"},
		{Time: "14:30", Text: "dentist", Status: StatusTodo},
		{Text: "pay rent", Status: StatusDone},
		{Text: "dinner"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Items() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "organiser.md")
	if _, err := Read(path); err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("Read(missing) error = %v", err)
	}

	os.WriteFile(path, []byte("# 2026-01-23\n"), 0o644)
	content, err := Read(path)
	if err != nil || content != "# 2026-01-23\n" {
		t.Fatalf("Read() = %q, %v", content, err)
	}
}
