// Package todo implements the markdown-backed task store.
//
// The backing file is a flat sequence of lines:
//
//	## <project>
//	- [ ] <open task>
//	  - 🍅 2006-01-02 15:04[ cancelled]
//	  - 📝 <note>
//	- [x] <done task>
//
// Every operation re-reads and re-parses the whole file. Open tasks are
// addressed by a global open-index that is recomputed from content on each
// read, so a listing and a later mutation agree as long as the file is not
// edited in between.
package todo

import (
	"strings"
	"time"
)

// Kind is the semantic role of one physical line.
type Kind int

const (
	KindOther Kind = iota
	KindProject
	KindOpenTask
	KindDoneTask
	KindFocus
	KindNote
)

func (k Kind) String() string {
	switch k {
	case KindProject:
		return "project"
	case KindOpenTask:
		return "open_task"
	case KindDoneTask:
		return "done_task"
	case KindFocus:
		return "focus"
	case KindNote:
		return "note"
	default:
		return "other"
	}
}

// Line markers as they appear in the file.
const (
	projectPrefix  = "## "
	openTaskPrefix = "- [ ] "
	doneTaskPrefix = "- [x] "
	focusMarker    = "- 🍅 "
	noteMarker     = "- 📝 "
	cancelledFlag  = " cancelled"

	// StampLayout is the layout of focus-session timestamps.
	StampLayout = "2006-01-02 15:04"

	subItemIndent = "  "
)

// Line is one classified line. Raw always holds the verbatim source text.
type Line struct {
	Kind Kind
	Raw  string

	// Text is the project name, task description or note text.
	Text string

	// Focus-session fields, set only for KindFocus.
	StartedAt time.Time
	Cancelled bool
}

// Indented reports whether the raw line starts with a space or tab.
func (l Line) Indented() bool {
	return len(l.Raw) > 0 && (l.Raw[0] == ' ' || l.Raw[0] == '\t')
}

// Blank reports whether the line holds only whitespace.
func (l Line) Blank() bool {
	return strings.TrimSpace(l.Raw) == ""
}

// IsTask reports whether the line is an open or done task.
func (l Line) IsTask() bool {
	return l.Kind == KindOpenTask || l.Kind == KindDoneTask
}

// IsSubItem reports whether the line is a focus record or a note.
func (l Line) IsSubItem() bool {
	return l.Kind == KindFocus || l.Kind == KindNote
}

// Classify maps a raw line to its Line. It never fails: anything it does not
// recognise is KindOther.
func Classify(raw string) Line {
	line := Line{Kind: KindOther, Raw: raw}
	text := strings.TrimSuffix(raw, "\r")

	switch {
	case strings.HasPrefix(text, projectPrefix):
		// A header with an empty name still ends the previous section; the
		// tasks under it have no project.
		line.Kind = KindProject
		line.Text = strings.TrimSpace(strings.TrimPrefix(text, projectPrefix))
	case strings.HasPrefix(text, openTaskPrefix):
		line.Kind = KindOpenTask
		line.Text = trimTrailing(strings.TrimPrefix(text, openTaskPrefix))
	case strings.HasPrefix(text, doneTaskPrefix):
		line.Kind = KindDoneTask
		line.Text = trimTrailing(strings.TrimPrefix(text, doneTaskPrefix))
	case line.Indented():
		classifySubItem(&line, strings.TrimLeft(text, " \t"))
	}

	return line
}

func classifySubItem(line *Line, body string) {
	switch {
	case strings.HasPrefix(body, focusMarker):
		stamp := trimTrailing(strings.TrimPrefix(body, focusMarker))
		cancelled := false
		if strings.HasSuffix(stamp, cancelledFlag) {
			cancelled = true
			stamp = strings.TrimSuffix(stamp, cancelledFlag)
		}
		startedAt, err := time.ParseInLocation(StampLayout, stamp, time.Local)
		if err != nil {
			return
		}
		line.Kind = KindFocus
		line.StartedAt = startedAt
		line.Cancelled = cancelled
	case strings.HasPrefix(body, noteMarker):
		line.Kind = KindNote
		line.Text = trimTrailing(strings.TrimPrefix(body, noteMarker))
	}
}

func trimTrailing(s string) string {
	return strings.TrimRight(s, " \t\r")
}

// FormatProject returns the header line for a project.
func FormatProject(name string) string {
	return projectPrefix + name
}

// FormatTask returns an open task line.
func FormatTask(description string) string {
	return openTaskPrefix + description
}

// FormatFocus returns a focus-session sub-item line.
func FormatFocus(startedAt time.Time, cancelled bool) string {
	line := subItemIndent + focusMarker + startedAt.Format(StampLayout)
	if cancelled {
		line += cancelledFlag
	}
	return line
}

// FormatNote returns a note sub-item line.
func FormatNote(text string) string {
	return subItemIndent + noteMarker + text
}
