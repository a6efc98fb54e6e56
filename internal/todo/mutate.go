package todo

import (
	"fmt"
	"strings"
	"time"
)

// The mutators are pure: they take the full file content and return the full
// new content. Validation happens before any line is touched, so a failing
// call never yields partially edited content.

// AddProject appends a header for name at the end of content.
func AddProject(content, name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := validateText("project name", name); err != nil {
		return "", err
	}
	doc := Parse(content)
	if doc.HasProject(name) {
		return "", fmt.Errorf("%w: %q", ErrDuplicateProject, name)
	}

	separator := ""
	if content != "" && !strings.HasSuffix(content, "\n") {
		separator = "\n"
	}
	eol := "\n"
	if n := doc.Len(); n > 0 && strings.HasSuffix(doc.entries[n-1].Raw, "\r") {
		eol = "\r\n"
	}
	return content + separator + FormatProject(name) + eol, nil
}

// DeleteProject removes the header for name and every line up to the next
// header or the end of the file.
func DeleteProject(content, name string) (string, error) {
	doc := Parse(content)
	header := doc.projectHeader(strings.TrimSpace(name))
	if header < 0 {
		return "", fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}
	return doc.splice(header, doc.sectionEnd(header)), nil
}

// AddTask inserts an open task as the last line of the project's section.
// Blank lines that separate the section from the next one stay after it, so
// the task lands before the separator rather than directly in front of the
// next header.
func AddTask(content, project, description string) (string, error) {
	description = strings.TrimSpace(description)
	if err := validateText("task description", description); err != nil {
		return "", err
	}
	doc := Parse(content)
	header := doc.projectHeader(strings.TrimSpace(project))
	if header < 0 {
		return "", fmt.Errorf("%w: %q", ErrProjectNotFound, project)
	}

	at := doc.sectionEnd(header)
	for at > header+1 && doc.entries[at-1].Blank() {
		at--
	}
	return doc.splice(at, at, FormatTask(description)), nil
}

// Complete marks the open task with the given global open-index as done.
// Only the checkbox marker changes; sub-items and position are kept.
func Complete(content string, index int) (string, error) {
	doc := Parse(content)
	at, err := doc.target(index)
	if err != nil {
		return "", err
	}
	raw := doc.entries[at].Raw
	return doc.splice(at, at+1, doneTaskPrefix+strings.TrimPrefix(raw, openTaskPrefix)), nil
}

// Delete removes the open task with the given global open-index together
// with its sub-items.
func Delete(content string, index int) (string, error) {
	doc := Parse(content)
	at, err := doc.target(index)
	if err != nil {
		return "", err
	}
	return doc.splice(at, doc.subItemEnd(at)), nil
}

// AddFocusRecord appends a focus-session record to the open task with the
// given global open-index.
func AddFocusRecord(content string, index int, startedAt time.Time, cancelled bool) (string, error) {
	return appendSubItem(content, index, FormatFocus(startedAt, cancelled))
}

// AddNote appends a note to the open task with the given global open-index.
func AddNote(content string, index int, text string) (string, error) {
	text = strings.TrimSpace(text)
	if err := validateText("note", text); err != nil {
		return "", err
	}
	return appendSubItem(content, index, FormatNote(text))
}

func appendSubItem(content string, index int, line string) (string, error) {
	doc := Parse(content)
	at, err := doc.target(index)
	if err != nil {
		return "", err
	}
	end := doc.subItemEnd(at)
	return doc.splice(end, end, line), nil
}

func (d *Document) target(index int) (int, error) {
	at, ok := d.openTaskEntry(index)
	if !ok {
		return 0, fmt.Errorf("%w: task %d (%d open tasks)", ErrIndexOutOfRange, index+1, len(d.OpenTasks()))
	}
	return at, nil
}

// splice replaces entries [from, to) with lines and returns the resulting
// text. Untouched lines are emitted verbatim. Inserted lines take a CRLF
// ending when the line they follow (or precede, at the top) has one.
func (d *Document) splice(from, to int, lines ...string) string {
	raw := d.rawLines()
	if d.crlfAt(from) {
		for i, l := range lines {
			if !strings.HasSuffix(l, "\r") {
				lines[i] = l + "\r"
			}
		}
	}
	out := make([]string, 0, len(raw)-(to-from)+len(lines))
	out = append(out, raw[:from]...)
	out = append(out, lines...)
	out = append(out, raw[to:]...)
	return joinLines(out, d.trailingNewline)
}

func (d *Document) crlfAt(at int) bool {
	switch {
	case at > 0:
		return strings.HasSuffix(d.entries[at-1].Raw, "\r")
	case len(d.entries) > 0:
		return strings.HasSuffix(d.entries[0].Raw, "\r")
	}
	return false
}

func validateText(what, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidText, what)
	}
	if strings.ContainsAny(text, "\r\n") {
		return fmt.Errorf("%w: %s must be a single line", ErrInvalidText, what)
	}
	return nil
}
