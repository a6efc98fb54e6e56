package todo

import "strings"

// Entry is a classified line with its position and project context.
type Entry struct {
	Line

	// Num is the zero-based source line number.
	Num int

	// Project is the name of the most recent preceding header, or "" when no
	// header precedes the line.
	Project string
}

// Document is the parsed form of a todo file. It is a flat sequence of
// entries in file order; the hierarchy is carried by each entry's Project.
type Document struct {
	entries         []Entry
	trailingNewline bool
}

// Parse classifies every line of content. It never fails.
func Parse(content string) *Document {
	doc := &Document{}
	if content == "" {
		return doc
	}

	raw := strings.Split(content, "\n")
	if strings.HasSuffix(content, "\n") {
		doc.trailingNewline = true
		raw = raw[:len(raw)-1]
	}

	doc.entries = make([]Entry, 0, len(raw))
	project := ""
	for i, text := range raw {
		line := Classify(text)
		if line.Kind == KindProject {
			project = line.Text
		}
		doc.entries = append(doc.entries, Entry{
			Line:    line,
			Num:     i,
			Project: project,
		})
	}

	return doc
}

// Entries returns the parsed entries in file order.
func (d *Document) Entries() []Entry {
	return d.entries
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.entries)
}

// String reproduces the document text. For an unmodified document this is
// byte-identical to the parsed input.
func (d *Document) String() string {
	return joinLines(d.rawLines(), d.trailingNewline)
}

func (d *Document) rawLines() []string {
	lines := make([]string, len(d.entries))
	for i, e := range d.entries {
		lines[i] = e.Raw
	}
	return lines
}

func joinLines(lines []string, trailingNewline bool) string {
	out := strings.Join(lines, "\n")
	if trailingNewline && len(lines) > 0 {
		out += "\n"
	}
	return out
}
