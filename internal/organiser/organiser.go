// Package organiser reads the daily organiser: a markdown file split into
// "# YYYY-MM-DD" sections of scheduled items and [TODO]/[DONE] markers.
package organiser

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/ambrogio-dev/ambrogio/internal/dates"
)

// Status of an organiser item.
const (
	StatusNone = ""
	StatusTodo = "todo"
	StatusDone = "done"
)

var (
	scheduledRegex = regexp.MustCompile(`^\*\*(\d{1,2}:\d{2})\*\*\s*(.*)$`)
	markerRegex    = regexp.MustCompile(`\[(TODO|DONE)\]\s*`)
	bulletRegex    = regexp.MustCompile(`^(?:[-*+]|\d+\.)\s+`)
)

// Section is one dated day.
type Section struct {
	Date time.Time `json:"-"`
	Day  string    `json:"date"`

	// Line is the 1-based line of the heading.
	Line int `json:"line"`

	// Body is the markdown below the heading up to the next day heading.
	Body string `json:"body"`
}

// Item is one non-blank body line.
type Item struct {
	Time   string `json:"time,omitempty"`
	Text   string `json:"text"`
	Status string `json:"status,omitempty"`
}

// Read loads the organiser file.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("organiser file %s does not exist", path)
		}
		return "", fmt.Errorf("failed to read organiser %s: %w", path, err)
	}
	return string(data), nil
}

// Sections splits content at level-1 headings whose text is a date. Other
// headings stay inside the current section's body. Content before the first
// day heading is dropped.
func Sections(content string) []Section {
	source := []byte(content)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))
	lineStarts := computeLineStarts(content)

	type heading struct {
		day  string
		line int
	}
	var headings []heading

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level != 1 || h.Lines().Len() == 0 {
			return ast.WalkSkipChildren, nil
		}
		var sb strings.Builder
		for child := h.FirstChild(); child != nil; child = child.NextSibling() {
			if t, ok := child.(*ast.Text); ok {
				sb.Write(t.Segment.Value(source))
			}
		}
		day := strings.TrimSpace(sb.String())
		if dates.IsValidDate(day) {
			headings = append(headings, heading{
				day:  day,
				line: offsetToLine(lineStarts, h.Lines().At(0).Start),
			})
		}
		return ast.WalkSkipChildren, nil
	})

	lines := strings.Split(content, "\n")
	sections := make([]Section, 0, len(headings))
	for i, h := range headings {
		end := len(lines)
		if i+1 < len(headings) {
			end = headings[i+1].line
		}
		date, _ := dates.ParseDate(h.day, time.Local)
		sections = append(sections, Section{
			Date: date,
			Day:  h.day,
			Line: h.line + 1,
			Body: strings.Trim(strings.Join(lines[h.line+1:end], "\n"), "\n"),
		})
	}
	return sections
}

// SectionFor returns the first section for the given day.
func SectionFor(sections []Section, day time.Time) (Section, bool) {
	want := dates.FormatDate(day)
	for _, s := range sections {
		if s.Day == want {
			return s, true
		}
	}
	return Section{}, false
}

// Items parses the section body into scheduled items and markers.
func (s Section) Items() []Item {
	var items []Item
	for _, raw := range strings.Split(s.Body, "\n") {
		line := bulletRegex.ReplaceAllString(strings.TrimSpace(raw), "")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		item := Item{}
		if m := scheduledRegex.FindStringSubmatch(line); m != nil {
			item.Time = m[1]
			line = m[2]
		}
		if m := markerRegex.FindStringSubmatch(line); m != nil {
			item.Status = strings.ToLower(m[1])
			line = markerRegex.ReplaceAllString(line, "")
		}
		item.Text = strings.TrimSpace(line)
		items = append(items, item)
	}
	return items
}

func computeLineStarts(content string) []int {
	starts := []int{0}
	for i, c := range content {
		if c == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offsetToLine converts a byte offset to a 0-indexed line number.
func offsetToLine(lineStarts []int, offset int) int {
	for i := len(lineStarts) - 1; i >= 0; i-- {
		if lineStarts[i] <= offset {
			return i
		}
	}
	return 0
}
