package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

// MarkdownRenderMargin is the left margin glamour puts around rendered text.
const MarkdownRenderMargin = 2

// RenderMarkdown renders an organiser section or a chat reply for the
// terminal. The result ends in exactly one newline.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

// markdownStyle keeps organiser days readable: date headings and **HH:MM**
// times in the accent color, everything decorative muted.
func markdownStyle() ansi.StyleConfig {
	muted := str("8")
	var accent *string
	if color, ok := AccentColor(); ok {
		accent = str(color)
	}
	emphasis := ansi.StylePrimitive{Color: accent, Bold: flag(true)}
	prefixed := func(p string) ansi.StyleBlock {
		return ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: p}}
	}

	var s ansi.StyleConfig
	s.Document.BlockPrefix = "\n"
	s.Document.BlockSuffix = "\n"
	s.Document.Margin = uintp(MarkdownRenderMargin)

	s.Heading.StylePrimitive = emphasis
	s.Heading.BlockSuffix = "\n"
	s.H1, s.H2, s.H3 = prefixed("# "), prefixed("## "), prefixed("### ")
	s.Strong = emphasis

	s.Emph.Italic = flag(true)
	s.Strikethrough.CrossedOut = flag(true)
	s.BlockQuote.Color = muted
	s.BlockQuote.Indent = uintp(1)
	s.BlockQuote.IndentToken = str("│ ")
	s.HorizontalRule = ansi.StylePrimitive{Color: muted, Format: "\n--------\n"}

	s.List.LevelIndent = 2
	s.Item.BlockPrefix = "• "
	s.Enumeration.BlockPrefix = ". "
	s.Task.Ticked = SymbolSuccess + " "
	s.Task.Unticked = "○ "

	s.Link = ansi.StylePrimitive{Color: muted, Underline: flag(true)}
	s.LinkText = ansi.StylePrimitive{Color: muted, Bold: flag(true)}
	s.Code = prefixed("`")
	s.Code.Suffix = "`"
	s.Table.CenterSeparator = str("│")
	s.Table.ColumnSeparator = str("│")
	s.Table.RowSeparator = str("─")
	return s
}

func flag(v bool) *bool { return &v }

func str(v string) *string { return &v }

func uintp(v uint) *uint { return &v }
