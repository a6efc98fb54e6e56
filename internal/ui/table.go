package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Column alignment.
const (
	AlignLeft = iota
	AlignRight
)

// Table renders rows under a bold header with a muted rule between rows.
// aligns holds one entry per column; missing entries align left.
func Table(headers []string, rows [][]string, aligns ...int) string {
	if len(rows) == 0 {
		return ""
	}

	tbl := table.New().
		Border(lipgloss.Border{
			Top:    "─",
			Bottom: "─",
			Middle: "─",
		}).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(false).
		BorderColumn(false).
		BorderHeader(true).
		BorderStyle(Muted).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle()
			if row == table.HeaderRow {
				style = style.Bold(true)
			}
			if col < len(aligns) && aligns[col] == AlignRight {
				style = style.Align(lipgloss.Right)
			}
			if col < len(headers)-1 {
				style = style.PaddingRight(2)
			}
			return style
		}).
		Rows(rows...)

	return tbl.Render()
}
