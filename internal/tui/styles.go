package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	app, tabsRow           lipgloss.Style
	tabActive, tabInactive lipgloss.Style
	header, cell           lipgloss.Style
	cellCursor, cellDim    lipgloss.Style
	cellFlagged            lipgloss.Style
	statusBar, statusWarn  lipgloss.Style
	prompt                 lipgloss.Style
}

func newStyles() styles {
	base := lipgloss.NewStyle()
	return styles{
		app:         base,
		tabsRow:     base.Padding(0, 1),
		tabActive:   base.Bold(true).Underline(true).Padding(0, 1),
		tabInactive: base.Faint(true).Padding(0, 1),
		header:      base.Bold(true).Padding(0, 1),
		cell:        base.Padding(0, 1),
		cellCursor:  base.Reverse(true).Padding(0, 1),
		cellDim:     base.Faint(true).Padding(0, 1),
		cellFlagged: base.Foreground(lipgloss.Color("9")).Padding(0, 1),
		statusBar:   base.Padding(0, 1),
		statusWarn:  base.Foreground(lipgloss.Color("11")).Padding(0, 1),
		prompt:      base.Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}
