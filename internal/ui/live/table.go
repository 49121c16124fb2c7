package live

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// defaultColumns returns the subject table columns.
func defaultColumns() []table.Column {
	return columnsForWidth(0)
}

// columnsForWidth sizes the subject column to the terminal width.
func columnsForWidth(width int) []table.Column {
	nameWidth := 24
	if width > 0 {
		nameWidth = max(width-20, 12)
	}
	return []table.Column{
		{Title: "#", Width: 5},
		{Title: "Subject", Width: nameWidth},
		{Title: "Pairs", Width: 8},
	}
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts UI state into table rows.
func rowsForState(state State) []table.Row {
	rows := make([]table.Row, 0, len(state.Subjects))
	for _, row := range state.Subjects {
		rows = append(rows, table.Row{
			strconv.Itoa(row.Index),
			row.Name,
			strconv.Itoa(row.Pairs),
		})
	}
	return rows
}
