// Package board renders the kanban board.
package board

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/ewhitmore/taskdeck/internal/ui/styles"
)

// Render renders the entire kanban board with 4 columns
func Render(
	columns []Column,
	cursor Cursor,
	selectedTasks map[string]bool,
	pendingTasks map[string]bool,
	s *styles.Styles,
	width int,
	height int,
) string {
	if len(columns) == 0 {
		return ""
	}

	// Calculate column width - 4 columns, evenly distributed
	columnWidth := width / len(columns)

	var columnStrings []string
	for i, col := range columns {
		isActive := i == cursor.Column
		cursorTask := 0
		if isActive {
			cursorTask = cursor.Task
		}

		columnStr := renderColumn(
			col,
			cursorTask,
			isActive,
			selectedTasks,
			pendingTasks,
			columnWidth,
			height,
			s,
		)

		// Force consistent width using lipgloss Width
		sized := lipgloss.NewStyle().Width(columnWidth).Height(height).Render(columnStr)
		columnStrings = append(columnStrings, sized)
	}

	// Join columns horizontally
	return lipgloss.JoinHorizontal(lipgloss.Top, columnStrings...)
}
