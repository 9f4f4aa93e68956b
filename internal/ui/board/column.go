package board

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ewhitmore/taskdeck/internal/ui/styles"
)

// renderColumn renders a kanban column with header and task cards
func renderColumn(
	col Column,
	cursorTask int,
	isActive bool,
	selectedTasks map[string]bool,
	pendingTasks map[string]bool,
	width int,
	height int,
	s *styles.Styles,
) string {
	headerStyle := s.ColumnHeader
	if isActive {
		headerStyle = s.ColumnHeaderActive
	}

	// Render header with title (e.g., "─ Todo ─────")
	headerText := "─ " + col.Title + " "
	remainingWidth := width - len(headerText) - 2
	if remainingWidth > 0 {
		headerText += strings.Repeat("─", remainingWidth)
	}
	header := headerStyle.Render(headerText)

	var cardStrings []string
	cardWidth := width - 4 // Account for column border and padding
	for i, task := range col.Tasks {
		isCursor := isActive && i == cursorTask
		cardStrings = append(cardStrings, renderCard(
			task,
			isCursor,
			selectedTasks[task.ID],
			pendingTasks[task.ID],
			cardWidth,
			s,
		))
	}

	content := ""
	if len(cardStrings) > 0 {
		content = strings.Join(cardStrings, "\n")
	}

	columnStyle := s.Column.Width(width).Height(height)
	columnContent := columnStyle.Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, columnContent)
}
