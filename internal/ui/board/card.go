package board

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/ewhitmore/taskdeck/internal/domain"
	"github.com/ewhitmore/taskdeck/internal/ui/styles"
)

// renderCard renders a task card
func renderCard(task domain.Task, isCursor, isSelected, isPending bool, width int, s *styles.Styles) string {
	// Choose card style based on state
	cardStyle := s.Card
	switch {
	case isSelected:
		cardStyle = s.CardSelected
	case isCursor:
		cardStyle = s.CardActive
	case isPending:
		cardStyle = s.CardPending
	}

	cardStyle = cardStyle.Width(width)

	priorityBadge := s.PriorityBadge(int(task.Priority)).Render(task.Priority.String())

	// Title - truncate if needed
	// Account for padding (2), border (2), and some space for badges
	maxTitleLen := width - 4
	title := task.Title
	if maxTitleLen > 1 && len(title) > maxTitleLen {
		title = title[:maxTitleLen-1] + "…"
	}

	cursor := ""
	if isCursor {
		cursor = "▶"
	}
	// Pending marker: the task has an unresolved optimistic mutation
	pending := ""
	if isPending {
		pending = " ⋯"
	}

	titleLine := cursor + title + pending

	meta := priorityBadge
	if task.Assignee != "" {
		meta = lipgloss.JoinHorizontal(lipgloss.Left, meta, " ", s.TaskMeta.Render(task.Assignee))
	}
	if task.Feature != "" {
		meta = lipgloss.JoinHorizontal(lipgloss.Left, meta, " ", s.FeatureBadge.Render(task.Feature))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, meta)

	return cardStyle.Render(content)
}

// RenderCard is the exported version for testing
func RenderCard(task domain.Task, isCursor, isSelected, isPending bool, width int, s *styles.Styles) string {
	return renderCard(task, isCursor, isSelected, isPending, width, s)
}
