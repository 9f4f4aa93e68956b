package board

import "github.com/ewhitmore/taskdeck/internal/domain"

// Column represents a kanban column with tasks
type Column struct {
	Status domain.Status
	Title  string
	Tasks  []domain.Task
}

// Cursor represents the current cursor position
type Cursor struct {
	Column int // Column index (0-3)
	Task   int // Task index within column
}

// BuildColumns partitions tasks into the four board columns, each sorted
// ascending by task order. Archived tasks are excluded.
func BuildColumns(tasks []domain.Task) []Column {
	columns := make([]Column, len(domain.Statuses))
	for i, status := range domain.Statuses {
		columns[i] = Column{
			Status: status,
			Title:  status.Label(),
			Tasks:  domain.SortByOrder(domain.SiblingsOf(tasks, status, "")),
		}
	}
	return columns
}
