// Package domain contains core business types for the taskdeck application.
package domain

import "time"

// Task is a unit of work tracked on the project board.
type Task struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	TaskOrder   int        `json:"task_order"`
	Assignee    string     `json:"assignee,omitempty"`
	Feature     string     `json:"feature,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	Archived    bool       `json:"archived,omitempty"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	ArchivedBy  string     `json:"archived_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Active reports whether the task participates in ordering.
// Archived tasks are logically gone and never count as siblings.
func (t Task) Active() bool {
	return !t.Archived
}

// Status represents the board column a task belongs to.
type Status string

const (
	StatusTodo   Status = "todo"
	StatusDoing  Status = "doing"
	StatusReview Status = "review"
	StatusDone   Status = "done"
)

// Statuses lists all board statuses in column order.
var Statuses = []Status{StatusTodo, StatusDoing, StatusReview, StatusDone}

// Column returns the kanban column index for this status
func (s Status) Column() int {
	switch s {
	case StatusTodo:
		return 0
	case StatusDoing:
		return 1
	case StatusReview:
		return 2
	case StatusDone:
		return 3
	default:
		return 0
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusReview, StatusDone:
		return true
	}
	return false
}

// String returns the display string
func (s Status) String() string {
	return string(s)
}

// Label returns the column header label for this status.
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "Todo"
	case StatusDoing:
		return "Doing"
	case StatusReview:
		return "Review"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// Priority represents task priority (0 = highest)
type Priority int

const (
	P0 Priority = iota // Critical
	P1                 // High
	P2                 // Medium
	P3                 // Low
	P4                 // Backlog
)

// String returns priority as string
func (p Priority) String() string {
	if p < P0 || p > P4 {
		return "P?"
	}
	return []string{"P0", "P1", "P2", "P3", "P4"}[p]
}
