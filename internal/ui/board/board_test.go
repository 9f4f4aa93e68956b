package board

import (
	"strings"
	"testing"

	"github.com/ewhitmore/taskdeck/internal/domain"
	"github.com/ewhitmore/taskdeck/internal/ui/styles"
)

func TestBuildColumns(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t-3", Status: domain.StatusTodo, TaskOrder: 300},
		{ID: "t-1", Status: domain.StatusTodo, TaskOrder: 100},
		{ID: "t-2", Status: domain.StatusDoing, TaskOrder: 200},
		{ID: "t-4", Status: domain.StatusTodo, TaskOrder: 200, Archived: true},
	}

	columns := BuildColumns(tasks)

	if len(columns) != 4 {
		t.Fatalf("got %d columns, want 4", len(columns))
	}

	todo := columns[0]
	if todo.Status != domain.StatusTodo {
		t.Errorf("columns[0].Status = %s, want todo", todo.Status)
	}
	if len(todo.Tasks) != 2 {
		t.Fatalf("todo column has %d tasks, want 2 (archived excluded)", len(todo.Tasks))
	}
	// Sorted ascending by order
	if todo.Tasks[0].ID != "t-1" || todo.Tasks[1].ID != "t-3" {
		t.Errorf("todo column order = [%s, %s], want [t-1, t-3]", todo.Tasks[0].ID, todo.Tasks[1].ID)
	}

	if len(columns[1].Tasks) != 1 || columns[1].Tasks[0].ID != "t-2" {
		t.Errorf("doing column = %+v, want [t-2]", columns[1].Tasks)
	}
	if len(columns[2].Tasks) != 0 || len(columns[3].Tasks) != 0 {
		t.Errorf("review/done columns should be empty")
	}
}

func TestRender_EmptyColumns(t *testing.T) {
	if got := Render(nil, Cursor{}, nil, nil, styles.New(), 120, 40); got != "" {
		t.Errorf("Render(nil columns) = %q, want empty", got)
	}
}

func TestRender_ShowsColumnTitles(t *testing.T) {
	columns := BuildColumns([]domain.Task{
		{ID: "t-1", Title: "Crawl docs site", Status: domain.StatusTodo, TaskOrder: 100},
	})

	out := Render(columns, Cursor{}, nil, nil, styles.New(), 120, 40)

	for _, title := range []string{"Todo", "Doing", "Review", "Done"} {
		if !strings.Contains(out, title) {
			t.Errorf("rendered board missing column title %q", title)
		}
	}
	if !strings.Contains(out, "Crawl docs site") {
		t.Errorf("rendered board missing task title")
	}
}

func TestRenderCard_States(t *testing.T) {
	s := styles.New()
	task := domain.Task{ID: "t-1", Title: "Index sources", Priority: domain.P1}

	plain := RenderCard(task, false, false, false, 30, s)
	if !strings.Contains(plain, "Index sources") {
		t.Errorf("card missing title")
	}
	if !strings.Contains(plain, "P1") {
		t.Errorf("card missing priority badge")
	}

	cursor := RenderCard(task, true, false, false, 30, s)
	if !strings.Contains(cursor, "▶") {
		t.Errorf("cursor card missing indicator")
	}

	pending := RenderCard(task, false, false, true, 30, s)
	if !strings.Contains(pending, "⋯") {
		t.Errorf("pending card missing marker")
	}
}

func TestRenderCard_TruncatesLongTitle(t *testing.T) {
	s := styles.New()
	task := domain.Task{ID: "t-1", Title: strings.Repeat("x", 100)}

	out := RenderCard(task, false, false, false, 20, s)
	if !strings.Contains(out, "…") {
		t.Errorf("long title not truncated")
	}
}
