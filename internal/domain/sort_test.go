package domain

import "testing"

func TestSortByOrder(t *testing.T) {
	tasks := []Task{
		{ID: "c", TaskOrder: 300},
		{ID: "a", TaskOrder: 100},
		{ID: "b", TaskOrder: 200},
	}

	result := SortByOrder(tasks)

	want := []string{"a", "b", "c"}
	for i, task := range result {
		if task.ID != want[i] {
			t.Errorf("SortByOrder()[%d] = %s, want %s", i, task.ID, want[i])
		}
	}

	// Input must be untouched
	if tasks[0].ID != "c" {
		t.Errorf("input slice mutated, tasks[0] = %s", tasks[0].ID)
	}
}

func TestSortByOrder_StableOnTies(t *testing.T) {
	tasks := []Task{
		{ID: "x", TaskOrder: 100},
		{ID: "y", TaskOrder: 100},
		{ID: "z", TaskOrder: 50},
	}

	first := SortByOrder(tasks)
	second := SortByOrder(tasks)

	want := []string{"z", "x", "y"}
	for i := range want {
		if first[i].ID != want[i] {
			t.Errorf("SortByOrder()[%d] = %s, want %s", i, first[i].ID, want[i])
		}
		if first[i].ID != second[i].ID {
			t.Errorf("tie-break not deterministic at index %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestSiblingsOf(t *testing.T) {
	tasks := []Task{
		{ID: "a", Status: StatusTodo, TaskOrder: 100},
		{ID: "b", Status: StatusTodo, TaskOrder: 200},
		{ID: "c", Status: StatusDoing, TaskOrder: 100},
		{ID: "d", Status: StatusTodo, TaskOrder: 300, Archived: true},
	}

	siblings := SiblingsOf(tasks, StatusTodo, "a")

	if len(siblings) != 1 {
		t.Fatalf("got %d siblings, want 1", len(siblings))
	}
	if siblings[0].ID != "b" {
		t.Errorf("got sibling %s, want b", siblings[0].ID)
	}
}

func TestStatus_Column(t *testing.T) {
	tests := []struct {
		status Status
		want   int
	}{
		{StatusTodo, 0},
		{StatusDoing, 1},
		{StatusReview, 2},
		{StatusDone, 3},
		{Status("bogus"), 0},
	}

	for _, tt := range tests {
		if got := tt.status.Column(); got != tt.want {
			t.Errorf("%s.Column() = %d, want %d", tt.status, got, tt.want)
		}
	}
}
