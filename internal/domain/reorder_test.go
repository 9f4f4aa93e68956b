package domain

import "testing"

func TestResolveReorder(t *testing.T) {
	// Column sorted ascending by order: ids a(100), b(200), c(300)
	column := []Task{
		{ID: "a", TaskOrder: 100},
		{ID: "b", TaskOrder: 200},
		{ID: "c", TaskOrder: 300},
	}

	tests := []struct {
		name        string
		movingIndex int
		targetIndex int
		check       func(t *testing.T, got int)
	}{
		{
			name:        "move first to last",
			movingIndex: 0,
			targetIndex: 2,
			check: func(t *testing.T, got int) {
				if got <= 300 {
					t.Errorf("got %d, want > 300", got)
				}
			},
		},
		{
			name:        "move last to first",
			movingIndex: 2,
			targetIndex: 0,
			check: func(t *testing.T, got int) {
				if got >= 100 || got < 1 {
					t.Errorf("got %d, want in [1, 100)", got)
				}
			},
		},
		{
			name:        "move first between b and c",
			movingIndex: 0,
			targetIndex: 1,
			check: func(t *testing.T, got int) {
				if got <= 200 || got >= 300 {
					t.Errorf("got %d, want in (200, 300)", got)
				}
			},
		},
		{
			name:        "move last between a and b",
			movingIndex: 2,
			targetIndex: 1,
			check: func(t *testing.T, got int) {
				if got <= 100 || got >= 200 {
					t.Errorf("got %d, want in (100, 200)", got)
				}
			},
		},
		{
			name:        "redundant move still yields valid order",
			movingIndex: 1,
			targetIndex: 1,
			check: func(t *testing.T, got int) {
				if got <= 100 || got >= 300 {
					t.Errorf("got %d, want in (100, 300)", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveReorder(column, tt.movingIndex, tt.targetIndex)
			tt.check(t, got)
		})
	}
}

func TestResolveReorder_MidListBothDirections(t *testing.T) {
	// Dragging down and dragging up into the same slot must land between
	// the same neighbors: the slot's meaning is the position after the
	// move, not before removal.
	column := []Task{
		{ID: "a", TaskOrder: 100},
		{ID: "b", TaskOrder: 200},
		{ID: "c", TaskOrder: 300},
		{ID: "d", TaskOrder: 400},
	}

	t.Run("drag down one slot", func(t *testing.T) {
		got := ResolveReorder(column, 0, 1)
		if got <= 200 || got >= 300 {
			t.Errorf("got %d, want in (200, 300)", got)
		}
	})

	t.Run("drag down two slots", func(t *testing.T) {
		got := ResolveReorder(column, 0, 2)
		if got <= 300 || got >= 400 {
			t.Errorf("got %d, want in (300, 400)", got)
		}
	})

	t.Run("drag up two slots", func(t *testing.T) {
		got := ResolveReorder(column, 3, 1)
		if got <= 100 || got >= 200 {
			t.Errorf("got %d, want in (100, 200)", got)
		}
	})
}

func TestResolveReorder_TwoElements(t *testing.T) {
	column := []Task{
		{ID: "a", TaskOrder: 100},
		{ID: "b", TaskOrder: 200},
	}

	t.Run("swap forward", func(t *testing.T) {
		got := ResolveReorder(column, 0, 1)
		if got <= 200 {
			t.Errorf("got %d, want > 200", got)
		}
	})

	t.Run("swap backward", func(t *testing.T) {
		got := ResolveReorder(column, 1, 0)
		if got >= 100 || got < 1 {
			t.Errorf("got %d, want in [1, 100)", got)
		}
	})
}

func TestResolveReorder_TiedOrders(t *testing.T) {
	column := []Task{
		{ID: "a", TaskOrder: 100},
		{ID: "b", TaskOrder: 100},
		{ID: "c", TaskOrder: 100},
	}

	// Inserting after a tie must land strictly past it, never at or below.
	got := ResolveReorder(column, 0, 1)
	if got <= 100 {
		t.Errorf("got %d, want > 100", got)
	}
}

func TestResolveReorder_Pure(t *testing.T) {
	column := []Task{
		{ID: "a", TaskOrder: 100},
		{ID: "b", TaskOrder: 200},
		{ID: "c", TaskOrder: 300},
	}
	before := make([]Task, len(column))
	copy(before, column)

	ResolveReorder(column, 0, 2)
	ResolveReorder(column, 2, 0)

	for i := range column {
		if column[i] != before[i] {
			t.Fatalf("column[%d] mutated: got %+v, want %+v", i, column[i], before[i])
		}
	}
}
