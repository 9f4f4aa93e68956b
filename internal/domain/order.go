package domain

// Integer-gapped ordering: tasks within one status are ordered by TaskOrder,
// and moves only ever rewrite the moved task's value. Inserting first halves
// the smallest order, inserting last adds a fixed gap, inserting between
// takes the midpoint. When two neighbors have no integer headroom left the
// calculator pushes past the lower neighbor instead of renumbering.
const (
	// OrderSeed is the order assigned to the first task in an empty status.
	// Large enough that repeated halving still yields distinct integers.
	OrderSeed = 65536

	// OrderGap is the spacing added after the current last task.
	OrderGap = 1024
)

// PositionIntent describes where a task should land among its siblings.
type PositionIntent int

const (
	PositionFirst PositionIntent = iota
	PositionLast
	PositionBetween
)

// Position is the input to CalculateOrder: an intent plus, for
// PositionBetween, the orders of the neighboring tasks. Either neighbor may
// be nil at a boundary.
type Position struct {
	Intent PositionIntent
	Before *int
	After  *int
}

// First returns a Position placing the task before all siblings.
func First() Position {
	return Position{Intent: PositionFirst}
}

// Last returns a Position placing the task after all siblings.
func Last() Position {
	return Position{Intent: PositionLast}
}

// Between returns a Position placing the task between two neighbors.
func Between(before, after *int) Position {
	return Position{Intent: PositionBetween, Before: before, After: after}
}

// CalculateOrder computes the TaskOrder for a task being placed at pos among
// siblings. The siblings slice must not contain the task being placed and is
// never mutated.
func CalculateOrder(pos Position, siblings []Task) int {
	switch pos.Intent {
	case PositionFirst:
		lowest, ok := minOrder(siblings)
		if !ok {
			return OrderSeed
		}
		return halveFloor(lowest)

	case PositionLast:
		highest, ok := maxOrder(siblings)
		if !ok {
			return OrderSeed
		}
		return highest + OrderGap

	case PositionBetween:
		switch {
		case pos.Before != nil && pos.After != nil:
			before, after := *pos.Before, *pos.After
			if before >= after {
				// Inverted or tied neighbors: push past the lower one
				// rather than produce a non-monotonic value.
				return before + OrderGap
			}
			mid := (before + after) / 2
			if mid == before {
				// No integer headroom left between adjacent orders.
				return before + OrderGap
			}
			return mid
		case pos.Before != nil:
			return *pos.Before + OrderGap
		case pos.After != nil:
			return halveFloor(*pos.After)
		default:
			return OrderSeed
		}
	}
	return OrderSeed
}

// halveFloor halves an order value, never going below 1.
func halveFloor(order int) int {
	half := order / 2
	if half < 1 {
		return 1
	}
	return half
}

func minOrder(tasks []Task) (int, bool) {
	found := false
	lowest := 0
	for _, t := range tasks {
		if !found || t.TaskOrder < lowest {
			lowest = t.TaskOrder
			found = true
		}
	}
	return lowest, found
}

func maxOrder(tasks []Task) (int, bool) {
	found := false
	highest := 0
	for _, t := range tasks {
		if !found || t.TaskOrder > highest {
			highest = t.TaskOrder
			found = true
		}
	}
	return highest, found
}
