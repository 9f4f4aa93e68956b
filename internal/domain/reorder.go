package domain

// ResolveReorder computes the new TaskOrder for a drag-and-drop reorder
// within one status. statusSiblings is the full column sorted ascending by
// TaskOrder with the moving task still present at movingIndex; targetIndex
// is the slot the task should occupy, indexed against that same list. The
// input slice is never mutated.
//
// Callers are responsible for rejecting no-op moves and out-of-range
// indices; given a valid pair this always returns a usable order value,
// even when siblings carry tied orders.
func ResolveReorder(statusSiblings []Task, movingIndex, targetIndex int) int {
	withoutMoving := make([]Task, 0, len(statusSiblings)-1)
	withoutMoving = append(withoutMoving, statusSiblings[:movingIndex]...)
	withoutMoving = append(withoutMoving, statusSiblings[movingIndex+1:]...)

	if targetIndex == 0 {
		return CalculateOrder(First(), withoutMoving)
	}
	if targetIndex == len(statusSiblings)-1 {
		return CalculateOrder(Last(), withoutMoving)
	}

	// targetIndex is the slot the task lands in after the move, so indexed
	// against withoutMoving it sits between targetIndex-1 and targetIndex
	// regardless of direction. Mid-list targets keep both neighbors in
	// range: 1 <= targetIndex <= len(withoutMoving)-1.
	before := &withoutMoving[targetIndex-1].TaskOrder
	after := &withoutMoving[targetIndex].TaskOrder
	return CalculateOrder(Between(before, after), withoutMoving)
}
