package domain

import "sort"

// SortByOrder returns tasks sorted ascending by TaskOrder. The sort is
// stable: tasks with tied orders keep their incoming relative order, so the
// result is deterministic for a given input. The input slice is not
// modified.
func SortByOrder(tasks []Task) []Task {
	if len(tasks) == 0 {
		return tasks
	}

	result := make([]Task, len(tasks))
	copy(result, tasks)

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TaskOrder < result[j].TaskOrder
	})

	return result
}

// SiblingsOf returns the active tasks in the given status, excluding the
// task with excludeID. This is the sibling set the order calculator
// operates on.
func SiblingsOf(tasks []Task, status Status, excludeID string) []Task {
	var siblings []Task
	for _, t := range tasks {
		if t.Status == status && t.Active() && t.ID != excludeID {
			siblings = append(siblings, t)
		}
	}
	return siblings
}
