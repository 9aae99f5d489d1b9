package task

import "sort"

// SortByStart orders tasks by start time ascending. Tasks without a start
// time go last. The sort is stable: ties and the undated group keep their
// input order.
func SortByStart(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].StartDate, tasks[j].StartDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}
