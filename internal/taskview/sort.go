package taskview

import (
	"sort"

	"github.com/mkravets/taskdeck/internal/models"
)

// priorityOrdinal is the single place priority strings are ranked.
// Unrecognized values rank below low so a bad row from storage
// sinks to the bottom instead of breaking the view.
var priorityOrdinal = map[string]int{
	models.PriorityHigh:   3,
	models.PriorityMedium: 2,
	models.PriorityLow:    1,
}

// SortedView returns the default list order of a task snapshot:
// incomplete before complete, then priority descending, then due
// date ascending with dated tasks before undated ones. The sort is
// stable, so tasks equal on all three keys keep their snapshot
// order. The input slice is not modified.
func SortedView(tasks []models.Task) []models.Task {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		if a.Completed != b.Completed {
			return !a.Completed
		}

		aPriority := priorityOrdinal[a.Priority]
		bPriority := priorityOrdinal[b.Priority]
		if aPriority != bPriority {
			return aPriority > bPriority
		}

		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return false
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		default:
			return a.DueDate.Before(*b.DueDate)
		}
	})

	return sorted
}
