package taskview

import (
	"time"

	"github.com/mkravets/taskdeck/internal/models"
)

// Status is the derived category of a task relative to a reference
// instant. It is a closed set; String values are the ones exposed
// over the API.
type Status int

const (
	StatusCompleted Status = iota
	StatusOverdue
	StatusDueToday
	StatusDueTomorrow
	StatusUpcoming
	StatusNoDueDate
)

var statusNames = map[Status]string{
	StatusCompleted:   "completed",
	StatusOverdue:     "overdue",
	StatusDueToday:    "due_today",
	StatusDueTomorrow: "due_tomorrow",
	StatusUpcoming:    "upcoming",
	StatusNoDueDate:   "no_due_date",
}

func (s Status) String() string {
	name, ok := statusNames[s]
	if !ok {
		return "unknown"
	}
	return name
}

// calendarDay truncates an instant to midnight in its own location.
// All day-granularity comparisons in this package go through here,
// so "overdue" never depends on the time-of-day component.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Classify maps a single task and a reference instant to a Status.
// Completion dominates: a completed task is StatusCompleted no
// matter what its due date says. A missing or zero due date yields
// StatusNoDueDate rather than an error.
func Classify(task models.Task, now time.Time) Status {
	if task.Completed {
		return StatusCompleted
	}
	if task.DueDate == nil || task.DueDate.IsZero() {
		return StatusNoDueDate
	}

	dueDay := calendarDay(*task.DueDate)
	today := calendarDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	switch {
	case dueDay.Before(today):
		return StatusOverdue
	case dueDay.Equal(today):
		return StatusDueToday
	case dueDay.Equal(tomorrow):
		return StatusDueTomorrow
	default:
		return StatusUpcoming
	}
}

// ReminderCount returns how many tasks warrant a reminder at the
// given instant: not completed, due by the end of tomorrow. The
// lower bound is inclusive, so arbitrarily old overdue tasks keep
// counting until they are completed.
func ReminderCount(tasks []models.Task, now time.Time) int {
	count := 0
	for _, task := range tasks {
		switch Classify(task, now) {
		case StatusOverdue, StatusDueToday, StatusDueTomorrow:
			count++
		}
	}
	return count
}
