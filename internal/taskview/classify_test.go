package taskview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mkravets/taskdeck/internal/models"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestClassify_CompletedDominates(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	dueDates := []*time.Time{
		nil,
		datePtr(time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)),
		datePtr(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)),
		datePtr(time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)),
	}

	for _, due := range dueDates {
		task := models.Task{Completed: true, DueDate: due}
		assert.Equal(t, StatusCompleted, Classify(task, now))
	}
}

func TestClassify_NoDueDate(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, StatusNoDueDate, Classify(models.Task{}, now))
	assert.Equal(t, StatusNoDueDate, Classify(models.Task{DueDate: datePtr(time.Time{})}, now))
}

func TestClassify_DayBuckets(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		due  time.Time
		want Status
	}{
		{time.Date(2024, 6, 5, 23, 59, 0, 0, time.UTC), StatusOverdue},
		{time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC), StatusOverdue},
		{time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), StatusDueToday},
		{time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC), StatusDueToday},
		{time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), StatusDueTomorrow},
		{time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), StatusUpcoming},
		{time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC), StatusUpcoming},
	}

	for _, tc := range cases {
		task := models.Task{DueDate: datePtr(tc.due)}
		assert.Equal(t, tc.want, Classify(task, now), "due %s", tc.due)
	}
}

func TestClassify_DueEarlierTodayIsNotOverdue(t *testing.T) {
	// Day granularity: a task due at 08:00 is still "due today"
	// at 09:00, not overdue.
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	task := models.Task{DueDate: datePtr(time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC))}

	assert.Equal(t, StatusDueToday, Classify(task, now))
}

func TestClassify_MonthBoundary(t *testing.T) {
	now := time.Date(2024, 6, 30, 22, 0, 0, 0, time.UTC)
	task := models.Task{DueDate: datePtr(time.Date(2024, 7, 1, 6, 0, 0, 0, time.UTC))}

	assert.Equal(t, StatusDueTomorrow, Classify(task, now))
}

func TestReminderCount_Scenario(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	tasks := []models.Task{
		{DueDate: datePtr(time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))},
		{DueDate: datePtr(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))},
		{DueDate: datePtr(time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC))},
		{DueDate: datePtr(time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC))},
		{Completed: true, DueDate: datePtr(time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))},
	}

	assert.Equal(t, 3, ReminderCount(tasks, now))
}

func TestReminderCount_MatchesClassification(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	tasks := []models.Task{
		{},
		{Completed: true},
		{DueDate: datePtr(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))},
		{DueDate: datePtr(time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC))},
		{DueDate: datePtr(time.Date(2024, 6, 11, 18, 0, 0, 0, time.UTC))},
		{DueDate: datePtr(time.Date(2024, 6, 12, 18, 0, 0, 0, time.UTC))},
		{Completed: true, DueDate: datePtr(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))},
	}

	want := 0
	for _, task := range tasks {
		switch Classify(task, now) {
		case StatusOverdue, StatusDueToday, StatusDueTomorrow:
			want++
		}
	}

	assert.Equal(t, want, ReminderCount(tasks, now))
	assert.Equal(t, 3, want)
}

func TestReminderCount_IncludesArbitrarilyOldOverdue(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{DueDate: datePtr(time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC))},
	}

	assert.Equal(t, 1, ReminderCount(tasks, now))
}

func TestReminderCount_EmptySnapshot(t *testing.T) {
	assert.Equal(t, 0, ReminderCount(nil, time.Now()))
}

func TestClockFunc_FixedInstant(t *testing.T) {
	instant := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	clock := ClockFunc(func() time.Time { return instant })

	assert.Equal(t, instant, clock.Now())
	assert.Equal(t, instant, clock.Now(), "repeat reads must not drift")
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "overdue", StatusOverdue.String())
	assert.Equal(t, "due_today", StatusDueToday.String())
	assert.Equal(t, "due_tomorrow", StatusDueTomorrow.String())
	assert.Equal(t, "no_due_date", StatusNoDueDate.String())
	assert.Equal(t, "unknown", Status(99).String())
}
