package taskview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/taskdeck/internal/models"
)

func TestSortedView_Scenario(t *testing.T) {
	day1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	day3 := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	a := models.Task{ID: "A", Priority: models.PriorityMedium}
	b := models.Task{ID: "B", Completed: true, Priority: models.PriorityHigh}
	c := models.Task{ID: "C", Priority: models.PriorityHigh, DueDate: datePtr(day3)}
	d := models.Task{ID: "D", Priority: models.PriorityHigh, DueDate: datePtr(day1)}

	sorted := SortedView([]models.Task{d, c, a, b})

	require.Len(t, sorted, 4)
	assert.Equal(t, "D", sorted[0].ID)
	assert.Equal(t, "C", sorted[1].ID)
	assert.Equal(t, "A", sorted[2].ID)
	assert.Equal(t, "B", sorted[3].ID)
}

func TestSortedView_IncompleteBeforeComplete(t *testing.T) {
	sorted := SortedView([]models.Task{
		{ID: "done", Completed: true, Priority: models.PriorityHigh},
		{ID: "open", Priority: models.PriorityLow},
	})

	assert.Equal(t, "open", sorted[0].ID)
	assert.Equal(t, "done", sorted[1].ID)
}

func TestSortedView_PriorityDescending(t *testing.T) {
	sorted := SortedView([]models.Task{
		{ID: "low", Priority: models.PriorityLow},
		{ID: "high", Priority: models.PriorityHigh},
		{ID: "medium", Priority: models.PriorityMedium},
	})

	assert.Equal(t, "high", sorted[0].ID)
	assert.Equal(t, "medium", sorted[1].ID)
	assert.Equal(t, "low", sorted[2].ID)
}

func TestSortedView_UnknownPrioritySinksBelowLow(t *testing.T) {
	sorted := SortedView([]models.Task{
		{ID: "weird", Priority: "urgent!!"},
		{ID: "low", Priority: models.PriorityLow},
	})

	assert.Equal(t, "low", sorted[0].ID)
	assert.Equal(t, "weird", sorted[1].ID)
}

func TestSortedView_DatedBeforeUndated(t *testing.T) {
	farFuture := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)

	sorted := SortedView([]models.Task{
		{ID: "undated", Priority: models.PriorityHigh},
		{ID: "dated", Priority: models.PriorityHigh, DueDate: datePtr(farFuture)},
	})

	assert.Equal(t, "dated", sorted[0].ID, "a due date sorts first no matter how distant")
	assert.Equal(t, "undated", sorted[1].ID)
}

func TestSortedView_StableOnEqualKeys(t *testing.T) {
	tasks := []models.Task{
		{ID: "first", Priority: models.PriorityMedium},
		{ID: "second", Priority: models.PriorityMedium},
		{ID: "third", Priority: models.PriorityMedium},
	}

	sorted := SortedView(tasks)

	assert.Equal(t, "first", sorted[0].ID)
	assert.Equal(t, "second", sorted[1].ID)
	assert.Equal(t, "third", sorted[2].ID)
}

func TestSortedView_DoesNotMutateInput(t *testing.T) {
	input := []models.Task{
		{ID: "z", Completed: true},
		{ID: "a", Priority: models.PriorityHigh},
	}

	_ = SortedView(input)

	assert.Equal(t, "z", input[0].ID)
	assert.Equal(t, "a", input[1].ID)
}

func TestSortedView_EmptySnapshot(t *testing.T) {
	assert.Empty(t, SortedView(nil))
}
