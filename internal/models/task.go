package models

import "time"

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// KnownPriority reports whether p is one of the three
// enumerated priority values. Unknown values are rejected at
// the API boundary but tolerated everywhere below it.
func KnownPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

type Task struct {
	ID           string
	UserID       string
	Description  string
	Completed    bool
	Priority     string
	DueDate      *time.Time
	ProjectID    *string
	AssignedToID *string
	ParentTaskID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
