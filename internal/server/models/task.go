package models

import "time"

// Task is a single to-do item. Priority is a dense ordering key scoped to the
// task's (owner, due date, completed) group; DueDate is a calendar date
// stored at UTC midnight.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	DueDate     time.Time
	Completed   bool
	Priority    int
	CreatedAt   time.Time
	CompletedAt *time.Time
}
