package domain

import "time"

// Status is the task lifecycle state.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Domain entity: does not depend on Gin, Postgres or Redis.
// UserID is the owner; a task is never visible outside its owner.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
