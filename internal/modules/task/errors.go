package task

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidDueDate  = errors.New("due date is not a valid date")
	ErrDueDateInPast   = errors.New("due date cannot be in the past")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
)
