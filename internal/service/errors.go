package service

import "errors"

// Failure causes for completing a task by its list position. Callers decide
// how much detail to surface to the user.
var (
	ErrNoTasks           = errors.New("no tasks for user")
	ErrInvalidTaskNumber = errors.New("invalid task number")
	ErrTaskNotFound      = errors.New("task not found")
)
