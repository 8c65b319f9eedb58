package project

import "errors"

// Domain errors for project service
var (
	ErrEmptyName        = errors.New("project name cannot be empty")
	ErrNameTooLong      = errors.New("project name cannot exceed 255 characters")
	ErrInvalidProjectID = errors.New("invalid project ID")
	ErrInvalidTaskID    = errors.New("invalid task ID")
)
