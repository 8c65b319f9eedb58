package list

import "errors"

// Domain errors for list service
var (
	ErrEmptyName      = errors.New("list name cannot be empty")
	ErrNameTooLong    = errors.New("list name cannot exceed 255 characters")
	ErrInvalidListID  = errors.New("invalid list ID")
	ErrInvalidSpaceID = errors.New("invalid space ID")
	ErrEmptySchema    = errors.New("status schema must define at least one status")
	ErrEmptyStatusKey = errors.New("status keys cannot be empty")
)
