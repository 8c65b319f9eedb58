package models

import "errors"

// Validation errors shared by services and the CLI
var (
	ErrInvalidVisibility = errors.New("invalid visibility")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidDate       = errors.New("invalid date")
)
