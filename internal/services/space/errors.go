package space

import "errors"

// Domain errors for space service
var (
	// Validation errors
	ErrEmptyName          = errors.New("space name cannot be empty")
	ErrNameTooLong        = errors.New("space name cannot exceed 255 characters")
	ErrInvalidColor       = errors.New("color must be a hex value like #3b82f6")
	ErrInvalidSpaceID     = errors.New("invalid space ID")
	ErrInvalidWorkspaceID = errors.New("invalid workspace ID")
)
