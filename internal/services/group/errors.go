package group

import "errors"

// Domain errors for group service
var (
	ErrEmptyName      = errors.New("group name cannot be empty")
	ErrNameTooLong    = errors.New("group name cannot exceed 255 characters")
	ErrInvalidColor   = errors.New("color must be a hex value like #3b82f6")
	ErrInvalidGroupID = errors.New("invalid group ID")
	ErrInvalidSpaceID = errors.New("invalid space ID")
)
