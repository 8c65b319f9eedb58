package workspace

import "errors"

// Domain errors for workspace service
var (
	// Validation errors
	ErrEmptyName          = errors.New("workspace name cannot be empty")
	ErrNameTooLong        = errors.New("workspace name cannot exceed 255 characters")
	ErrInvalidWorkspaceID = errors.New("invalid workspace ID")
	ErrInvalidPath        = errors.New("last visited path must start with /workspaces/")
)
