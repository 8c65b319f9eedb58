package auth

import "errors"

// Domain errors for auth service
var (
	// Validation errors
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrPasswordMismatch = errors.New("password confirmation does not match")
)
