package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/lista/internal/api"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/services/auth"
	"github.com/thenoetrevino/lista/internal/services/group"
	"github.com/thenoetrevino/lista/internal/services/list"
	"github.com/thenoetrevino/lista/internal/services/project"
	"github.com/thenoetrevino/lista/internal/services/space"
	"github.com/thenoetrevino/lista/internal/services/task"
	"github.com/thenoetrevino/lista/internal/services/workspace"
	"github.com/thenoetrevino/lista/internal/session"
	"github.com/thenoetrevino/lista/internal/taskview"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: network errors, server errors, local storage failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found (HTTP 404).
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: unreadable attachment files or undecodable input.
	ExitDataErr = 4

	// ExitValidation indicates a validation error, either caught locally
	// before the request or reported by the backend (HTTP 422).
	ExitValidation = 5

	// ExitUnauthorized indicates there is no valid session (HTTP 401).
	ExitUnauthorized = 6

	// ExitForbidden indicates the user lacks permission (HTTP 403).
	ExitForbidden = 7
)

// ExitCodeError carries the process exit code of a failed command.
// The error has already been reported to the user when it is returned.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// ExitCodeOf returns the exit code a command error should end the process with
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitError
}

var validationErrors = []error{
	models.ErrInvalidVisibility,
	models.ErrInvalidPriority,
	models.ErrInvalidStatus,
	models.ErrInvalidDate,
	auth.ErrEmptyEmail,
	auth.ErrEmptyPassword,
	auth.ErrEmptyName,
	auth.ErrPasswordMismatch,
	workspace.ErrEmptyName,
	workspace.ErrNameTooLong,
	workspace.ErrInvalidWorkspaceID,
	workspace.ErrInvalidPath,
	space.ErrEmptyName,
	space.ErrNameTooLong,
	space.ErrInvalidColor,
	space.ErrInvalidSpaceID,
	space.ErrInvalidWorkspaceID,
	group.ErrEmptyName,
	group.ErrNameTooLong,
	group.ErrInvalidColor,
	group.ErrInvalidGroupID,
	group.ErrInvalidSpaceID,
	list.ErrEmptyName,
	list.ErrNameTooLong,
	list.ErrInvalidListID,
	list.ErrInvalidSpaceID,
	list.ErrEmptySchema,
	list.ErrEmptyStatusKey,
	project.ErrEmptyName,
	project.ErrNameTooLong,
	project.ErrInvalidProjectID,
	project.ErrInvalidTaskID,
	task.ErrEmptyTitle,
	task.ErrTitleTooLong,
	task.ErrInvalidTaskID,
	task.ErrInvalidListID,
	task.ErrInvalidPriority,
	task.ErrInvalidStatus,
	task.ErrEmptyCommentMessage,
	task.ErrCommentMessageTooLong,
	task.ErrInvalidCommentID,
	task.ErrEmptyFileName,
	task.ErrInvalidAttachmentID,
	taskview.ErrInvalidGroupBy,
	taskview.ErrInvalidOrder,
	taskview.ErrInvalidView,
}

// Classify maps err to an exit code and a machine-readable error code
func Classify(err error) (exit int, code string) {
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code, "ERROR"
	}
	if errors.Is(err, session.ErrAnonymous) || errors.Is(err, session.ErrNotInitialized) {
		return ExitUnauthorized, "UNAUTHORIZED"
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return ExitValidation, "VALIDATION_ERROR"
		}
	}

	switch {
	case api.IsUnauthorized(err):
		return ExitUnauthorized, "UNAUTHORIZED"
	case api.IsForbidden(err):
		return ExitForbidden, "FORBIDDEN"
	case api.IsNotFound(err):
		return ExitNotFound, "NOT_FOUND"
	case api.IsValidation(err):
		return ExitValidation, "VALIDATION_ERROR"
	case api.IsRateLimited(err):
		return ExitError, "RATE_LIMITED"
	case api.IsServer(err):
		return ExitError, "SERVER_ERROR"
	case api.IsNetwork(err):
		return ExitError, "NETWORK_ERROR"
	}
	return ExitError, "ERROR"
}
