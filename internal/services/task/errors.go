package task

import "errors"

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle      = errors.New("task title cannot be empty")
	ErrTitleTooLong    = errors.New("task title cannot exceed 255 characters")
	ErrInvalidTaskID   = errors.New("invalid task ID")
	ErrInvalidListID   = errors.New("invalid list ID")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidStatus   = errors.New("status is not part of the list's status schema")

	// Comment validation errors
	ErrEmptyCommentMessage   = errors.New("comment message cannot be empty")
	ErrCommentMessageTooLong = errors.New("comment message cannot exceed 1000 characters")
	ErrInvalidCommentID      = errors.New("invalid comment ID")

	// Attachment validation errors
	ErrEmptyFileName       = errors.New("attachment file name cannot be empty")
	ErrInvalidAttachmentID = errors.New("invalid attachment ID")
)
