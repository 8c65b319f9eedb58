package api

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Error is returned for every failed backend call.
// Status is 0 when no response was received.
type Error struct {
	Status  int
	Message string
	Errors  map[string][]string
	Method  string
	Path    string
	Err     error
}

// errorBody is the backend error envelope
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: network error: %v", e.Method, e.Path, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusOf returns the HTTP status carried by err, 0 if none
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }
func IsForbidden(err error) bool    { return StatusOf(err) == http.StatusForbidden }
func IsNotFound(err error) bool     { return StatusOf(err) == http.StatusNotFound }
func IsValidation(err error) bool   { return StatusOf(err) == http.StatusUnprocessableEntity }
func IsRateLimited(err error) bool  { return StatusOf(err) == http.StatusTooManyRequests }
func IsServer(err error) bool       { return StatusOf(err) >= http.StatusInternalServerError }

// IsNetwork reports a failure where no response arrived
func IsNetwork(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == 0
}

// FieldErrors joins validation messages as "field: msg1, msg2" lines, sorted by field
func FieldErrors(fields map[string][]string) string {
	if len(fields) == 0 {
		return ""
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s: %s", name, strings.Join(fields[name], ", ")))
	}
	return strings.Join(lines, "\n")
}

// UserMessage renders err the way it is shown to the user.
// Each status category has a fixed text; validation errors list their fields.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	switch {
	case apiErr.Status == 0:
		return "Network error. Check your connection and the API address"
	case apiErr.Status == http.StatusUnauthorized:
		return "Please log in"
	case apiErr.Status == http.StatusForbidden:
		return "You do not have permission to perform this action"
	case apiErr.Status == http.StatusNotFound:
		return "Record not found"
	case apiErr.Status == http.StatusUnprocessableEntity:
		if fields := FieldErrors(apiErr.Errors); fields != "" {
			return fields
		}
		return messageOr(apiErr.Message, "Validation failed")
	case apiErr.Status == http.StatusTooManyRequests:
		return "Too many requests. Please try again later"
	case apiErr.Status >= http.StatusInternalServerError:
		return "Server error. Please try again later"
	}
	return messageOr(apiErr.Message, "Something went wrong")
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
