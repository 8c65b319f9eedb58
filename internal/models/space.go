package models

import (
	"fmt"
	"time"
)

// Visibility controls who can see a space
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// VisibilityFromPublic maps the is_public form flag to a visibility
func VisibilityFromPublic(isPublic bool) Visibility {
	if isPublic {
		return VisibilityPublic
	}
	return VisibilityPrivate
}

// ParseVisibility validates a visibility string
func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(s) {
	case VisibilityPublic, VisibilityPrivate:
		return Visibility(s), nil
	}
	return "", fmt.Errorf("%w: %q (must be: public, private)", ErrInvalidVisibility, s)
}

// Space is a sub-container of a workspace. It owns groups and lists.
type Space struct {
	ID          ID         `json:"id"`
	WorkspaceID ID         `json:"workspace_id"`
	Name        string     `json:"name"`
	Visibility  Visibility `json:"visibility"`
	Color       string     `json:"color,omitempty"`
	IsArchived  bool       `json:"is_archived,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (s *Space) GetID() string { return s.ID.String() }
