package models

import "time"

// WorkspaceRole is the current user's role inside a workspace
type WorkspaceRole string

const (
	RoleOwner  WorkspaceRole = "owner"
	RoleAdmin  WorkspaceRole = "admin"
	RoleMember WorkspaceRole = "member"
	RoleGuest  WorkspaceRole = "guest"
)

// Workspace is the top-level container. It owns spaces.
type Workspace struct {
	ID              ID             `json:"id"`
	Name            string         `json:"name"`
	Slug            string         `json:"slug,omitempty"`
	Description     string         `json:"description,omitempty"`
	OwnerID         ID             `json:"owner_id,omitempty"`
	Role            WorkspaceRole  `json:"role,omitempty"`
	Settings        map[string]any `json:"settings,omitempty"`
	LastVisitedPath string         `json:"last_visited_path,omitempty"`
	CreatedAt       *time.Time     `json:"created_at,omitempty"`
	UpdatedAt       *time.Time     `json:"updated_at,omitempty"`
}

func (w *Workspace) GetID() string { return w.ID.String() }
