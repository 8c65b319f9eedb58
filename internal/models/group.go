package models

import "time"

// Group optionally clusters lists inside a space
type Group struct {
	ID        ID         `json:"id"`
	SpaceID   ID         `json:"space_id"`
	Name      string     `json:"name"`
	Color     string     `json:"color,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (g *Group) GetID() string { return g.ID.String() }
