package models

import "time"

// Project groups tasks across lists. Tasks join a project through their
// project_id.
type Project struct {
	ID          ID         `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

func (p *Project) GetID() string { return p.ID.String() }

// DescriptionText returns the description or an empty string
func (p *Project) DescriptionText() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}
