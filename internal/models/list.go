package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// StatusSchema maps a status key to its display label.
// Each list may define its own workflow.
type StatusSchema map[string]string

// DefaultStatusSchema is used when a list carries no schema
func DefaultStatusSchema() StatusSchema {
	return StatusSchema{
		"pending":     "Pending",
		"in_progress": "In Progress",
		"done":        "Done",
	}
}

// UnmarshalJSON tolerates non-string labels (the backend stores free-form values)
func (s *StatusSchema) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = nil
		return nil
	}
	out := make(StatusSchema, len(raw))
	for k, v := range raw {
		switch label := v.(type) {
		case string:
			out[k] = label
		case nil:
			out[k] = k
		default:
			out[k] = fmt.Sprint(label)
		}
	}
	*s = out
	return nil
}

// Has reports whether key is a valid status in the schema
func (s StatusSchema) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Keys returns the schema keys, known workflow keys first then alphabetical
func (s StatusSchema) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := StatusRank(keys[i]), StatusRank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	return keys
}

// TaskList is an ordered collection of tasks. GroupID is nil for ungrouped lists.
type TaskList struct {
	ID           ID           `json:"id"`
	SpaceID      ID           `json:"space_id"`
	GroupID      *ID          `json:"group_id"`
	Name         string       `json:"name"`
	StatusSchema StatusSchema `json:"status_schema,omitempty"`
	IsArchived   bool         `json:"is_archived,omitempty"`
	CreatedAt    *time.Time   `json:"created_at,omitempty"`
	UpdatedAt    *time.Time   `json:"updated_at,omitempty"`
}

func (l *TaskList) GetID() string { return l.ID.String() }

// Schema returns the list's status schema or the default one
func (l *TaskList) Schema() StatusSchema {
	if len(l.StatusSchema) == 0 {
		return DefaultStatusSchema()
	}
	return l.StatusSchema
}

// Grouped reports whether the list belongs to a group
func (l *TaskList) Grouped() bool {
	return l.GroupID != nil && !l.GroupID.Empty()
}
