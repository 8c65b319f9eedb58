package models

import (
	"fmt"
	"strings"
)

// Kanban statuses. The board always shows these three columns.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"

	// StatusPending is the first key of the default list schema
	StatusPending = "pending"
)

// Priority of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// StatusOrder is the fixed display order of workflow statuses
var StatusOrder = []string{StatusTodo, StatusInProgress, StatusDone}

// PriorityOrder is the display order of priorities
var PriorityOrder = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

var statusLabels = map[string]string{
	StatusTodo:       "To Do",
	StatusPending:    "Pending",
	StatusInProgress: "In Progress",
	StatusDone:       "Done",
}

var priorityLabels = map[Priority]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
}

// StatusLabel returns the display label of a status key
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// Label returns the display label of the priority
func (p Priority) Label() string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return string(p)
}

// StatusRank orders statuses for display. pending shares todo's slot.
// Unknown statuses sort after the known ones.
func StatusRank(status string) int {
	switch status {
	case StatusTodo, StatusPending:
		return 0
	case StatusInProgress:
		return 1
	case StatusDone:
		return 2
	}
	return len(StatusOrder)
}

// PriorityRank orders priorities low → high; unknown values sort last
func PriorityRank(p Priority) int {
	for i, known := range PriorityOrder {
		if p == known {
			return i
		}
	}
	return len(PriorityOrder)
}

// ParsePriority validates a priority string
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if PriorityRank(p) == len(PriorityOrder) {
		return "", fmt.Errorf("%w: %q (must be: low, medium, high)", ErrInvalidPriority, s)
	}
	return p, nil
}
