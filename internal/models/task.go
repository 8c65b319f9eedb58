package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format of due dates
const DateLayout = "2006-01-02"

// Date is a calendar day without a time component
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in UTC
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD, also accepting full timestamps
func ParseDate(s string) (Date, error) {
	if len(s) >= len(DateLayout) {
		if t, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return Date{t}, nil
		}
	}
	return Date{}, fmt.Errorf("%w %q (expected YYYY-MM-DD)", ErrInvalidDate, s)
}

// Key returns the YYYY-MM-DD form used for calendar bucketing
func (d Date) Key() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Key())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Task is the atomic work item
type Task struct {
	ID          ID         `json:"id"`
	ListID      ID         `json:"list_id"`
	ProjectID   *ID        `json:"project_id,omitempty"`
	UserID      ID         `json:"user_id,omitempty"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *Date      `json:"due_date"`
	AssignedTo  *ID        `json:"assigned_to"`
	Assignee    *User      `json:"assignee,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (t *Task) GetID() string { return t.ID.String() }

// DescriptionText returns the description or an empty string
func (t *Task) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// AssigneeName returns the best available assignee label, empty when unassigned
func (t *Task) AssigneeName() string {
	if t.Assignee != nil && t.Assignee.Name != "" {
		return t.Assignee.Name
	}
	if t.AssignedTo != nil && !t.AssignedTo.Empty() {
		return t.AssignedTo.String()
	}
	return ""
}

// CommentType classifies a task comment
type CommentType string

const (
	CommentNote         CommentType = "note"
	CommentStatusChange CommentType = "status_change"
	CommentAssignment   CommentType = "assignment"
)

// TaskComment is a note attached to a task
type TaskComment struct {
	ID        ID          `json:"id"`
	TaskID    ID          `json:"task_id"`
	UserID    ID          `json:"user_id"`
	Comment   string      `json:"comment"`
	Type      CommentType `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt *time.Time  `json:"updated_at,omitempty"`
}

func (c *TaskComment) GetID() string { return c.ID.String() }

// TaskAttachment describes an uploaded file
type TaskAttachment struct {
	ID        ID         `json:"id"`
	TaskID    ID         `json:"task_id"`
	FilePath  string     `json:"file_path"`
	FileName  string     `json:"file_name"`
	FileType  string     `json:"file_type"`
	FileSize  int64      `json:"file_size"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (a *TaskAttachment) GetID() string { return a.ID.String() }
