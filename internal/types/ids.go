package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies any entity served by the backend.
// The backend emits numeric ids for tasks, comments and users and string ids
// for workspaces, spaces, groups and lists, so ID accepts both on decode and
// always encodes as a JSON string.
type ID string

// Empty reports whether the id is unset
func (id ID) Empty() bool {
	return id == ""
}

func (id ID) String() string {
	return string(id)
}

// MarshalJSON always writes the id as a string
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON string, a JSON number, or null
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number, got %s", string(data))
	}
	*id = ID(n.String())
	return nil
}

// IDFromInt converts a numeric id
func IDFromInt(i int) ID {
	return ID(strconv.Itoa(i))
}

// Ptr returns a pointer to id; nil when id is empty.
// Used for nullable parent references such as a list's group.
func (id ID) Ptr() *ID {
	if id.Empty() {
		return nil
	}
	return &id
}

// Deref returns the pointed-to id or the empty id
func Deref(id *ID) ID {
	if id == nil {
		return ""
	}
	return *id
}

// Semantic aliases. They document what an id refers to at call sites
// without forcing conversions between entity kinds.
type (
	WorkspaceID = ID
	SpaceID     = ID
	GroupID     = ID
	ListID      = ID
	TaskID      = ID
	UserID      = ID
	CommentID   = ID
	ProjectID   = ID
)
