package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_DecodesBackendPayload(t *testing.T) {
	payload := `{
		"id": 12,
		"list_id": "l-1",
		"title": "Ship it",
		"description": null,
		"status": "in_progress",
		"priority": "high",
		"due_date": "2025-03-04T00:00:00.000000Z",
		"assigned_to": 3,
		"created_at": "2025-03-01T10:00:00Z"
	}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(payload), &task))

	assert.Equal(t, ID("12"), task.ID)
	assert.Equal(t, ID("l-1"), task.ListID)
	assert.Nil(t, task.Description)
	assert.Equal(t, "", task.DescriptionText())
	assert.Equal(t, PriorityHigh, task.Priority)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2025-03-04", task.DueDate.Key())
	assert.Equal(t, "3", task.AssigneeName())
}

func TestTaskList_GroupIDNullable(t *testing.T) {
	var ungrouped, grouped TaskList
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","space_id":"s","group_id":null,"name":"A"}`), &ungrouped))
	require.NoError(t, json.Unmarshal([]byte(`{"id":"b","space_id":"s","group_id":"g","name":"B"}`), &grouped))

	assert.False(t, ungrouped.Grouped())
	assert.True(t, grouped.Grouped())
}

func TestTaskList_SchemaFallsBackToDefault(t *testing.T) {
	list := TaskList{}
	schema := list.Schema()
	assert.True(t, schema.Has("pending"))
	assert.True(t, schema.Has("in_progress"))
	assert.True(t, schema.Has("done"))
	assert.Equal(t, []string{"pending", "in_progress", "done"}, schema.Keys())
}

func TestStatusSchema_TolerantDecode(t *testing.T) {
	var schema StatusSchema
	require.NoError(t, json.Unmarshal([]byte(`{"todo":"To Do","review":{"color":"red"},"done":null}`), &schema))
	assert.Equal(t, "To Do", schema["todo"])
	assert.Equal(t, "done", schema["done"])
	assert.Contains(t, schema["review"], "red")
	assert.Equal(t, []string{"todo", "done", "review"}, schema.Keys())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, time.December, d.Month())

	_, err = ParseDate("31/12/2024")
	assert.True(t, errors.Is(err, ErrInvalidDate))
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority(" High ")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("critical")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestVisibility(t *testing.T) {
	assert.Equal(t, VisibilityPublic, VisibilityFromPublic(true))
	assert.Equal(t, VisibilityPrivate, VisibilityFromPublic(false))

	_, err := ParseVisibility("secret")
	assert.ErrorIs(t, err, ErrInvalidVisibility)
}

func TestStatusRank_PendingSharesTodoSlot(t *testing.T) {
	assert.Equal(t, StatusRank(StatusTodo), StatusRank(StatusPending))
	assert.Less(t, StatusRank(StatusInProgress), StatusRank(StatusDone))
	assert.Greater(t, StatusRank("blocked"), StatusRank(StatusDone))
}
