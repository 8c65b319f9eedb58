package task

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/query"
	"github.com/thenoetrevino/lista/internal/testutil/apitest"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func setup(t *testing.T) (Service, *query.Client, *apitest.Env, apitest.Hierarchy) {
	t.Helper()
	env := apitest.New(t)
	cache := query.NewClient()
	return NewService(env.Client, cache), cache, env, env.Seed(t)
}

func strPtr(s string) *string { return &s }

// ============================================================================
// CREATE
// ============================================================================

func TestCreate_PrependsIntoCachedCollections(t *testing.T) {
	svc, cache, env, h := setup(t)
	ctx := context.Background()
	first := env.Task(t, h.Ungrouped.ID, "First", "")

	_, err := svc.All(ctx)
	require.NoError(t, err)
	_, err = svc.ListByList(ctx, h.Ungrouped.ID)
	require.NoError(t, err)

	created, err := svc.Create(ctx, CreateTaskRequest{ListID: h.Ungrouped.ID, Title: "Second", Priority: "High"})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, created.Priority)

	all, ok := query.GetData[[]*models.Task](cache, query.AllTasksKey())
	require.True(t, ok)
	require.Len(t, all, 2)
	assert.Equal(t, created.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	byList, ok := query.GetData[[]*models.Task](cache, query.TasksByListKey(h.Ungrouped.ID))
	require.True(t, ok)
	assert.Equal(t, created.ID, byList[0].ID)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, env, h := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateTaskRequest
		want error
	}{
		{"missing list", CreateTaskRequest{Title: "x"}, ErrInvalidListID},
		{"empty title", CreateTaskRequest{ListID: h.Ungrouped.ID, Title: "  "}, ErrEmptyTitle},
		{"long title", CreateTaskRequest{ListID: h.Ungrouped.ID, Title: strings.Repeat("a", maxTitleLength+1)}, ErrTitleTooLong},
		{"bad priority", CreateTaskRequest{ListID: h.Ungrouped.ID, Title: "x", Priority: "urgent"}, ErrInvalidPriority},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, env.Server.Hits(http.MethodPost, "/api/v1/lists/"+h.Ungrouped.ID.String()+"/tasks"))
}

func TestCreate_StatusCheckedAgainstKnownList(t *testing.T) {
	svc, cache, _, h := setup(t)
	ctx := context.Background()
	cache.SetData(query.ListKey(h.Ungrouped.ID), h.Ungrouped)

	_, err := svc.Create(ctx, CreateTaskRequest{ListID: h.Ungrouped.ID, Title: "x", Status: "todo"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	task, err := svc.Create(ctx, CreateTaskRequest{ListID: h.Ungrouped.ID, Title: "x", Status: "in_progress"})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", task.Status)
}

// ============================================================================
// UPDATE
// ============================================================================

func TestUpdate_PatchesEveryCachedCopy(t *testing.T) {
	svc, cache, env, h := setup(t)
	ctx := context.Background()
	task := env.Task(t, h.Grouped.ID, "Ship", "")

	_, err := svc.All(ctx)
	require.NoError(t, err)
	_, err = svc.ListByList(ctx, h.Grouped.ID)
	require.NoError(t, err)
	_, err = svc.Get(ctx, task.ID)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, UpdateTaskRequest{ID: task.ID, Status: strPtr("done"), Title: strPtr("Shipped")})
	require.NoError(t, err)
	assert.Equal(t, "done", updated.Status)

	single, _ := query.GetData[*models.Task](cache, query.TaskKey(task.ID))
	assert.Equal(t, "Shipped", single.Title)
	all, _ := query.GetData[[]*models.Task](cache, query.AllTasksKey())
	assert.Equal(t, "done", all[0].Status)
	byList, _ := query.GetData[[]*models.Task](cache, query.TasksByListKey(h.Grouped.ID))
	assert.Equal(t, "done", byList[0].Status)

	assert.True(t, cache.IsStale(query.AllTasksKey()))
	assert.True(t, cache.IsStale(query.TasksByListKey(h.Grouped.ID)))
}

func TestUpdate_StatusChangeIsLogged(t *testing.T) {
	svc, _, env, h := setup(t)
	ctx := context.Background()
	task := env.Task(t, h.Grouped.ID, "Ship", "")

	before, err := svc.ListComments(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, before)

	_, err = svc.Update(ctx, UpdateTaskRequest{ID: task.ID, Status: strPtr("in_progress")})
	require.NoError(t, err)

	after, err := svc.ListComments(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, models.CommentStatusChange, after[0].Type)
}

func TestUpdate_InvalidStatusRejectedWhenListKnown(t *testing.T) {
	svc, cache, env, h := setup(t)
	ctx := context.Background()
	task := env.Task(t, h.Grouped.ID, "Ship", "")
	cache.SetData(query.ListKey(h.Grouped.ID), h.Grouped)

	_, err := svc.Get(ctx, task.ID)
	require.NoError(t, err)

	_, err = svc.Update(ctx, UpdateTaskRequest{ID: task.ID, Status: strPtr("blocked")})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Zero(t, env.Server.Hits(http.MethodPut, "/api/v1/tasks/"+task.ID.String()))
}

// ============================================================================
// DELETE
// ============================================================================

func TestDelete_InvalidatesAndRefetches(t *testing.T) {
	svc, cache, env, h := setup(t)
	ctx := context.Background()
	task := env.Task(t, h.Grouped.ID, "Ship", "")

	_, err := svc.All(ctx)
	require.NoError(t, err)
	_, err = svc.Get(ctx, task.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, task.ID))

	_, ok := query.GetData[*models.Task](cache, query.TaskKey(task.ID))
	assert.False(t, ok)
	assert.Eventually(t, func() bool {
		all, ok := query.GetData[[]*models.Task](cache, query.AllTasksKey())
		return ok && len(all) == 0 && !cache.IsStale(query.AllTasksKey())
	}, time.Second, 10*time.Millisecond)
}

// ============================================================================
// COMMENTS AND ATTACHMENTS
// ============================================================================

func TestComments(t *testing.T) {
	svc, _, env, h := setup(t)
	ctx := context.Background()
	task := env.Task(t, h.Grouped.ID, "Ship", "")

	_, err := svc.AddComment(ctx, CreateCommentRequest{TaskID: task.ID, Message: " "})
	assert.ErrorIs(t, err, ErrEmptyCommentMessage)
	_, err = svc.AddComment(ctx, CreateCommentRequest{TaskID: task.ID, Message: strings.Repeat("x", maxCommentLength+1)})
	assert.ErrorIs(t, err, ErrCommentMessageTooLong)

	_, err = svc.ListComments(ctx, task.ID)
	require.NoError(t, err)

	c, err := svc.AddComment(ctx, CreateCommentRequest{TaskID: task.ID, Message: "Looks good"})
	require.NoError(t, err)
	assert.Equal(t, models.CommentNote, c.Type)

	comments, err := svc.ListComments(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	require.NoError(t, svc.DeleteComment(ctx, task.ID, c.ID))
	assert.Eventually(t, func() bool {
		got, err := svc.ListComments(ctx, task.ID)
		return err == nil && len(got) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestAttachments(t *testing.T) {
	svc, _, env, h := setup(t)
	ctx := context.Background()
	task := env.Task(t, h.Grouped.ID, "Ship", "")

	_, err := svc.UploadAttachment(ctx, task.ID, "", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrEmptyFileName)

	a, err := svc.UploadAttachment(ctx, task.ID, "notes.md", strings.NewReader("# Notes"))
	require.NoError(t, err)
	assert.Equal(t, "notes.md", a.FileName)

	list, err := svc.ListAttachments(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteAttachment(ctx, task.ID, a.ID))
	assert.Eventually(t, func() bool {
		got, err := svc.ListAttachments(ctx, task.ID)
		return err == nil && len(got) == 0
	}, time.Second, 10*time.Millisecond)
}
