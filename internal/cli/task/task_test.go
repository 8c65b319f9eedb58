package task

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lista/internal/api"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/testutil/apitest"
	clitest "github.com/thenoetrevino/lista/internal/testutil/cli"
)

func TestTaskCmd_Subcommands(t *testing.T) {
	var names []string
	for _, sub := range TaskCmd().Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"list", "show", "create", "update", "delete", "comment", "comments", "attach", "attachments"})
}

// ============================================================================
// Create / update / delete
// ============================================================================

func TestCreateTask_Positive(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	h := env.Seed(t)

	output, err := clitest.ExecuteCLICommand(t, a, CreateCmd(), []string{
		"--list", h.Ungrouped.ID.String(),
		"--title", "Fix login",
		"--priority", "high",
		"--due", "2026-11-01",
		"--description", "Safari only",
		"--json",
	})
	require.NoError(t, err)

	data := clitest.Data(t, output)
	assert.Equal(t, "Fix login", data["title"])
	assert.Equal(t, "high", data["priority"])
	assert.Equal(t, "2026-11-01", data["due_date"])
	assert.Equal(t, "Safari only", data["description"])
	assert.Equal(t, models.StatusPending, data["status"], "first status of the default schema")
}

func TestCreateTask_Negative(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	h := env.Seed(t)
	list := h.Ungrouped.ID.String()

	tests := []struct {
		name     string
		args     []string
		wantExit int
	}{
		{name: "missing list", args: []string{"--title", "X"}, wantExit: cli.ExitUsage},
		{name: "empty title", args: []string{"--list", list}, wantExit: cli.ExitValidation},
		{name: "status outside the schema", args: []string{"--list", list, "--title", "X", "--status", "blocked"}, wantExit: cli.ExitValidation},
		{name: "bad priority", args: []string{"--list", list, "--title", "X", "--priority", "urgent"}, wantExit: cli.ExitValidation},
		{name: "bad due date", args: []string{"--list", list, "--title", "X", "--due", "tomorrow"}, wantExit: cli.ExitValidation},
		{name: "unknown list", args: []string{"--list", "missing", "--title", "X"}, wantExit: cli.ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := clitest.ExecuteCLICommand(t, a, CreateCmd(), append(tt.args, "--json"))
			assert.Equal(t, tt.wantExit, cli.ExitCodeOf(err))
			assert.Equal(t, false, clitest.ParseJSON(t, output)["success"])
		})
	}

	assert.Zero(t, env.Server.Hits(http.MethodPost, "/api/v1/lists/"+list+"/tasks"), "nothing reached the backend")
}

func TestUpdateTask_StatusChangeIsLogged(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	h := env.Seed(t)
	task := env.Task(t, h.Grouped.ID, "Ship it", "")

	output, err := clitest.ExecuteCLICommand(t, a, UpdateCmd(), []string{task.ID.String(), "--status", "done", "--json"})
	require.NoError(t, err)
	assert.Equal(t, "done", clitest.Data(t, output)["status"])

	output, err = clitest.ExecuteCLICommand(t, a, CommentsCmd(), []string{task.ID.String(), "--json"})
	require.NoError(t, err)
	comments := clitest.ParseJSON(t, output)["data"].([]any)
	require.Len(t, comments, 1)
	assert.Equal(t, string(models.CommentStatusChange), comments[0].(map[string]any)["type"])
}

func TestUpdateTask_Negative(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	h := env.Seed(t)
	task := env.Task(t, h.Grouped.ID, "Ship it", "")
	id := task.ID.String()

	_, err := clitest.ExecuteCLICommand(t, a, UpdateCmd(), []string{id, "--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeOf(err))

	_, err = clitest.ExecuteCLICommand(t, a, UpdateCmd(), []string{id, "--status", "archived", "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeOf(err))
	assert.Zero(t, env.Server.Hits(http.MethodPut, "/api/v1/tasks/"+id))

	_, err = clitest.ExecuteCLICommand(t, a, UpdateCmd(), []string{id, "--title", " ", "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeOf(err))
}

func TestDeleteTask(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	h := env.Seed(t)
	task := env.Task(t, h.Grouped.ID, "Obsolete", "")

	output, err := clitest.ExecuteCLICommand(t, a, DeleteCmd(), []string{task.ID.String(), "--force"})
	require.NoError(t, err)
	assert.Contains(t, output, "Task "+task.ID.String()+" deleted successfully")

	_, err = clitest.ExecuteCLICommand(t, a, ShowCmd(), []string{task.ID.String(), "--json"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeOf(err))
}

// ============================================================================
// Show, comments and attachments
// ============================================================================

func TestShowTask(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	h := env.Seed(t)
	task := env.Task(t, h.Grouped.ID, "Write docs", "")

	output, err := clitest.ExecuteCLICommand(t, a, ShowCmd(), []string{task.ID.String()})
	require.NoError(t, err)
	assert.Contains(t, output, "Write docs")
	assert.Contains(t, output, "No description")
	assert.Contains(t, output, "API", "list name")

	output, err = clitest.ExecuteCLICommand(t, a, ShowCmd(), []string{task.ID.String(), "--json"})
	require.NoError(t, err)
	data := clitest.Data(t, output)
	assert.Equal(t, task.ID.String(), data["id"])
	assert.Empty(t, data["comments"])
}

func TestComments(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	h := env.Seed(t)
	task := env.Task(t, h.Grouped.ID, "Review", "")
	id := task.ID.String()

	output, err := clitest.ExecuteCLICommand(t, a, CommentCmd(), []string{id, "Looks", "good", "--quiet"})
	require.NoError(t, err)
	commentID := strings.TrimSpace(output)
	require.NotEmpty(t, commentID)

	output, err = clitest.ExecuteCLICommand(t, a, CommentsCmd(), []string{id})
	require.NoError(t, err)
	assert.Contains(t, output, "Looks good")

	_, err = clitest.ExecuteCLICommand(t, a, CommentCmd(), []string{id, "--message", "  ", "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeOf(err))

	_, err = clitest.ExecuteCLICommand(t, a, DeleteCommentCmd(), []string{commentID, "--task", id, "--json"})
	require.NoError(t, err)

	output, err = clitest.ExecuteCLICommand(t, a, CommentsCmd(), []string{id})
	require.NoError(t, err)
	assert.Contains(t, output, "No comments")
}

func TestAttachments(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	h := env.Seed(t)
	task := env.Task(t, h.Grouped.ID, "Crash on start", "")
	id := task.ID.String()

	path := filepath.Join(t.TempDir(), "crash.log")
	require.NoError(t, os.WriteFile(path, []byte("panic: nil map"), 0o600))

	output, err := clitest.ExecuteCLICommand(t, a, AttachCmd(), []string{id, "--file", path, "--json"})
	require.NoError(t, err)
	data := clitest.Data(t, output)
	assert.Equal(t, "crash.log", data["file_name"])
	attachmentID := data["id"].(string)

	output, err = clitest.ExecuteCLICommand(t, a, AttachmentsCmd(), []string{id})
	require.NoError(t, err)
	assert.Contains(t, output, "crash.log")
	assert.Contains(t, output, "14 B")

	_, err = clitest.ExecuteCLICommand(t, a, DetachCmd(), []string{attachmentID, "--task", id, "--quiet"})
	require.NoError(t, err)

	output, err = clitest.ExecuteCLICommand(t, a, AttachmentsCmd(), []string{id})
	require.NoError(t, err)
	assert.Contains(t, output, "No attachments")
}

func TestAttach_UnreadableFile(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	h := env.Seed(t)
	task := env.Task(t, h.Grouped.ID, "Crash on start", "")

	output, err := clitest.ExecuteCLICommand(t, a, AttachCmd(), []string{
		task.ID.String(), "--file", filepath.Join(t.TempDir(), "missing.png"), "--json",
	})
	assert.Equal(t, cli.ExitDataErr, cli.ExitCodeOf(err))
	assert.Equal(t, "DATA_ERROR", clitest.ParseJSON(t, output)["error"].(map[string]any)["code"])
}

// ============================================================================
// Views
// ============================================================================

type board struct {
	h       apitest.Hierarchy
	todo    *models.Task
	doing   *models.Task
	done    *models.Task
	other   *models.Task
	dueTask *models.Task
}

func seedBoard(t *testing.T, env *apitest.Env) board {
	t.Helper()
	h := env.Seed(t)
	b := board{
		h:     h,
		todo:  env.Task(t, h.Grouped.ID, "Plan", "pending"),
		doing: env.Task(t, h.Grouped.ID, "Build", "in_progress"),
		done:  env.Task(t, h.Ungrouped.ID, "Sketch", "done"),
	}
	otherSpace := env.Space(t, h.Workspace.ID, "Marketing")
	otherList := env.List(t, otherSpace.ID, "", "Campaigns")
	b.other = env.Task(t, otherList.ID, "Launch", "pending")

	due, err := models.ParseDate("2026-11-05")
	require.NoError(t, err)
	b.dueTask, err = env.Client.UpdateTask(context.Background(), b.doing.ID, api.TaskPatch{DueDate: &due})
	require.NoError(t, err)
	return b
}

func TestListTasks_ListScope(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	b := seedBoard(t, env)

	output, err := clitest.ExecuteCLICommand(t, a, ListCmd(), []string{"--list", b.h.Grouped.ID.String(), "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, []string{b.todo.ID.String(), b.doing.ID.String()}, strings.Fields(output))
}

func TestListTasks_SpaceScopeGroupsByStatus(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	b := seedBoard(t, env)

	output, err := clitest.ExecuteCLICommand(t, a, ListCmd(), []string{"--space", b.h.Space.ID.String(), "--json"})
	require.NoError(t, err)

	data := clitest.Data(t, output)
	assert.Equal(t, "space", data["scope"])
	var keys []string
	for _, g := range data["groups"].([]any) {
		keys = append(keys, g.(map[string]any)["key"].(string))
	}
	assert.Equal(t, []string{"pending", "in_progress", "done"}, keys, "the other space's task is out of scope")
	assert.Equal(t, float64(3), data["stats"].(map[string]any)["total"])
}

func TestListTasks_GroupScopeAndFilters(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	b := seedBoard(t, env)

	output, err := clitest.ExecuteCLICommand(t, a, ListCmd(), []string{
		"--group", b.h.Group.ID.String(),
		"--status", "in_progress",
		"--quiet",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{b.doing.ID.String()}, strings.Fields(output))
}

func TestListTasks_PathScope(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	b := seedBoard(t, env)
	path := "/workspaces/" + b.h.Workspace.ID.String() + "/tasks?status=pending&groupBy=none"

	output, err := clitest.ExecuteCLICommand(t, a, ListCmd(), []string{"--path", path, "--quiet"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{b.todo.ID.String(), b.other.ID.String()}, strings.Fields(output))

	output, err = clitest.ExecuteCLICommand(t, a, ListCmd(), []string{"--path", path, "--by-list", "--workspace", b.h.Workspace.ID.String()})
	require.NoError(t, err)
	assert.Contains(t, output, "Campaigns")
	assert.Contains(t, output, "API")

	_, err = clitest.ExecuteCLICommand(t, a, ListCmd(), []string{"--path", "/dashboard", "--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeOf(err))
}

func TestListTasks_Kanban(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	b := seedBoard(t, env)

	output, err := clitest.ExecuteCLICommand(t, a, ListCmd(), []string{"--space", b.h.Space.ID.String(), "--view", "kanban", "--json"})
	require.NoError(t, err)

	columns := clitest.Data(t, output)["columns"].([]any)
	require.Len(t, columns, 3)
	for i, want := range []string{"todo", "in_progress", "done"} {
		col := columns[i].(map[string]any)
		assert.Equal(t, want, col["status"])
		assert.Len(t, col["tasks"], 1)
	}
}

func TestListTasks_Calendar(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	b := seedBoard(t, env)

	output, err := clitest.ExecuteCLICommand(t, a, ListCmd(), []string{
		"--space", b.h.Space.ID.String(), "--view", "calendar", "--month", "2026-11", "--json",
	})
	require.NoError(t, err)
	data := clitest.Data(t, output)
	assert.Equal(t, "2026-11", data["month"])
	assert.Len(t, data["days"], 42)
	assert.Equal(t, float64(2), data["undated"])

	output, err = clitest.ExecuteCLICommand(t, a, ListCmd(), []string{
		"--space", b.h.Space.ID.String(), "--view", "calendar", "--month", "2026-11", "--quiet",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{b.dueTask.ID.String()}, strings.Fields(output))
}

func TestListTasks_BadViewFlags(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	h := env.Seed(t)
	space := h.Space.ID.String()

	for _, args := range [][]string{
		{"--group-by", "colour"},
		{"--group-order", "sideways"},
		{"--view", "gantt"},
		{"--priority", "urgent"},
	} {
		_, err := clitest.ExecuteCLICommand(t, a, ListCmd(), append([]string{"--space", space, "--json"}, args...))
		assert.Equal(t, cli.ExitValidation, cli.ExitCodeOf(err), args)
	}

	_, err := clitest.ExecuteCLICommand(t, a, ListCmd(), []string{"--space", space, "--view", "calendar", "--month", "11/2026", "--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeOf(err))
}

func TestListTasks_EmptyScope(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	h := env.Seed(t)

	output, err := clitest.ExecuteCLICommand(t, a, ListCmd(), []string{"--list", h.Ungrouped.ID.String()})
	require.NoError(t, err)
	assert.Contains(t, output, "No tasks in this list")
}
