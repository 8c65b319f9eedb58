package tasklist

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lista/internal/cli"
	clitest "github.com/thenoetrevino/lista/internal/testutil/cli"
)

func TestCreateList(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	h := env.Seed(t)

	t.Run("default schema in a group", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, a, CreateCmd(), []string{
			"--space", h.Space.ID.String(),
			"--group", h.Group.ID.String(),
			"--name", "Jobs",
			"--json",
		})
		require.NoError(t, err)
		data := clitest.Data(t, output)
		assert.Equal(t, h.Group.ID.String(), data["group_id"])
		assert.Contains(t, data["status_schema"], "pending")
	})

	t.Run("custom schema ungrouped", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, a, CreateCmd(), []string{
			"--space", h.Space.ID.String(),
			"--name", "Bugs",
			"--schema", "triage=Triage,fixing,closed",
			"--json",
		})
		require.NoError(t, err)
		data := clitest.Data(t, output)
		assert.Nil(t, data["group_id"])
		assert.Equal(t, map[string]any{"triage": "Triage", "fixing": "fixing", "closed": "closed"}, data["status_schema"])
	})
}

func TestCreateList_Negative(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	h := env.Seed(t)
	other := env.Space(t, h.Workspace.ID, "Other")
	foreign := env.Group(t, other.ID, "Foreign")

	tests := []struct {
		name     string
		args     []string
		wantExit int
	}{
		{name: "missing space", args: []string{"--name", "X"}, wantExit: cli.ExitUsage},
		{name: "empty name", args: []string{"--space", h.Space.ID.String()}, wantExit: cli.ExitValidation},
		{name: "empty status key", args: []string{"--space", h.Space.ID.String(), "--name", "X", "--schema", "=Label"}, wantExit: cli.ExitValidation},
		{name: "group of another space", args: []string{"--space", h.Space.ID.String(), "--name", "X", "--group", foreign.ID.String()}, wantExit: cli.ExitValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := clitest.ExecuteCLICommand(t, a, CreateCmd(), append(tt.args, "--json"))
			assert.Equal(t, tt.wantExit, cli.ExitCodeOf(err))
		})
	}
}

func TestLsLists(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	h := env.Seed(t)
	space := h.Space.ID.String()

	output, err := clitest.ExecuteCLICommand(t, a, LsCmd(), []string{"--space", space, "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, []string{h.Grouped.ID.String(), h.Ungrouped.ID.String()}, strings.Fields(output))

	output, err = clitest.ExecuteCLICommand(t, a, LsCmd(), []string{"--space", space, "--ungrouped", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, []string{h.Ungrouped.ID.String()}, strings.Fields(output))

	output, err = clitest.ExecuteCLICommand(t, a, LsCmd(), []string{"--space", space, "--group", h.Group.ID.String(), "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, []string{h.Grouped.ID.String()}, strings.Fields(output))

	_, err = clitest.ExecuteCLICommand(t, a, LsCmd(), []string{"--space", space, "--group", "1", "--ungrouped", "--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeOf(err))
}

func TestShowList(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	h := env.Seed(t)

	output, err := clitest.ExecuteCLICommand(t, a, ShowCmd(), []string{h.Ungrouped.ID.String()})
	require.NoError(t, err)
	assert.Contains(t, output, "Inbox")
	assert.Contains(t, output, "(ungrouped)")
	assert.Contains(t, output, "in_progress=In Progress")
}

func TestUpdateList(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	h := env.Seed(t)
	id := h.Ungrouped.ID.String()

	output, err := clitest.ExecuteCLICommand(t, a, UpdateCmd(), []string{id, "--name", "Triage", "--schema", "new,done", "--json"})
	require.NoError(t, err)
	data := clitest.Data(t, output)
	assert.Equal(t, "Triage", data["name"])
	assert.Equal(t, map[string]any{"new": "new", "done": "Done"}, data["status_schema"])

	_, err = clitest.ExecuteCLICommand(t, a, UpdateCmd(), []string{id, "--schema", "", "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeOf(err))

	_, err = clitest.ExecuteCLICommand(t, a, UpdateCmd(), []string{id, "--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeOf(err))
}

func TestMoveList(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	h := env.Seed(t)
	ctx := context.Background()

	output, err := clitest.ExecuteCLICommand(t, a, MoveCmd(), []string{h.Ungrouped.ID.String(), "--group", h.Group.ID.String(), "--json"})
	require.NoError(t, err)
	assert.Equal(t, h.Group.ID.String(), clitest.Data(t, output)["group_id"])

	output, err = clitest.ExecuteCLICommand(t, a, MoveCmd(), []string{h.Grouped.ID.String(), "--ungrouped"})
	require.NoError(t, err)
	assert.Contains(t, output, "moved out of its group")

	lists, err := a.ListService.List(ctx, h.Space.ID)
	require.NoError(t, err)
	for _, l := range lists {
		switch l.ID {
		case h.Grouped.ID:
			assert.Nil(t, l.GroupID)
		case h.Ungrouped.ID:
			require.NotNil(t, l.GroupID)
			assert.Equal(t, h.Group.ID, *l.GroupID)
		}
	}

	_, err = clitest.ExecuteCLICommand(t, a, MoveCmd(), []string{h.Grouped.ID.String(), "--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeOf(err))
}

func TestDeleteList(t *testing.T) {
	env, a := clitest.SetupCLITest(t)
	h := env.Seed(t)
	env.Task(t, h.Grouped.ID, "Write docs", "")

	_, err := clitest.ExecuteCLICommand(t, a, DeleteCmd(), []string{h.Grouped.ID.String(), "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeOf(err), "list still holds a task")

	output, err := clitest.ExecuteCLICommand(t, a, DeleteCmd(), []string{h.Ungrouped.ID.String(), "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, h.Ungrouped.ID.String(), strings.TrimSpace(output))

	_, err = clitest.ExecuteCLICommand(t, a, ShowCmd(), []string{h.Ungrouped.ID.String(), "--json"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeOf(err))
}
