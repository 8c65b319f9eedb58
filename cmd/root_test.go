package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lista/internal/cli"
)

func TestRootRegistersCommands(t *testing.T) {
	want := []string{"auth", "workspace", "space", "group", "list", "task", "project", "favorite", "tree", "breadcrumb", "browse", "tutorial"}
	got := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		got[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, got[name], "missing command %q", name)
	}
}

func TestExecute_UnknownFlagIsUsageError(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--definitely-not-a-flag"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := Execute()
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeOf(err))
}

type closeCounter struct{ closed int }

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestExecute_ClosesLogWhenCommandFails(t *testing.T) {
	failing := &cobra.Command{
		Use: "fail-for-test",
		RunE: func(*cobra.Command, []string) error {
			return errors.New("boom")
		},
	}
	rootCmd.AddCommand(failing)
	t.Cleanup(func() {
		rootCmd.RemoveCommand(failing)
		rootCmd.SetArgs(nil)
	})

	log := &closeCounter{}
	// the pre-run would open the real log file; keep the fake one in place
	failing.PersistentPreRunE = func(*cobra.Command, []string) error {
		logCloser = log
		return nil
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"fail-for-test"})

	err := Execute()
	require.Error(t, err)
	assert.Equal(t, 1, log.closed)
	assert.Nil(t, logCloser)
}
