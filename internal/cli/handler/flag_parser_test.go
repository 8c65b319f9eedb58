package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lista/internal/api"
	"github.com/thenoetrevino/lista/internal/app"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/config"
	"github.com/thenoetrevino/lista/internal/favorites"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

// ============================================================================
// Test Helpers
// ============================================================================

// createTestCommand creates a cobra.Command with the flags the parsers read
func createTestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use: "test",
		Run: func(cmd *cobra.Command, args []string) {},
	}
	cmd.Flags().String("name", "", "")
	cmd.Flags().String("color", "", "")
	cmd.Flags().String("id", "", "")
	cmd.Flags().Bool("archived", false, "")
	cli.AddOutputFlags(cmd)
	cli.AddWorkspaceFlag(cmd)
	return cmd
}

// createTestParser creates a FlagParser with a test command and formatter
func createTestParser(cmd *cobra.Command) *FlagParser {
	return NewFlagParser(cmd, &cli.OutputFormatter{JSON: true})
}

// silence discards stdout while fn runs; usage errors print JSON there
func silence(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stdout = old
	return <-outC
}

// ============================================================================
// FlagParser Tests
// ============================================================================

func TestParseString(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "value", args: []string{"--name", "Roadmap"}, want: "Roadmap"},
		{name: "trimmed", args: []string{"--name", "  Roadmap "}, want: "Roadmap"},
		{name: "missing", args: nil, wantErr: true},
		{name: "blank", args: []string{"--name", "   "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := createTestCommand()
			require.NoError(t, cmd.ParseFlags(tt.args))

			var got string
			var err error
			silence(t, func() {
				got, err = createTestParser(cmd).ParseString("name")
			})
			if tt.wantErr {
				assert.Equal(t, cli.ExitUsage, cli.ExitCodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseString_NonExistentFlag(t *testing.T) {
	_, err := createTestParser(createTestCommand()).ParseString("nope")
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "unset", args: nil, want: ""},
		{name: "valid", args: []string{"--color", "#3b82f6"}, want: "#3b82f6"},
		{name: "invalid", args: []string{"--color", "blue"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := createTestCommand()
			require.NoError(t, cmd.ParseFlags(tt.args))

			var got string
			var err error
			silence(t, func() {
				got, err = createTestParser(cmd).ParseColor("color")
			})
			if tt.wantErr {
				assert.Equal(t, cli.ExitUsage, cli.ExitCodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseID(t *testing.T) {
	cmd := createTestCommand()
	p := createTestParser(cmd)

	id, err := p.ParseID([]string{"t1"}, "id", "")
	require.NoError(t, err)
	assert.Equal(t, types.ID("t1"), id)

	out := silence(t, func() {
		_, err = p.ParseID(nil, "id", "Usage: lista task show <id>")
	})
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeOf(err))
	assert.Contains(t, out, "Usage: lista task show <id>")
}

func TestParseWorkspaceID(t *testing.T) {
	t.Setenv(cli.WorkspaceEnv, "")

	cmd := createTestCommand()
	var err error
	out := silence(t, func() {
		_, err = createTestParser(cmd).ParseWorkspaceID()
	})
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeOf(err))
	assert.Contains(t, out, "workspace use")

	require.NoError(t, cmd.ParseFlags([]string{"--workspace", "w9"}))
	id, err := createTestParser(cmd).ParseWorkspaceID()
	require.NoError(t, err)
	assert.Equal(t, types.WorkspaceID("w9"), id)
}

func TestOutputFormats(t *testing.T) {
	cmd := createTestCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--json"}))
	jsonOutput, quiet, err := createTestParser(cmd).OutputFormats()
	require.NoError(t, err)
	assert.True(t, jsonOutput)
	assert.False(t, quiet)
}

func TestOutputFormats_MissingFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "bare"}
	_, _, err := NewFlagParser(cmd, &cli.OutputFormatter{}).OutputFormats()
	assert.Error(t, err)
}

// ============================================================================
// Command Tests
// ============================================================================

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	a, err := app.New(context.Background(), config.Default(), app.WithStorage(favorites.NewMemoryStorage()))
	require.NoError(t, err)
	return a
}

func run(t *testing.T, cmd *cobra.Command, a *app.App, args ...string) (string, error) {
	t.Helper()
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	var err error
	out := silence(t, func() {
		err = cmd.ExecuteContext(cli.WithApp(context.Background(), a))
	})
	return out, err
}

func TestCommand_Success(t *testing.T) {
	a := newTestApp(t)
	rendered := false

	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{
			Use: "show",
			RunE: Command(HandlerFunc(func(ctx context.Context, c *cli.CLI, args *Arguments) (any, error) {
				assert.Same(t, a, c.App)
				return &models.Space{ID: types.ID(args.GetString("name", "s1")), Name: "Eng"}, nil
			}), func(result any) error {
				rendered = true
				return nil
			}),
		}
		cli.AddOutputFlags(cmd)
		cmd.Flags().String("name", "", "")
		return cmd
	}

	out, err := run(t, newCmd(), a, "--json")
	require.NoError(t, err)
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, true, result["success"])
	assert.False(t, rendered, "JSON mode skips the human renderer")

	out, err = run(t, newCmd(), a, "--quiet", "--name", "s7")
	require.NoError(t, err)
	assert.Equal(t, "s7\n", out)

	_, err = run(t, newCmd(), a)
	require.NoError(t, err)
	assert.True(t, rendered)
}

func TestCommand_ErrorExitCode(t *testing.T) {
	a := newTestApp(t)
	cmd := &cobra.Command{
		Use: "fail",
		RunE: SimpleCommand(func(ctx context.Context, c *cli.CLI, args *Arguments) (any, error) {
			return nil, &api.Error{Status: http.StatusNotFound}
		}),
	}
	cli.AddOutputFlags(cmd)

	out, err := run(t, cmd, a, "--json")
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeOf(err))
	assert.Contains(t, out, `"NOT_FOUND"`)
	assert.True(t, errors.As(err, new(*cli.ExitCodeError)))
}

func TestArguments_Getters(t *testing.T) {
	cmd := createTestCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--name", "x", "--archived"}))
	args := &Arguments{Flags: parseFlagsToMap(cmd), cmd: cmd}

	assert.Equal(t, "x", args.GetString("name", "default"))
	assert.Equal(t, "default", args.GetString("color", "default"), "unset flags use the default")
	assert.True(t, args.GetBool("archived"))
	assert.True(t, args.Has("name"))
	assert.False(t, args.Has("color"))
	assert.Equal(t, 3, args.GetInt("name", 3), "type mismatch falls back")
	assert.Same(t, cmd, args.GetCmd())
}
