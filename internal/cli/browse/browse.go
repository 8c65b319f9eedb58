// Package browse starts the interactive browser from the command line
package browse

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/navigation"
	"github.com/thenoetrevino/lista/internal/tui"
	"github.com/thenoetrevino/lista/internal/types"
)

// Session describes where the browser was opened
type Session struct {
	WorkspaceID types.WorkspaceID `json:"workspace_id"`
	Path        string            `json:"path"`
}

// runBrowser is replaced in tests
var runBrowser = tui.Run

// BrowseCmd returns the browse command
func BrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse workspaces and tasks interactively",
		Long: `Open the interactive browser: the space tree on the left, the tasks of the
selected space, group or list on the right, switchable between list, kanban
and calendar views.

Without --path the browser resumes where you last were in the workspace
(or in your first workspace when none is given).

Examples:
  lista browse
  lista browse --workspace 1
  lista browse --path /workspaces/1/spaces/2?view=kanban`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runBrowse), func(any) error { return nil }),
	}

	cmd.Flags().String("path", "", "App path to open")
	cli.AddWorkspaceFlag(cmd)

	return cmd
}

func runBrowse(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	s, err := resolveStart(ctx, c, args)
	if err != nil {
		return nil, err
	}
	if err := runBrowser(ctx, c.App, s.WorkspaceID, s.Path); err != nil {
		return nil, err
	}
	return s, nil
}

// resolveStart picks the workspace and path to open: --path, then the last
// visited path of --workspace, then the first workspace's
func resolveStart(ctx context.Context, c *cli.CLI, args *handler.Arguments) (*Session, error) {
	if path := args.GetString("path", ""); path != "" {
		route := navigation.ParseRoute(path)
		if route.WorkspaceID.Empty() {
			return nil, args.Formatter.Usage("--path must start with /workspaces/<id>", "")
		}
		return &Session{WorkspaceID: route.WorkspaceID, Path: path}, nil
	}

	if ws, err := cli.GetWorkspaceID(args.GetCmd()); err == nil {
		w, err := c.App.WorkspaceService.Get(ctx, ws)
		if err != nil {
			return nil, err
		}
		path := w.LastVisitedPath
		if navigation.ParseRoute(path).WorkspaceID != ws {
			path = navigation.WorkspacePath(ws)
		}
		return &Session{WorkspaceID: ws, Path: path}, nil
	}

	workspaces, err := c.App.WorkspaceService.List(ctx)
	if err != nil {
		return nil, err
	}
	path := navigation.RestorePath(workspaces)
	ws := navigation.ParseRoute(path).WorkspaceID
	if ws.Empty() {
		return nil, args.Formatter.Usage("you have no workspaces yet", "Create one with: lista workspace create --name <name>")
	}
	return &Session{WorkspaceID: ws, Path: path}, nil
}
