package workspace

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/navigation"
	"github.com/thenoetrevino/lista/internal/types"
)

// Opened is where opening a workspace lands
type Opened struct {
	WorkspaceID types.WorkspaceID `json:"workspace_id"`
	Path        string            `json:"path"`
}

// GetID returns the opened workspace id
func (o *Opened) GetID() string { return o.WorkspaceID.String() }

// OpenCmd returns the workspace open subcommand
func OpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open [id]",
		Short: "Print the page a workspace opens on",
		Long: `Resolve the page a workspace opens on: the last visited page when the
backend remembers one, otherwise the workspace root.`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runOpen), func(result any) error {
			fmt.Println(result.(*Opened).Path)
			return nil
		}),
	}
	cmd.Flags().String("id", "", "Workspace ID (defaults to --workspace or $"+cli.WorkspaceEnv+")")
	cli.AddWorkspaceFlag(cmd)
	cli.AddOutputFlags(cmd)
	return cmd
}

func runOpen(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := cli.IDArg(args.GetCmd(), args.Args, "id")
	if err != nil {
		if id, err = args.Parser().ParseWorkspaceID(); err != nil {
			return nil, err
		}
	}

	ws, err := c.App.WorkspaceService.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	path := navigation.RestorePath([]*models.Workspace{ws})
	c.App.Navigator.Push(ctx, path)
	return &Opened{WorkspaceID: ws.ID, Path: path}, nil
}
