package workspace

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/models"
	workspaceservice "github.com/thenoetrevino/lista/internal/services/workspace"
)

// UpdateCmd returns the workspace update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Rename a workspace or change its description",
		Args:  cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runUpdate), func(result any) error {
			ws := result.(*models.Workspace)
			fmt.Printf("✓ Workspace %s updated\n", ws.ID)
			return renderWorkspace(ws)
		}),
	}

	cmd.Flags().String("id", "", "Workspace ID (can also be provided as positional argument)")
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Parser().ParseID(args.Args, "id", "Usage: lista workspace update <id> --name <name>")
	if err != nil {
		return nil, err
	}
	cmd := args.GetCmd()
	req := workspaceservice.UpdateWorkspaceRequest{
		ID:          id,
		Name:        cli.ChangedString(cmd, "name"),
		Description: cli.ChangedString(cmd, "description"),
	}
	if req.Name == nil && req.Description == nil {
		return nil, args.Formatter.Usage("nothing to update", "Pass --name or --description")
	}
	return c.App.WorkspaceService.Update(ctx, req)
}
