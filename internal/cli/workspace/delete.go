package workspace

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
)

// DeleteCmd returns the workspace delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a workspace",
		Long:  "Delete a workspace by ID (requires confirmation unless --force, --json or --quiet).",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Command(handler.HandlerFunc(runDelete), cli.RenderDeleted("Workspace")),
	}

	cmd.Flags().String("id", "", "Workspace ID (can also be provided as positional argument)")
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Parser().ParseID(args.Args, "id", "Usage: lista workspace delete <id>")
	if err != nil {
		return nil, err
	}

	ws, err := c.App.WorkspaceService.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cli.Confirm(args.Formatter, args.GetBool("force"), fmt.Sprintf("Delete workspace #%s: '%s'?", id, ws.Name)) {
		return &cli.Deleted{ID: id}, nil
	}

	if err := c.App.WorkspaceService.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &cli.Deleted{ID: id, Deleted: true}, nil
}
