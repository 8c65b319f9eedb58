package space

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
)

// DeleteCmd returns the space delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an empty space",
		Long: `Delete a space by ID (requires confirmation unless --force, --json or --quiet).
The backend refuses to delete a space that still holds groups or lists.`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runDelete), cli.RenderDeleted("Space")),
	}

	cmd.Flags().String("id", "", "Space ID (can also be provided as positional argument)")
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Parser().ParseID(args.Args, "id", "Usage: lista space delete <id>")
	if err != nil {
		return nil, err
	}

	sp, err := c.App.SpaceService.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cli.Confirm(args.Formatter, args.GetBool("force"), fmt.Sprintf("Delete space #%s: '%s'?", id, sp.Name)) {
		return &cli.Deleted{ID: id}, nil
	}

	if err := c.App.SpaceService.Delete(ctx, sp.WorkspaceID, id); err != nil {
		return nil, err
	}
	return &cli.Deleted{ID: id, Deleted: true}, nil
}
