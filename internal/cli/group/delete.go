package group

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
)

// DeleteCmd returns the group delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an empty group",
		Long: `Delete a group by ID (requires confirmation unless --force, --json or --quiet).
Lists inside the group must be moved or deleted first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runDelete), cli.RenderDeleted("Group")),
	}

	cmd.Flags().String("id", "", "Group ID (can also be provided as positional argument)")
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Parser().ParseID(args.Args, "id", "Usage: lista group delete <id>")
	if err != nil {
		return nil, err
	}

	g, err := c.App.GroupService.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cli.Confirm(args.Formatter, args.GetBool("force"), fmt.Sprintf("Delete group #%s: '%s'?", id, g.Name)) {
		return &cli.Deleted{ID: id}, nil
	}

	if err := c.App.GroupService.Delete(ctx, g.SpaceID, id); err != nil {
		return nil, err
	}
	return &cli.Deleted{ID: id, Deleted: true}, nil
}
