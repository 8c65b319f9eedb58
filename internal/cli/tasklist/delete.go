package tasklist

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
)

// DeleteCmd returns the list delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an empty list",
		Long: `Delete a list by ID (requires confirmation unless --force, --json or --quiet).
The backend refuses while the list still holds tasks.`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runDelete), cli.RenderDeleted("List")),
	}

	cmd.Flags().String("id", "", "List ID (can also be provided as positional argument)")
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Parser().ParseID(args.Args, "id", "Usage: lista list delete <id>")
	if err != nil {
		return nil, err
	}

	l, err := c.App.ListService.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cli.Confirm(args.Formatter, args.GetBool("force"), fmt.Sprintf("Delete list #%s: '%s'?", id, l.Name)) {
		return &cli.Deleted{ID: id}, nil
	}

	if err := c.App.ListService.Delete(ctx, l.SpaceID, id); err != nil {
		return nil, err
	}
	return &cli.Deleted{ID: id, Deleted: true}, nil
}
