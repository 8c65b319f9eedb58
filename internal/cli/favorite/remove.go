package favorite

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/types"
)

// RemoveCmd returns the favorite remove subcommand
func RemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [favorite-id]",
		Short: "Unpin a favorite",
		Long: `Unpin a favorite by its id (as shown by 'lista favorite list --quiet') or
by the space or list it points to.

Examples:
  lista favorite remove space-2 --workspace 1
  lista favorite remove --list 7`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runRemove), func(result any) error {
			d := result.(*cli.Deleted)
			if !d.Deleted {
				fmt.Printf("%s was not a favorite\n", d.ID)
				return nil
			}
			fmt.Printf("✓ %s removed from favorites\n", d.ID)
			return nil
		}),
	}

	cmd.Flags().String("space", "", "Unpin this space")
	cmd.Flags().String("list", "", "Unpin this list")
	cli.AddWorkspaceFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runRemove(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	var (
		id   types.ID
		wsID types.WorkspaceID
	)
	if len(args.Args) > 0 {
		var err error
		if wsID, err = args.Parser().ParseWorkspaceID(); err != nil {
			return nil, err
		}
		id = types.ID(args.Args[0])
	} else {
		fav, ws, err := resolveTarget(ctx, c, args)
		if err != nil {
			return nil, err
		}
		id, wsID = fav.ID, ws
	}

	removed, err := c.App.Favorites.Remove(ctx, wsID, id)
	if err != nil {
		return nil, err
	}
	return &cli.Deleted{ID: id, Deleted: removed}, nil
}
