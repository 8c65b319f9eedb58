package favorite

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/favorites"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

// Pinned is the result of favorite add
type Pinned struct {
	*models.Favorite
	WorkspaceID types.WorkspaceID `json:"workspace_id"`
	Added       bool              `json:"added"`
}

// AddCmd returns the favorite add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Pin a space or a list",
		Long: `Pin a space or a list to the favorites of the workspace it belongs to.
Adding an existing favorite is a no-op.

Examples:
  lista favorite add --space 2
  lista favorite add --list 7`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runAdd), func(result any) error {
			p := result.(*Pinned)
			if !p.Added {
				fmt.Printf("'%s' is already a favorite\n", p.Name)
				return nil
			}
			fmt.Printf("✓ '%s' added to favorites\n", p.Name)
			return nil
		}),
	}

	cmd.Flags().String("space", "", "Space ID to pin")
	cmd.Flags().String("list", "", "List ID to pin")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runAdd(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	fav, wsID, err := resolveTarget(ctx, c, args)
	if err != nil {
		return nil, err
	}
	added, err := c.App.Favorites.Add(ctx, wsID, fav)
	if err != nil {
		return nil, err
	}
	return &Pinned{Favorite: &fav, WorkspaceID: wsID, Added: added}, nil
}

// resolveTarget loads the entity named by --space or --list and builds its favorite
func resolveTarget(ctx context.Context, c *cli.CLI, args *handler.Arguments) (models.Favorite, types.WorkspaceID, error) {
	spaceID := types.ID(args.GetString("space", ""))
	listID := types.ID(args.GetString("list", ""))
	if spaceID.Empty() == listID.Empty() {
		return models.Favorite{}, "", args.Formatter.Usage("exactly one of --space or --list is required", "")
	}

	if !spaceID.Empty() {
		sp, err := c.App.SpaceService.Get(ctx, spaceID)
		if err != nil {
			return models.Favorite{}, "", err
		}
		return favorites.ForSpace(sp.WorkspaceID, sp), sp.WorkspaceID, nil
	}

	l, err := c.App.ListService.Get(ctx, listID)
	if err != nil {
		return models.Favorite{}, "", err
	}
	sp, err := c.App.SpaceService.Get(ctx, l.SpaceID)
	if err != nil {
		return models.Favorite{}, "", err
	}
	return favorites.ForList(sp.WorkspaceID, l), sp.WorkspaceID, nil
}
