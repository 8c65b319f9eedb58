package favorite

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/cli/styles"
	"github.com/thenoetrevino/lista/internal/models"
)

// ListCmd returns the favorite list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the favorites of a workspace",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(handler.HandlerFunc(runList), renderList),
	}
	cli.AddWorkspaceFlag(cmd)
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	wsID, err := args.Parser().ParseWorkspaceID()
	if err != nil {
		return nil, err
	}
	favs, err := c.App.Favorites.List(ctx, wsID)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Favorite, len(favs))
	for i := range favs {
		out[i] = &favs[i]
	}
	return out, nil
}

func renderList(result any) error {
	favs := result.([]*models.Favorite)
	if len(favs) == 0 {
		fmt.Println("No favorites yet. Add one with: lista favorite add --space <id>")
		return nil
	}
	for _, f := range favs {
		fmt.Printf("%s %s %s\n", styles.FavoriteStyle.Render("★"), f.Name, styles.SubtitleStyle.Render(f.URL))
	}
	return nil
}
