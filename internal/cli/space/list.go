package space

import (
	"context"
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/models"
)

// ListCmd returns the space list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the spaces of a workspace",
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
	spaces, err := c.App.SpaceService.List(ctx, wsID)
	if err != nil {
		return nil, err
	}
	sorted := append([]*models.Space(nil), spaces...)
	sort.SliceStable(sorted, func(i, j int) bool { return natural.Less(sorted[i].Name, sorted[j].Name) })
	return sorted, nil
}

func renderList(result any) error {
	spaces := result.([]*models.Space)
	if len(spaces) == 0 {
		fmt.Println("No spaces found")
		return nil
	}

	fmt.Printf("Found %d spaces:\n\n", len(spaces))
	for _, sp := range spaces {
		fmt.Printf("  [%s] %s (%s)\n", sp.ID, sp.Name, sp.Visibility)
	}
	return nil
}
