package group

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

// ListCmd returns the group list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the groups of a space",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(handler.HandlerFunc(runList), renderList),
	}
	cmd.Flags().String("space", "", "Space ID (required)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	spaceID, err := args.Parser().ParseRequiredID("space")
	if err != nil {
		return nil, err
	}
	groups, err := c.App.GroupService.List(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	sorted := append([]*models.Group(nil), groups...)
	sort.SliceStable(sorted, func(i, j int) bool { return natural.Less(sorted[i].Name, sorted[j].Name) })
	return sorted, nil
}

func renderList(result any) error {
	groups := result.([]*models.Group)
	if len(groups) == 0 {
		fmt.Println("No groups found")
		return nil
	}

	fmt.Printf("Found %d groups:\n\n", len(groups))
	for _, g := range groups {
		fmt.Printf("  [%s] %s\n", g.ID, g.Name)
	}
	return nil
}
