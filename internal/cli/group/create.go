package group

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/models"
	groupservice "github.com/thenoetrevino/lista/internal/services/group"
)

// CreateCmd returns the group create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group in a space",
		Long: `Create a group (folder) in a space.

Examples:
  lista group create --space 12 --name "Backend"
  lista group create --space 12 --name "Design" --color "#f97316" --quiet`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runCreate), func(result any) error {
			g := result.(*models.Group)
			fmt.Printf("✓ Group '%s' created successfully (ID: %s)\n", g.Name, g.ID)
			return nil
		}),
	}

	cmd.Flags().String("space", "", "Space ID (required)")
	cmd.Flags().String("name", "", "Group name (required)")
	cmd.Flags().String("color", "", "Group color (#RRGGBB)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	p := args.Parser()
	spaceID, err := p.ParseRequiredID("space")
	if err != nil {
		return nil, err
	}
	color, err := p.ParseColor("color")
	if err != nil {
		return nil, err
	}
	return c.App.GroupService.Create(ctx, groupservice.CreateGroupRequest{
		SpaceID: spaceID,
		Name:    args.GetString("name", ""),
		Color:   color,
	})
}
