package space

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/models"
	spaceservice "github.com/thenoetrevino/lista/internal/services/space"
)

// CreateCmd returns the space create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a space in a workspace",
		Long: `Create a space. Spaces are private unless --public is given.

Examples:
  lista space create --workspace 1 --name "Engineering"
  lista space create --name "Marketing" --public --color "#3b82f6" --quiet`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runCreate), func(result any) error {
			sp := result.(*models.Space)
			fmt.Printf("✓ Space '%s' created successfully (ID: %s, %s)\n", sp.Name, sp.ID, sp.Visibility)
			return nil
		}),
	}

	cmd.Flags().String("name", "", "Space name (required)")
	cmd.Flags().Bool("public", false, "Make the space visible to every workspace member")
	cmd.Flags().String("color", "", "Space color (#RRGGBB)")
	cli.AddWorkspaceFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	p := args.Parser()
	wsID, err := p.ParseWorkspaceID()
	if err != nil {
		return nil, err
	}
	color, err := p.ParseColor("color")
	if err != nil {
		return nil, err
	}
	return c.App.SpaceService.Create(ctx, spaceservice.CreateSpaceRequest{
		WorkspaceID: wsID,
		Name:        args.GetString("name", ""),
		IsPublic:    args.GetBool("public"),
		Color:       color,
	})
}
