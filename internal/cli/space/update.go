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

// UpdateCmd returns the space update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a space",
		Long: `Update a space. Only the flags you pass are changed.

Examples:
  lista space update 12 --name "Platform"
  lista space update 12 --public=false
  lista space update 12 --archived`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runUpdate), func(result any) error {
			sp := result.(*models.Space)
			fmt.Printf("✓ Space %s updated\n", sp.ID)
			return renderSpace(sp)
		}),
	}

	cmd.Flags().String("id", "", "Space ID (can also be provided as positional argument)")
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().Bool("public", false, "Public (true) or private (false)")
	cmd.Flags().String("color", "", "New color (#RRGGBB)")
	cmd.Flags().Bool("archived", false, "Archive (true) or restore (false)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	p := args.Parser()
	id, err := p.ParseID(args.Args, "id", "Usage: lista space update <id> [--name ...]")
	if err != nil {
		return nil, err
	}

	cmd := args.GetCmd()
	req := spaceservice.UpdateSpaceRequest{
		ID:         id,
		Name:       cli.ChangedString(cmd, "name"),
		IsPublic:   cli.ChangedBool(cmd, "public"),
		IsArchived: cli.ChangedBool(cmd, "archived"),
	}
	if args.Has("color") {
		color, err := p.ParseColor("color")
		if err != nil {
			return nil, err
		}
		req.Color = &color
	}
	if req.Name == nil && req.IsPublic == nil && req.IsArchived == nil && req.Color == nil {
		return nil, args.Formatter.Usage("nothing to update", "Pass --name, --public, --color or --archived")
	}
	return c.App.SpaceService.Update(ctx, req)
}
