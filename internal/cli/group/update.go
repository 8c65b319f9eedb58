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

// UpdateCmd returns the group update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Rename or recolor a group",
		Args:  cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runUpdate), func(result any) error {
			g := result.(*models.Group)
			fmt.Printf("✓ Group %s updated\n", g.ID)
			return renderGroup(g)
		}),
	}

	cmd.Flags().String("id", "", "Group ID (can also be provided as positional argument)")
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("color", "", "New color (#RRGGBB)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	p := args.Parser()
	id, err := p.ParseID(args.Args, "id", "Usage: lista group update <id> [--name ...] [--color ...]")
	if err != nil {
		return nil, err
	}

	req := groupservice.UpdateGroupRequest{
		ID:   id,
		Name: cli.ChangedString(args.GetCmd(), "name"),
	}
	if args.Has("color") {
		color, err := p.ParseColor("color")
		if err != nil {
			return nil, err
		}
		req.Color = &color
	}
	if req.Name == nil && req.Color == nil {
		return nil, args.Formatter.Usage("nothing to update", "Pass --name or --color")
	}
	return c.App.GroupService.Update(ctx, req)
}
