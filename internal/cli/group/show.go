package group

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
)

// ShowCmd returns the group show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show group details",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Command(handler.HandlerFunc(runShow), renderGroup),
	}
	cmd.Flags().String("id", "", "Group ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Parser().ParseID(args.Args, "id", "Usage: lista group show <id>")
	if err != nil {
		return nil, err
	}
	return c.App.GroupService.Get(ctx, id)
}
