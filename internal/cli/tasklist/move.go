package tasklist

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

// MoveCmd returns the list move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move [id]",
		Short: "Move a list into a group or out of any group",
		Long: `Move a list to another group of its space, or to the ungrouped bucket.

Examples:
  lista list move 7 --group 4
  lista list move 7 --ungrouped`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runMove), func(result any) error {
			l := result.(*models.TaskList)
			if l.GroupID == nil {
				fmt.Printf("✓ List %s moved out of its group\n", l.ID)
				return nil
			}
			fmt.Printf("✓ List %s moved to group %s\n", l.ID, *l.GroupID)
			return nil
		}),
	}

	cmd.Flags().String("id", "", "List ID (can also be provided as positional argument)")
	cmd.Flags().String("group", "", "Target group ID")
	cmd.Flags().Bool("ungrouped", false, "Move the list out of any group")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runMove(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Parser().ParseID(args.Args, "id", "Usage: lista list move <id> --group <group-id>|--ungrouped")
	if err != nil {
		return nil, err
	}

	group := types.ID(args.GetString("group", ""))
	ungrouped := args.GetBool("ungrouped")
	switch {
	case ungrouped && !group.Empty():
		return nil, args.Formatter.Usage("--group and --ungrouped are mutually exclusive", "")
	case !ungrouped && group.Empty():
		return nil, args.Formatter.Usage("a target is required", "Pass --group <group-id> or --ungrouped")
	}
	return c.App.ListService.Move(ctx, id, group.Ptr())
}
