package tasklist

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/models"
	listservice "github.com/thenoetrevino/lista/internal/services/list"
)

// UpdateCmd returns the list update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a list",
		Long: `Update a list. Only the flags you pass are changed. Use 'lista list move'
to change the group.

Examples:
  lista list update 7 --name "Backlog"
  lista list update 7 --schema "todo,doing,done"
  lista list update 7 --archived`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runUpdate), func(result any) error {
			l := result.(*models.TaskList)
			fmt.Printf("✓ List %s updated\n", l.ID)
			return renderList(l)
		}),
	}

	cmd.Flags().String("id", "", "List ID (can also be provided as positional argument)")
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("schema", "", "New statuses as key=Label pairs")
	cmd.Flags().Bool("archived", false, "Archive (true) or restore (false)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Parser().ParseID(args.Args, "id", "Usage: lista list update <id> [--name ...]")
	if err != nil {
		return nil, err
	}

	cmd := args.GetCmd()
	req := listservice.UpdateListRequest{
		ID:         id,
		Name:       cli.ChangedString(cmd, "name"),
		IsArchived: cli.ChangedBool(cmd, "archived"),
	}
	if args.Has("schema") {
		schema, err := cli.ParseSchema(args.GetString("schema", ""))
		if err != nil {
			return nil, err
		}
		if schema == nil {
			return nil, listservice.ErrEmptySchema
		}
		req.StatusSchema = schema
	}
	if req.Name == nil && req.IsArchived == nil && req.StatusSchema == nil {
		return nil, args.Formatter.Usage("nothing to update", "Pass --name, --schema or --archived")
	}
	return c.App.ListService.Update(ctx, req)
}
