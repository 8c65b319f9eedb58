package tasklist

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/models"
	listservice "github.com/thenoetrevino/lista/internal/services/list"
	"github.com/thenoetrevino/lista/internal/types"
)

// CreateCmd returns the list create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a list in a space or group",
		Long: `Create a task list. Without --group the list sits directly under the space.
--schema sets the statuses as comma separated key=Label pairs; the default
workflow is pending, in_progress, done.

Examples:
  lista list create --space 12 --name "Inbox"
  lista list create --space 12 --group 4 --name "API"
  lista list create --space 12 --name "Bugs" --schema "triage=Triage,fixing,closed=Closed"`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runCreate), func(result any) error {
			l := result.(*models.TaskList)
			fmt.Printf("✓ List '%s' created successfully (ID: %s)\n", l.Name, l.ID)
			return nil
		}),
	}

	cmd.Flags().String("space", "", "Space ID (required)")
	cmd.Flags().String("group", "", "Group ID")
	cmd.Flags().String("name", "", "List name (required)")
	cmd.Flags().String("schema", "", "Statuses as key=Label pairs")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	spaceID, err := args.Parser().ParseRequiredID("space")
	if err != nil {
		return nil, err
	}
	schema, err := cli.ParseSchema(args.GetString("schema", ""))
	if err != nil {
		return nil, err
	}
	return c.App.ListService.Create(ctx, listservice.CreateListRequest{
		SpaceID:      spaceID,
		GroupID:      types.ID(args.GetString("group", "")).Ptr(),
		Name:         args.GetString("name", ""),
		StatusSchema: schema,
	})
}
