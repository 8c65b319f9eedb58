package project

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/models"
	projectservice "github.com/thenoetrevino/lista/internal/services/project"
)

// UpdateCmd returns the project update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Rename a project or change its description",
		Long: `Rename a project or change its description.

The backend replaces the whole form, so flags you leave out keep the
current value.`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runUpdate), func(result any) error {
			p := result.(*models.Project)
			fmt.Printf("✓ Project %s updated\n", p.ID)
			renderProject(p)
			return nil
		}),
	}

	cmd.Flags().String("id", "", "Project ID (can also be provided as positional argument)")
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description (empty clears it)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Parser().ParseID(args.Args, "id", "Usage: lista project update <id> --name <name>")
	if err != nil {
		return nil, err
	}
	cmd := args.GetCmd()
	name := cli.ChangedString(cmd, "name")
	description := cli.ChangedString(cmd, "description")
	if name == nil && description == nil {
		return nil, args.Formatter.Usage("nothing to update", "Pass --name or --description")
	}

	current, err := c.App.ProjectService.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req := projectservice.ProjectRequest{Name: current.Name, Description: current.DescriptionText()}
	if name != nil {
		req.Name = *name
	}
	if description != nil {
		req.Description = *description
	}
	return c.App.ProjectService.Update(ctx, id, req)
}
