package project

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
)

// DeleteCmd returns the project delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a project",
		Long: `Delete a project by ID (requires confirmation unless --force, --json or --quiet).

Linked tasks are not deleted; they stay in their lists without a project.`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runDelete), cli.RenderDeleted("Project")),
	}

	cmd.Flags().String("id", "", "Project ID (can also be provided as positional argument)")
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Parser().ParseID(args.Args, "id", "Usage: lista project delete <id>")
	if err != nil {
		return nil, err
	}

	p, err := c.App.ProjectService.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cli.Confirm(args.Formatter, args.GetBool("force"), fmt.Sprintf("Delete project #%s: '%s'?", id, p.Name)) {
		return &cli.Deleted{ID: id}, nil
	}

	if err := c.App.ProjectService.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &cli.Deleted{ID: id, Deleted: true}, nil
}
