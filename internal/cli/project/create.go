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

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a new project.

Examples:
  lista project create --name "Launch"
  lista project create --name "Launch" --description "Public beta" --quiet`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runCreate), func(result any) error {
			p := result.(*models.Project)
			fmt.Printf("✓ Project '%s' created successfully (ID: %s)\n", p.Name, p.ID)
			return nil
		}),
	}

	cmd.Flags().String("name", "", "Project name (required)")
	cmd.Flags().String("description", "", "Project description")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	return c.App.ProjectService.Create(ctx, projectservice.ProjectRequest{
		Name:        args.GetString("name", ""),
		Description: args.GetString("description", ""),
	})
}
