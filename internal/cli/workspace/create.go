package workspace

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/models"
	workspaceservice "github.com/thenoetrevino/lista/internal/services/workspace"
)

// CreateCmd returns the workspace create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new workspace",
		Long: `Create a new workspace. You become its owner.

Examples:
  lista workspace create --name "Acme"
  lista workspace create --name "Acme" --description "Company work" --quiet`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runCreate), func(result any) error {
			ws := result.(*models.Workspace)
			fmt.Printf("✓ Workspace '%s' created successfully (ID: %s)\n", ws.Name, ws.ID)
			return nil
		}),
	}

	cmd.Flags().String("name", "", "Workspace name (required)")
	cmd.Flags().String("description", "", "Workspace description")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	return c.App.WorkspaceService.Create(ctx, workspaceservice.CreateWorkspaceRequest{
		Name:        args.GetString("name", ""),
		Description: args.GetString("description", ""),
	})
}
