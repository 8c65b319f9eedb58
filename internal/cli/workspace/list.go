package workspace

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/models"
)

// ListCmd returns the workspace list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the workspaces you belong to",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(handler.HandlerFunc(runList), renderList),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, c *cli.CLI, _ *handler.Arguments) (any, error) {
	return c.App.WorkspaceService.List(ctx)
}

func renderList(result any) error {
	workspaces := result.([]*models.Workspace)
	if len(workspaces) == 0 {
		fmt.Println("No workspaces found")
		return nil
	}

	fmt.Printf("Found %d workspaces:\n\n", len(workspaces))
	for _, ws := range workspaces {
		fmt.Printf("  [%s] %s", ws.ID, ws.Name)
		if ws.Description != "" {
			fmt.Printf(" - %s", ws.Description)
		}
		fmt.Println()
	}
	return nil
}
