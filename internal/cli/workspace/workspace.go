// Package workspace holds the lista workspace commands
package workspace

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli/styles"
	"github.com/thenoetrevino/lista/internal/models"
)

// WorkspaceCmd returns the workspace parent command
func WorkspaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Manage workspaces",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(UseCmd())
	cmd.AddCommand(OpenCmd())

	return cmd
}

func renderWorkspace(result any) error {
	ws := result.(*models.Workspace)
	fmt.Printf("%s %s\n", styles.TitleStyle.Render(ws.Name), styles.SubtitleStyle.Render("#"+ws.ID.String()))
	if ws.Description != "" {
		fmt.Printf("  %s\n", styles.ValueStyle.Render(ws.Description))
	}
	if ws.Role != "" {
		fmt.Printf("%s %s\n", styles.LabelStyle.Render("Role:"), ws.Role)
	}
	if ws.LastVisitedPath != "" {
		fmt.Printf("%s %s\n", styles.LabelStyle.Render("Last visited:"), ws.LastVisitedPath)
	}
	return nil
}
