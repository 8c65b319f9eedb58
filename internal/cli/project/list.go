package project

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/models"
)

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your projects",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(handler.HandlerFunc(runList), renderList),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, c *cli.CLI, _ *handler.Arguments) (any, error) {
	return c.App.ProjectService.List(ctx)
}

func renderList(result any) error {
	projects := result.([]*models.Project)
	if len(projects) == 0 {
		fmt.Println("No projects found")
		return nil
	}

	fmt.Printf("Found %d projects:\n\n", len(projects))
	for _, p := range projects {
		fmt.Printf("  [%s] %s", p.ID, p.Name)
		if d := p.DescriptionText(); d != "" {
			fmt.Printf(" - %s", d)
		}
		fmt.Println()
	}
	return nil
}
