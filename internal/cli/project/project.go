// Package project holds the lista project commands
package project

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli/styles"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/taskview"
)

// ProjectCmd returns the project parent command
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"proj"},
		Short:   "Manage projects and the tasks linked to them",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(TasksCmd())
	cmd.AddCommand(AddTaskCmd())
	cmd.AddCommand(RemoveTaskCmd())

	return cmd
}

// projectDetail is a project with the progress of its linked tasks
type projectDetail struct {
	*models.Project
	Stats taskview.Stats `json:"stats"`
}

func renderProject(p *models.Project) {
	fmt.Printf("%s %s\n", styles.TitleStyle.Render(p.Name), styles.SubtitleStyle.Render("#"+p.ID.String()))
	if d := p.DescriptionText(); d != "" {
		fmt.Printf("  %s\n", styles.ValueStyle.Render(d))
	}
}

func renderDetail(result any) error {
	d := result.(*projectDetail)
	renderProject(d.Project)
	s := d.Stats
	fmt.Printf("%s %d/%d done (%d%%), %d in progress, %d to do\n",
		styles.LabelStyle.Render("Tasks:"), s.Completed, s.Total, s.Percent, s.InProgress, s.Todo)
	return nil
}
