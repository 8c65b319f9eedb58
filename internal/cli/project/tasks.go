package project

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/cli/styles"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

// TasksCmd returns the project tasks subcommand
func TasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks [id]",
		Short: "List the tasks linked to a project",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Command(handler.HandlerFunc(runTasks), renderTasks),
	}
	cmd.Flags().String("id", "", "Project ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runTasks(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Parser().ParseID(args.Args, "id", "Usage: lista project tasks <id>")
	if err != nil {
		return nil, err
	}
	return c.App.ProjectService.Tasks(ctx, id)
}

func renderTasks(result any) error {
	tasks := result.([]*models.Task)
	if len(tasks) == 0 {
		fmt.Println("No tasks linked to this project")
		return nil
	}
	for _, t := range tasks {
		fmt.Printf("  [%s] %s %s %s\n", t.ID, styles.RenderPriority(t.Priority), t.Title, styles.SubtitleStyle.Render(t.Status))
	}
	return nil
}

// AddTaskCmd returns the project add-task subcommand
func AddTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-task [id]",
		Short: "Link a task to a project",
		Long: `Link a task to a project. A task belongs to at most one project;
linking it again moves it.

Examples:
  lista project add-task 7 --task 42`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runAddTask), renderLinked),
	}
	cmd.Flags().String("id", "", "Project ID (can also be provided as positional argument)")
	cmd.Flags().String("task", "", "Task ID (required)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runAddTask(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Parser().ParseID(args.Args, "id", "Usage: lista project add-task <id> --task <task-id>")
	if err != nil {
		return nil, err
	}
	taskID, err := args.Parser().ParseRequiredID("task")
	if err != nil {
		return nil, err
	}
	return c.App.ProjectService.SetTaskProject(ctx, taskID, id)
}

// RemoveTaskCmd returns the project remove-task subcommand
func RemoveTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-task",
		Short: "Unlink a task from its project",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(handler.HandlerFunc(runRemoveTask), renderLinked),
	}
	cmd.Flags().String("task", "", "Task ID (required)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runRemoveTask(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	taskID, err := args.Parser().ParseRequiredID("task")
	if err != nil {
		return nil, err
	}
	return c.App.ProjectService.SetTaskProject(ctx, taskID, "")
}

func renderLinked(result any) error {
	t := result.(*models.Task)
	if project := types.Deref(t.ProjectID); !project.Empty() {
		fmt.Printf("✓ Task %s linked to project %s\n", t.ID, project)
		return nil
	}
	fmt.Printf("✓ Task %s no longer belongs to a project\n", t.ID)
	return nil
}
