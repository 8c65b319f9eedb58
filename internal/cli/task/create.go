package task

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/models"
	taskservice "github.com/thenoetrevino/lista/internal/services/task"
	"github.com/thenoetrevino/lista/internal/types"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task in a list",
		Long: `Create a task. The status must be one of the list's statuses; without
--status the list's first status is used.

Examples:
  lista task create --list 7 --title "Write release notes"
  lista task create --list 7 --title "Fix login" --priority high --due 2026-11-01
  lista task create --list 7 --title "Review" --description "## Scope" --quiet`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runCreate), func(result any) error {
			t := result.(*models.Task)
			fmt.Printf("✓ Task '%s' created successfully (ID: %s)\n", t.Title, t.ID)
			return nil
		}),
	}

	cmd.Flags().String("list", "", "List ID (required)")
	cmd.Flags().String("title", "", "Task title (required)")
	cmd.Flags().String("description", "", "Task description (markdown)")
	cmd.Flags().String("status", "", "Status key from the list's schema")
	cmd.Flags().String("priority", "", "Priority: low, medium, high")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().String("assignee", "", "Assigned user ID")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	listID, err := args.Parser().ParseRequiredID("list")
	if err != nil {
		return nil, err
	}
	due, err := cli.ParseDueDate(args.GetString("due", ""))
	if err != nil {
		return nil, err
	}

	// loading the list lets the service check --status against its schema
	if _, err := c.App.ListService.Get(ctx, listID); err != nil {
		return nil, err
	}

	return c.App.TaskService.Create(ctx, taskservice.CreateTaskRequest{
		ListID:      listID,
		Title:       args.GetString("title", ""),
		Description: cli.ChangedString(args.GetCmd(), "description"),
		Status:      args.GetString("status", ""),
		Priority:    args.GetString("priority", ""),
		DueDate:     due,
		AssignedTo:  types.ID(args.GetString("assignee", "")).Ptr(),
	})
}
