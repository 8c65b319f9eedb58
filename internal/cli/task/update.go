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

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a task",
		Long: `Update a task. Only the flags you pass are changed. A status change is
logged by the backend as a status_change comment.

Examples:
  lista task update 42 --status done
  lista task update 42 --title "Fix login on Safari" --priority high
  lista task update 42 --due 2026-12-01 --assignee 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runUpdate), func(result any) error {
			t := result.(*models.Task)
			fmt.Printf("✓ Task %s updated\n", t.ID)
			fmt.Println("  " + taskLine(t))
			return nil
		}),
	}

	cmd.Flags().String("id", "", "Task ID (can also be provided as positional argument)")
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description (markdown)")
	cmd.Flags().String("status", "", "New status key")
	cmd.Flags().String("priority", "", "New priority: low, medium, high")
	cmd.Flags().String("due", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().String("assignee", "", "Assigned user ID")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Parser().ParseID(args.Args, "id", "Usage: lista task update <id> [--status ...]")
	if err != nil {
		return nil, err
	}

	cmd := args.GetCmd()
	req := taskservice.UpdateTaskRequest{
		ID:          id,
		Title:       cli.ChangedString(cmd, "title"),
		Description: cli.ChangedString(cmd, "description"),
		Status:      cli.ChangedString(cmd, "status"),
		Priority:    cli.ChangedString(cmd, "priority"),
	}
	if args.Has("due") {
		due, err := cli.ParseDueDate(args.GetString("due", ""))
		if err != nil {
			return nil, err
		}
		if due == nil {
			return nil, args.Formatter.Usage("--due needs a date", "Use YYYY-MM-DD")
		}
		req.DueDate = due
	}
	if args.Has("assignee") {
		req.AssignedTo = types.ID(args.GetString("assignee", "")).Ptr()
	}
	if req.Title == nil && req.Description == nil && req.Status == nil &&
		req.Priority == nil && req.DueDate == nil && req.AssignedTo == nil {
		return nil, args.Formatter.Usage("nothing to update",
			"Pass --title, --description, --status, --priority, --due or --assignee")
	}

	if req.Status != nil {
		// prime the task and its list so the status is checked against the schema
		t, err := c.App.TaskService.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if _, err := c.App.ListService.Get(ctx, t.ListID); err != nil {
			return nil, err
		}
	}
	return c.App.TaskService.Update(ctx, req)
}
