package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/cli/styles"
	"github.com/thenoetrevino/lista/internal/models"
	taskservice "github.com/thenoetrevino/lista/internal/services/task"
)

// CommentCmd returns the task comment subcommand
func CommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment [id]",
		Short: "Add a comment to a task",
		Long: `Add a note to a task. The message is taken from --message or from the
arguments after the task id.

Examples:
  lista task comment 42 --message "Waiting on design"
  lista task comment 42 Deployed to staging`,
		Args: cobra.ArbitraryArgs,
		RunE: handler.Command(handler.HandlerFunc(runComment), func(result any) error {
			c := result.(*models.TaskComment)
			fmt.Printf("✓ Comment %s added to task %s\n", c.ID, c.TaskID)
			return nil
		}),
	}

	cmd.Flags().String("id", "", "Task ID (can also be provided as positional argument)")
	cmd.Flags().StringP("message", "m", "", "Comment text")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runComment(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Parser().ParseID(args.Args, "id", "Usage: lista task comment <id> --message <text>")
	if err != nil {
		return nil, err
	}

	message := args.GetString("message", "")
	if message == "" && len(args.Args) > 1 {
		message = strings.Join(args.Args[1:], " ")
	}
	return c.App.TaskService.AddComment(ctx, taskservice.CreateCommentRequest{
		TaskID:  id,
		Message: message,
		Type:    models.CommentNote,
	})
}

// CommentsCmd returns the task comments subcommand
func CommentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments [id]",
		Short: "List the comments of a task",
		Args:  cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runComments), func(result any) error {
			comments := result.([]*models.TaskComment)
			if len(comments) == 0 {
				fmt.Println("No comments")
				return nil
			}
			for _, c := range comments {
				fmt.Println(commentLine(c))
			}
			return nil
		}),
	}

	cmd.Flags().String("id", "", "Task ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runComments(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Parser().ParseID(args.Args, "id", "Usage: lista task comments <id>")
	if err != nil {
		return nil, err
	}
	return c.App.TaskService.ListComments(ctx, id)
}

// DeleteCommentCmd returns the task delete-comment subcommand
func DeleteCommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete-comment [comment-id]",
		Short: "Delete one of your comments",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Command(handler.HandlerFunc(runDeleteComment), cli.RenderDeleted("Comment")),
	}

	cmd.Flags().String("id", "", "Comment ID (can also be provided as positional argument)")
	cmd.Flags().String("task", "", "Task ID the comment belongs to (required)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDeleteComment(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	p := args.Parser()
	id, err := p.ParseID(args.Args, "id", "Usage: lista task delete-comment <comment-id> --task <task-id>")
	if err != nil {
		return nil, err
	}
	taskID, err := p.ParseRequiredID("task")
	if err != nil {
		return nil, err
	}
	if err := c.App.TaskService.DeleteComment(ctx, taskID, id); err != nil {
		return nil, err
	}
	return &cli.Deleted{ID: id, Deleted: true}, nil
}

func commentLine(c *models.TaskComment) string {
	stamp := c.CreatedAt.Local().Format("2006-01-02 15:04")
	text := c.Comment
	if c.Type != "" && c.Type != models.CommentNote {
		text = styles.SubtitleStyle.Italic(true).Render(text)
	}
	return fmt.Sprintf("  %s %s %s", styles.SubtitleStyle.Render("#"+c.ID.String()), styles.SubtitleStyle.Render(stamp), text)
}
