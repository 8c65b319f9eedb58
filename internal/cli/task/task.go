// Package task holds the lista task commands
package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli/styles"
	"github.com/thenoetrevino/lista/internal/models"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks, their comments and attachments",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(CommentCmd())
	cmd.AddCommand(CommentsCmd())
	cmd.AddCommand(DeleteCommentCmd())
	cmd.AddCommand(AttachCmd())
	cmd.AddCommand(AttachmentsCmd())
	cmd.AddCommand(DetachCmd())

	return cmd
}

// taskLine renders a task as one line of a listing
func taskLine(t *models.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s", t.ID, styles.RenderPriority(t.Priority), t.Title)
	if t.DueDate != nil && !t.DueDate.IsZero() {
		b.WriteString(styles.SubtitleStyle.Render("  due " + t.DueDate.Key()))
	}
	if name := t.AssigneeName(); name != "" {
		b.WriteString(styles.SubtitleStyle.Render("  @" + name))
	}
	return b.String()
}
