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
	"golang.org/x/sync/errgroup"
)

// Detail is a task with its comments and attachments
type Detail struct {
	*models.Task
	ListName    string                   `json:"list_name,omitempty"`
	Comments    []*models.TaskComment    `json:"comments"`
	Attachments []*models.TaskAttachment `json:"attachments"`
}

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show task details",
		Long:  "Display a task with its rendered description, comments and attachments.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Command(handler.HandlerFunc(runShow), renderDetail),
	}

	cmd.Flags().String("id", "", "Task ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Parser().ParseID(args.Args, "id", "Usage: lista task show <id>")
	if err != nil {
		return nil, err
	}

	t, err := c.App.TaskService.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &Detail{Task: t}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		comments, err := c.App.TaskService.ListComments(gctx, id)
		detail.Comments = comments
		return err
	})
	g.Go(func() error {
		attachments, err := c.App.TaskService.ListAttachments(gctx, id)
		detail.Attachments = attachments
		return err
	})
	g.Go(func() error {
		// the list name is decoration only
		if l, err := c.App.ListService.Get(gctx, t.ListID); err == nil {
			detail.ListName = l.Name
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

func renderDetail(result any) error {
	d := result.(*Detail)
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(d.Title))
	content.WriteString(" " + styles.SubtitleStyle.Render("#"+d.ID.String()))
	content.WriteString("\n\n")

	list := d.ListID.String()
	if d.ListName != "" {
		list = d.ListName
	}
	fmt.Fprintf(&content, "%s %s  %s %s  %s %s\n",
		styles.LabelStyle.Render("Status:"), styles.RenderStatus(d.Status),
		styles.LabelStyle.Render("Priority:"), styles.RenderPriority(d.Priority),
		styles.LabelStyle.Render("List:"), styles.ValueStyle.Render(list))

	due := "-"
	if d.DueDate != nil && !d.DueDate.IsZero() {
		due = d.DueDate.Key()
	}
	assignee := d.AssigneeName()
	if assignee == "" {
		assignee = "Unassigned"
	}
	fmt.Fprintf(&content, "%s %s  %s %s\n",
		styles.LabelStyle.Render("Due:"), styles.ValueStyle.Render(due),
		styles.LabelStyle.Render("Assignee:"), styles.ValueStyle.Render(assignee))

	content.WriteString(styles.SectionStyle.Render("Description"))
	content.WriteString("\n")
	content.WriteString(styles.RenderMarkdown(d.DescriptionText(), 72))
	content.WriteString("\n")

	if len(d.Comments) > 0 {
		content.WriteString(styles.SectionStyle.Render(fmt.Sprintf("Comments (%d)", len(d.Comments))))
		content.WriteString("\n")
		for _, c := range d.Comments {
			content.WriteString(commentLine(c) + "\n")
		}
	}

	if len(d.Attachments) > 0 {
		content.WriteString(styles.SectionStyle.Render(fmt.Sprintf("Attachments (%d)", len(d.Attachments))))
		content.WriteString("\n")
		for _, a := range d.Attachments {
			content.WriteString(attachmentLine(a) + "\n")
		}
	}

	fmt.Println(styles.RenderCard(strings.TrimRight(content.String(), "\n")))
	return nil
}
