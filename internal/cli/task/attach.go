package task

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/cli/styles"
	"github.com/thenoetrevino/lista/internal/models"
)

// AttachCmd returns the task attach subcommand
func AttachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attach [id]",
		Short: "Upload a file to a task",
		Long: `Upload a file as a task attachment.

Examples:
  lista task attach 42 --file ./screenshot.png
  lista task attach 42 --file ./log.txt --name crash.log`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runAttach), func(result any) error {
			a := result.(*models.TaskAttachment)
			fmt.Printf("✓ Attached %s to task %s (ID: %s)\n", a.FileName, a.TaskID, a.ID)
			return nil
		}),
	}

	cmd.Flags().String("id", "", "Task ID (can also be provided as positional argument)")
	cmd.Flags().String("file", "", "Path of the file to upload (required)")
	cmd.Flags().String("name", "", "File name to store (defaults to the file's base name)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runAttach(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	p := args.Parser()
	id, err := p.ParseID(args.Args, "id", "Usage: lista task attach <id> --file <path>")
	if err != nil {
		return nil, err
	}
	path, err := p.ParseString("file")
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, args.Formatter.DataError(err)
	}
	defer f.Close()

	name := args.GetString("name", "")
	if name == "" {
		name = filepath.Base(path)
	}
	return c.App.TaskService.UploadAttachment(ctx, id, name, f)
}

// AttachmentsCmd returns the task attachments subcommand
func AttachmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attachments [id]",
		Short: "List the attachments of a task",
		Args:  cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runAttachments), func(result any) error {
			attachments := result.([]*models.TaskAttachment)
			if len(attachments) == 0 {
				fmt.Println("No attachments")
				return nil
			}
			for _, a := range attachments {
				fmt.Println(attachmentLine(a))
			}
			return nil
		}),
	}

	cmd.Flags().String("id", "", "Task ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runAttachments(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Parser().ParseID(args.Args, "id", "Usage: lista task attachments <id>")
	if err != nil {
		return nil, err
	}
	return c.App.TaskService.ListAttachments(ctx, id)
}

// DetachCmd returns the task detach subcommand
func DetachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detach [attachment-id]",
		Short: "Delete an attachment",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Command(handler.HandlerFunc(runDetach), cli.RenderDeleted("Attachment")),
	}

	cmd.Flags().String("id", "", "Attachment ID (can also be provided as positional argument)")
	cmd.Flags().String("task", "", "Task ID the attachment belongs to (required)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDetach(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	p := args.Parser()
	id, err := p.ParseID(args.Args, "id", "Usage: lista task detach <attachment-id> --task <task-id>")
	if err != nil {
		return nil, err
	}
	taskID, err := p.ParseRequiredID("task")
	if err != nil {
		return nil, err
	}
	if err := c.App.TaskService.DeleteAttachment(ctx, taskID, id); err != nil {
		return nil, err
	}
	return &cli.Deleted{ID: id, Deleted: true}, nil
}

func attachmentLine(a *models.TaskAttachment) string {
	return fmt.Sprintf("  %s %s %s", styles.SubtitleStyle.Render("#"+a.ID.String()), a.FileName,
		styles.SubtitleStyle.Render("("+humanize.Bytes(uint64(a.FileSize))+")"))
}
