package workspace

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/types"
)

// UseResult is the workspace context a shell should adopt
type UseResult struct {
	WorkspaceID types.WorkspaceID `json:"workspace_id,omitempty"`
	Name        string            `json:"name,omitempty"`
	Cleared     bool              `json:"cleared,omitempty"`
}

// GetID returns the selected workspace id
func (u *UseResult) GetID() string { return u.WorkspaceID.String() }

// UseCmd returns the workspace use subcommand
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use [workspace-id]",
		Short: "Set the workspace context for the current shell session",
		Long: `Set the current workspace using an environment variable.
This command outputs shell commands that should be evaluated:

  eval $(lista workspace use 3)          # Use workspace 3
  eval $(lista workspace use --clear)    # Clear workspace context

The ` + cli.WorkspaceEnv + ` environment variable is set in your current shell
session only. The --workspace flag on other commands takes precedence over
this environment variable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runUse), renderUse),
	}

	cmd.Flags().Bool("clear", false, "Clear the current workspace context")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUse(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	if args.GetBool("clear") {
		return &UseResult{Cleared: true}, nil
	}

	id, err := args.Parser().ParseID(args.Args, "id", "Usage: eval $(lista workspace use <workspace-id>)")
	if err != nil {
		return nil, err
	}
	ws, err := c.App.WorkspaceService.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UseResult{WorkspaceID: ws.ID, Name: ws.Name}, nil
}

func renderUse(result any) error {
	u := result.(*UseResult)
	if u.Cleared {
		fmt.Printf("unset %s\n", cli.WorkspaceEnv)
		fmt.Fprintf(os.Stderr, "Cleared workspace context\n")
		return nil
	}
	fmt.Printf("export %s=%s\n", cli.WorkspaceEnv, u.WorkspaceID)
	fmt.Fprintf(os.Stderr, "Now using workspace %s: %s\n", u.WorkspaceID, u.Name)
	return nil
}
