package auth

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
)

// LogoutCmd returns the auth logout subcommand
func LogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the stored cookies",
		Args:  cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runLogout), func(any) error {
			fmt.Println("✓ Logged out")
			return nil
		}),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runLogout(ctx context.Context, c *cli.CLI, _ *handler.Arguments) (any, error) {
	// restore the session first so a stale cookie jar is still revoked server side
	c.App.AuthService.Initialize(ctx)
	if err := c.App.AuthService.Logout(ctx); err != nil {
		return nil, err
	}
	return map[string]bool{"logged_out": true}, nil
}
