// Package auth holds the session commands: lista auth login|register|logout|whoami
package auth

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli/styles"
	authservice "github.com/thenoetrevino/lista/internal/services/auth"
)

// AuthCmd returns the auth parent command
func AuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in, register and manage the current session",
	}

	cmd.AddCommand(LoginCmd())
	cmd.AddCommand(RegisterCmd())
	cmd.AddCommand(LogoutCmd())
	cmd.AddCommand(WhoamiCmd())

	return cmd
}

func renderResult(verb string) func(any) error {
	return func(result any) error {
		res := result.(*authservice.Result)
		fmt.Printf("✓ %s as %s (%s)\n", verb, styles.TitleStyle.Render(res.User.Name), res.User.Email)
		fmt.Printf("  Landing: %s\n", res.Landing)
		return nil
	}
}
