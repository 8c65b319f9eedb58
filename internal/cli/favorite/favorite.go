// Package favorite holds the lista favorite commands
package favorite

import (
	"github.com/spf13/cobra"
)

// FavoriteCmd returns the favorite parent command
func FavoriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorite",
		Aliases: []string{"fav"},
		Short:   "Pin spaces and lists to a workspace's favorites",
		Long: `Favorites are shortcuts kept on this machine, per workspace. They are
shown at the top of 'lista tree' and in the browser sidebar.`,
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(AddCmd())
	cmd.AddCommand(RemoveCmd())

	return cmd
}
