// Package group holds the lista group (folder) commands
package group

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli/styles"
	"github.com/thenoetrevino/lista/internal/models"
)

// GroupCmd returns the group parent command
func GroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "group",
		Aliases: []string{"folder"},
		Short:   "Manage the groups that organize a space's lists",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

func renderGroup(result any) error {
	g := result.(*models.Group)
	name := styles.TitleStyle.Render(g.Name)
	if g.Color != "" {
		name = styles.BoldColoredText(g.Name, g.Color)
	}
	fmt.Printf("%s %s\n", name, styles.SubtitleStyle.Render("#"+g.ID.String()))
	fmt.Printf("%s %s\n", styles.LabelStyle.Render("Space:"), g.SpaceID)
	return nil
}
