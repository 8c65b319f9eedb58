// Package space holds the lista space commands
package space

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli/styles"
	"github.com/thenoetrevino/lista/internal/models"
)

// SpaceCmd returns the space parent command
func SpaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "space",
		Short: "Manage the spaces of a workspace",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

func renderSpace(result any) error {
	sp := result.(*models.Space)
	name := styles.TitleStyle.Render(sp.Name)
	if sp.Color != "" {
		name = styles.BoldColoredText(sp.Name, sp.Color)
	}
	fmt.Printf("%s %s\n", name, styles.SubtitleStyle.Render("#"+sp.ID.String()))
	fmt.Printf("%s %s\n", styles.LabelStyle.Render("Visibility:"), sp.Visibility)
	if sp.IsArchived {
		fmt.Println(styles.WarningStyle.Render("ARCHIVED"))
	}
	return nil
}
