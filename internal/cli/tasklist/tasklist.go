// Package tasklist holds the lista list commands
package tasklist

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli/styles"
	"github.com/thenoetrevino/lista/internal/models"
)

// ListCmd returns the list parent command
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"lists"},
		Short:   "Manage the task lists of a space",
	}

	cmd.AddCommand(LsCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

func renderList(result any) error {
	l := result.(*models.TaskList)
	fmt.Printf("%s %s\n", styles.TitleStyle.Render(l.Name), styles.SubtitleStyle.Render("#"+l.ID.String()))
	fmt.Printf("%s %s\n", styles.LabelStyle.Render("Space:"), l.SpaceID)
	group := "(ungrouped)"
	if l.GroupID != nil {
		group = l.GroupID.String()
	}
	fmt.Printf("%s %s\n", styles.LabelStyle.Render("Group:"), group)

	schema := l.Schema()
	statuses := make([]string, 0, len(schema))
	for _, key := range schema.Keys() {
		statuses = append(statuses, key+"="+schema[key])
	}
	fmt.Printf("%s %s\n", styles.LabelStyle.Render("Statuses:"), strings.Join(statuses, ", "))
	if l.IsArchived {
		fmt.Println(styles.WarningStyle.Render("ARCHIVED"))
	}
	return nil
}
