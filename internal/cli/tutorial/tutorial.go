// Package tutorial prints the built-in quick start guide
package tutorial

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lista/internal/cli/styles"
)

//go:embed tutorial.md
var tutorialContent string

// TutorialCmd returns the tutorial command
func TutorialCmd() *cobra.Command {
	var raw bool
	var width int
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Show the quick start guide",
		Long: `Show a walkthrough of the lista workflow: signing in, building the
workspace hierarchy, working with tasks and navigating.

Use --raw to print the markdown source, e.g. for piping into other tools.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), render(raw, width))
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without rendering")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for rendered output")
	return cmd
}

func render(raw bool, width int) string {
	if raw {
		return tutorialContent
	}
	return styles.RenderMarkdown(tutorialContent, width)
}
