package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/thenoetrevino/lista/internal/config/colors"
	"github.com/thenoetrevino/lista/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Status:", "Priority:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "Description", "Comments"

	// Tree styles
	CurrentStyle  lipgloss.Style // The node matching the current path
	FavoriteStyle lipgloss.Style

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style

	scheme colors.ColorScheme
)

func init() {
	Init(*colors.Default())
}

// Init initializes all CLI styles with the given color scheme
func Init(c colors.ColorScheme) {
	scheme = c

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Accent)).
		Bold(true).
		MarginTop(1)

	CurrentStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.SelectedBorder))

	FavoriteStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.WarningFg))

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.InfoFg)).
		Background(lipgloss.Color(c.InfoBg)).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.ErrorFg)).
		Background(lipgloss.Color(c.ErrorBg)).
		Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.WarningFg)).
		Background(lipgloss.Color(c.WarningBg)).
		Padding(0, 1)
}

// Scheme returns the color scheme the styles were built from
func Scheme() colors.ColorScheme {
	return scheme
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// BoldColoredText renders bold text with a hex color
func BoldColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// RenderStatus renders a status key as its colored label
func RenderStatus(status string) string {
	return BoldColoredText(models.StatusLabel(status), scheme.StatusColor(status))
}

// RenderPriority renders a priority as "[Label]"; empty priorities render as "-"
func RenderPriority(p models.Priority) string {
	if p == "" {
		return SubtitleStyle.Render("-")
	}
	return ColoredText("["+p.Label()+"]", scheme.PriorityColor(string(p)))
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
