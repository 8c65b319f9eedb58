package styles

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Renderers are expensive to build, so they are cached by wrap width
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func markdownRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderMarkdown renders a task description for the terminal. Rendering
// failures fall back to the raw text; an empty description renders a placeholder.
func RenderMarkdown(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return SubtitleStyle.Italic(true).Render("No description")
	}
	if width <= 0 {
		width = 80
	}
	renderer, err := markdownRenderer(width)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}
