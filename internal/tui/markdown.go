package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// normalizeReply converts literal "\n" escape sequences left in model output
// into real newlines so the Markdown renderer sees proper line breaks.
func normalizeReply(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

// renderMarkdown renders bot reply text as terminal Markdown, falling back
// to the raw text when rendering fails.
func renderMarkdown(content string, width int) string {
	if width < 20 {
		width = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}
