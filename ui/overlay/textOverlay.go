package overlay

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agenthub-io/agenthub/ui"
)

// TextOverlay displays scrollless informational text, used for help screens.
type TextOverlay struct {
	content string
	width   int
}

// NewTextOverlay creates a text overlay with the given content.
func NewTextOverlay(content string) *TextOverlay {
	return &TextOverlay{content: content, width: 60}
}

// SetWidth sets the overlay width.
func (t *TextOverlay) SetWidth(width int) {
	if width >= 40 {
		t.width = width
	}
}

// Render returns the styled overlay string.
func (t *TextOverlay) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(ui.ColorIris).
		Padding(1, 2).
		Width(t.width)

	return style.Render(t.content)
}
