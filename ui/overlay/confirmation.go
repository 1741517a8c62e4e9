package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agenthub-io/agenthub/ui"
)

// ConfirmationOverlay is a modal yes/no prompt.
type ConfirmationOverlay struct {
	message   string
	confirmed bool
	canceled  bool
	width     int

	// OnConfirm runs when the user confirms, before the overlay closes.
	OnConfirm func()
	// OnCancel runs when the user declines or escapes.
	OnCancel func()
}

// NewConfirmationOverlay creates a confirmation modal with the given message.
func NewConfirmationOverlay(message string) *ConfirmationOverlay {
	return &ConfirmationOverlay{
		message: message,
		width:   50,
	}
}

// SetWidth sets the overlay width.
func (c *ConfirmationOverlay) SetWidth(width int) {
	if width >= 30 {
		c.width = width
	}
}

// HandleKeyPress processes a key press and returns true when the overlay
// should close.
func (c *ConfirmationOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "y", "Y", "enter":
		c.confirmed = true
		if c.OnConfirm != nil {
			c.OnConfirm()
		}
		return true
	case "n", "N", "esc", "q":
		c.canceled = true
		if c.OnCancel != nil {
			c.OnCancel()
		}
		return true
	}
	return false
}

// IsConfirmed returns whether the user confirmed.
func (c *ConfirmationOverlay) IsConfirmed() bool {
	return c.confirmed
}

// Render returns the styled modal string.
func (c *ConfirmationOverlay) Render() string {
	messageStyle := lipgloss.NewStyle().
		Foreground(ui.ColorText).
		MarginBottom(1)

	hintStyle := lipgloss.NewStyle().
		Foreground(ui.ColorMuted)

	style := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(ui.ColorGold).
		Padding(1, 2).
		Width(c.width)

	content := messageStyle.Render(c.message) + "\n" +
		hintStyle.Render("y/enter confirm · n/esc cancel")

	return style.Render(content)
}
