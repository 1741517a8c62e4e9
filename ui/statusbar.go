package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConnBadge represents the management tool's reachability as shown in the
// status bar.
type ConnBadge int

const (
	ConnUnknown ConnBadge = iota
	ConnChecking
	ConnOnline
	ConnOffline
)

// StatusBarData holds the contextual information displayed in the status bar.
type StatusBarData struct {
	UserEmail  string
	AgentName  string // empty = directory view, no agent open
	ProjectKey string
	BoardName  string
	Badge      ConnBadge
}

// StatusBar is the top status bar component.
type StatusBar struct {
	width int
	data  StatusBarData
}

// NewStatusBar creates a new StatusBar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetSize sets the terminal width for the status bar.
func (s *StatusBar) SetSize(width int) {
	s.width = width
}

// SetData updates the status bar content.
func (s *StatusBar) SetData(data StatusBarData) {
	s.data = data
}

var statusBarStyle = lipgloss.NewStyle().
	Background(ColorSurface).
	Foreground(ColorText).
	Padding(0, 1)

var statusBarAppNameStyle = lipgloss.NewStyle().
	Foreground(ColorIris).
	Background(ColorSurface).
	Bold(true)

var statusBarSepStyle = lipgloss.NewStyle().
	Foreground(ColorOverlay).
	Background(ColorSurface)

var statusBarUserStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle).
	Background(ColorSurface)

var statusBarContextStyle = lipgloss.NewStyle().
	Foreground(ColorText).
	Background(ColorSurface)

func badgeStr(b ConnBadge) string {
	var fg lipgloss.TerminalColor
	var label string
	switch b {
	case ConnOnline:
		fg, label = ColorFoam, "● online"
	case ConnOffline:
		fg, label = ColorLove, "● offline"
	case ConnChecking:
		fg, label = ColorGold, "● checking"
	default:
		fg, label = ColorMuted, "○ not connected"
	}
	return lipgloss.NewStyle().Foreground(fg).Background(ColorSurface).Render(label)
}

const statusBarSep = " │ "

func (s *StatusBar) String() string {
	if s.width < 10 {
		return ""
	}

	parts := make([]string, 0, 5)
	parts = append(parts, statusBarAppNameStyle.Render("agenthub"))

	if s.data.UserEmail != "" {
		parts = append(parts, statusBarUserStyle.Render(s.data.UserEmail))
	}

	if s.data.AgentName != "" {
		parts = append(parts, statusBarContextStyle.Render(s.data.AgentName))
	}

	if s.data.ProjectKey != "" {
		ctx := s.data.ProjectKey
		if s.data.BoardName != "" {
			ctx += " / " + s.data.BoardName
		}
		parts = append(parts, statusBarContextStyle.Render(ctx))
	}

	if s.data.UserEmail != "" {
		parts = append(parts, badgeStr(s.data.Badge))
	}

	sep := statusBarSepStyle.Render(statusBarSep)
	content := strings.Join(parts, sep)

	return statusBarStyle.Width(s.width).Render(content)
}
