package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/agenthub-io/agenthub/conversation"
)

var userBubbleStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorIris).
	Padding(0, 1)

var userBubbleFailedStyle = userBubbleStyle.
	BorderForeground(ColorLove)

var agentBubbleStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorOverlay).
	Padding(0, 1)

var bubbleAuthorStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

var failedMarkStyle = lipgloss.NewStyle().Foreground(ColorLove)

var issueCardStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(ColorPine).
	Padding(0, 1)

var issueKeyStyle = lipgloss.NewStyle().Foreground(ColorPine).Bold(true)

var issueStatusStyle = lipgloss.NewStyle().Foreground(ColorGold)

var chartMarkerStyle = lipgloss.NewStyle().
	Foreground(ColorFoam).
	Border(lipgloss.NormalBorder()).
	BorderForeground(ColorOverlay).
	Padding(0, 1)

var quickActionStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorOverlay).
	Foreground(ColorSubtle).
	Padding(0, 1)

var chatInputStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorIris).
	Padding(0, 1)

var chatDisabledStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorOverlay).
	Foreground(ColorMuted).
	Padding(0, 1)

var typingStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)

var greetingStyle = lipgloss.NewStyle().Foreground(ColorSubtle).Italic(true)

const greetingText = "Hi, I'm your scrum master. Pick a quick action below or ask me anything about your sprint."

// ChatPane renders the conversation and owns the message input.
type ChatPane struct {
	driver *conversation.Driver
	input  textinput.Model

	scroll        int // lines scrolled up from the bottom
	width, height int
}

// NewChatPane creates the pane bound to a conversation driver.
func NewChatPane(driver *conversation.Driver) *ChatPane {
	ti := textinput.New()
	ti.Placeholder = "Ask the scrum master…"
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Focus()

	return &ChatPane{driver: driver, input: ti}
}

// SetSize sets the available area.
func (c *ChatPane) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.input.Width = width - 10
}

// Value returns the current input text.
func (c *ChatPane) Value() string {
	return strings.TrimSpace(c.input.Value())
}

// Reset clears the input after a send.
func (c *ChatPane) Reset() {
	c.input.Reset()
}

// SetValue pre-fills the input, used by quick actions.
func (c *ChatPane) SetValue(s string) {
	c.input.SetValue(s)
}

// HandleKey forwards a key press to the input field.
func (c *ChatPane) HandleKey(msg tea.KeyMsg) {
	c.input, _ = c.input.Update(msg)
}

// ScrollUp moves the viewport toward older messages.
func (c *ChatPane) ScrollUp() {
	c.scroll++
}

// ScrollDown moves the viewport toward the latest message.
func (c *ChatPane) ScrollDown() {
	if c.scroll > 0 {
		c.scroll--
	}
}

// ScrollToBottom snaps back to the newest message.
func (c *ChatPane) ScrollToBottom() {
	c.scroll = 0
}

func (c *ChatPane) bubbleWidth() int {
	w := c.width * 2 / 3
	if w < 30 {
		w = 30
	}
	return w
}

func (c *ChatPane) renderMessage(m conversation.Message) string {
	w := c.bubbleWidth()

	switch m.Role {
	case conversation.RoleUser:
		style := userBubbleStyle
		author := bubbleAuthorStyle.Render("you")
		if m.Failed {
			style = userBubbleFailedStyle
			author += " " + failedMarkStyle.Render("✗ not delivered")
		}
		bubble := author + "\n" + style.Width(w).Render(m.Content)
		return lipgloss.PlaceHorizontal(c.width, lipgloss.Right, bubble)

	default:
		parts := []string{agentBubbleStyle.Width(w).Render(m.Content)}
		if m.Metadata != nil {
			if m.Metadata.IssueCard != nil {
				card := m.Metadata.IssueCard
				parts = append(parts, issueCardStyle.Render(
					issueKeyStyle.Render(card.Key)+"  "+card.Summary+"\n"+
						issueStatusStyle.Render(card.Status)))
			}
			if m.Metadata.HasChart {
				parts = append(parts, chartMarkerStyle.Render("▁▂▃▅▆ sprint chart available in the web app"))
			}
		}
		bubble := bubbleAuthorStyle.Render("scrum master") + "\n" +
			lipgloss.JoinVertical(lipgloss.Left, parts...)
		return lipgloss.PlaceHorizontal(c.width, lipgloss.Left, bubble)
	}
}

func (c *ChatPane) renderQuickActions() string {
	chips := make([]string, 0, 4)
	for i, action := range conversation.QuickActions() {
		chips = append(chips, zone.Mark(QuickActionZoneID(i), quickActionStyle.Render(action)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (c *ChatPane) renderInput(canSend bool) string {
	if !canSend {
		return chatDisabledStyle.Width(c.width - 4).
			Render("Pick a project and board in Integrations to start chatting")
	}
	return zone.Mark(ZoneChatInput, chatInputStyle.Width(c.width-4).Render(c.input.View()))
}

// String renders the transcript, quick actions and input, clipping the
// transcript to the available height.
func (c *ChatPane) String() string {
	canSend := c.driver.CanSend()

	var transcript []string
	for _, m := range c.driver.Transcript().Messages() {
		transcript = append(transcript, c.renderMessage(m))
	}
	if len(transcript) == 0 && canSend {
		transcript = append(transcript, greetingStyle.Render(greetingText))
	}
	if c.driver.Pending() {
		transcript = append(transcript, typingStyle.Render("scrum master is thinking…"))
	}
	body := strings.Join(transcript, "\n")

	footer := c.renderQuickActions() + "\n" + c.renderInput(canSend)
	footerHeight := lipgloss.Height(footer)

	bodyHeight := c.height - footerHeight - 1
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	body = clipBottom(body, bodyHeight, c.scroll)

	return body + "\n" + footer
}

// clipBottom keeps the last `height` lines, offset upward by scroll.
func clipBottom(s string, height, scroll int) string {
	lines := strings.Split(s, "\n")
	end := len(lines) - scroll
	if end > len(lines) {
		end = len(lines)
	}
	start := end - height
	if start < 0 {
		start = 0
		end = min(height, len(lines))
	}
	if end < start {
		end = start
	}
	return strings.Join(lines[start:end], "\n")
}
