package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agenthub-io/agenthub/ui"
)

var headerStyle = lipgloss.NewStyle().Foreground(ui.ColorRose).Bold(true)
var keyStyle = lipgloss.NewStyle().Foreground(ui.ColorSubtle)
var descStyle = lipgloss.NewStyle().Foreground(ui.ColorMuted)

func helpContent() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		ui.GradientText("agenthub", ui.GradientStart, ui.GradientEnd),
		"",
		descStyle.Render("terminal client for the agent hub. sign in, wire the scrum"),
		descStyle.Render("master to your project tools, then chat about your sprints."),
		"",
		headerStyle.Render("directory:"),
		keyStyle.Render("↑↓←→/hjkl")+descStyle.Render("   - move between agent cards"),
		keyStyle.Render("↵")+descStyle.Render("           - open the selected agent"),
		keyStyle.Render("L")+descStyle.Render("           - sign out"),
		"",
		headerStyle.Render("integrations:"),
		keyStyle.Render("tab")+descStyle.Render("         - cycle categories / providers / pickers"),
		keyStyle.Render("↵")+descStyle.Render("           - select the focused item"),
		keyStyle.Render("c")+descStyle.Render("           - enter credentials and connect"),
		keyStyle.Render("x")+descStyle.Render("           - disconnect to edit credentials"),
		keyStyle.Render("s")+descStyle.Render("           - save the configuration"),
		keyStyle.Render("r")+descStyle.Render("           - re-check the connection"),
		keyStyle.Render("w")+descStyle.Render("           - jump to the chat"),
		"",
		headerStyle.Render("chat:"),
		keyStyle.Render("↵")+descStyle.Render("           - send"),
		keyStyle.Render("1-4")+descStyle.Render("         - prefill a quick action (empty input)"),
		keyStyle.Render("↑↓")+descStyle.Render("          - scroll the transcript"),
		keyStyle.Render("ctrl+l")+descStyle.Render("      - clear the conversation"),
		keyStyle.Render("esc")+descStyle.Render("         - back to integrations"),
		"",
		descStyle.Render("press any key to close"),
	)
}
