package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyEnter
	KeyQuit
	KeyHelp
	KeyBack // Back navigates one level up without losing draft state.

	KeyTab        // Tab cycles the focus ring within a screen.
	KeySubmitForm // SubmitForm is a special keybinding while a form is active.

	KeyArrowLeft
	KeyArrowRight

	KeyDirectory  // Jump to the agent directory.
	KeyWorkspace  // Jump to the agent workspace (configured agents only).
	KeyLogout     // Open the logout confirmation.
	KeyRefresh    // Re-check the management tool connection.
	KeyClearChat  // Discard the conversation.
	KeyEditConfig // Re-open the integration configurator.

	// Integration panel keybindings.
	KeyConnect    // Submit credentials for the focused category.
	KeyDisconnect // Drop the focused category's connection for editing.
	KeySaveConfig // Persist the full configuration.

	// Quick action keybindings (number row).
	KeyQuickOne
	KeyQuickTwo
	KeyQuickThree
	KeyQuickFour
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":     KeyUp,
	"k":      KeyUp,
	"down":   KeyDown,
	"j":      KeyDown,
	"enter":  KeyEnter,
	"q":      KeyQuit,
	"?":      KeyHelp,
	"esc":    KeyBack,
	"tab":    KeyTab,
	"left":   KeyArrowLeft,
	"h":      KeyArrowLeft,
	"right":  KeyArrowRight,
	"l":      KeyArrowRight,
	"d":      KeyDirectory,
	"w":      KeyWorkspace,
	"L":      KeyLogout,
	"r":      KeyRefresh,
	"ctrl+l": KeyClearChat,
	"e":      KeyEditConfig,
	"c":      KeyConnect,
	"x":      KeyDisconnect,
	"s":      KeySaveConfig,
	"1":      KeyQuickOne,
	"2":      KeyQuickTwo,
	"3":      KeyQuickThree,
	"4":      KeyQuickFour,
}

// GlobalkeyBindings is a global, immutable map of KeyName tot keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "select"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyBack: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	KeyTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	KeyArrowLeft: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	KeyArrowRight: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	KeyDirectory: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "directory"),
	),
	KeyWorkspace: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "workspace"),
	),
	KeyLogout: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "logout"),
	),
	KeyRefresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh status"),
	),
	KeyClearChat: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear chat"),
	),
	KeyEditConfig: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "integrations"),
	),
	KeyConnect: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "connect"),
	),
	KeyDisconnect: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "edit credentials"),
	),
	KeySaveConfig: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save"),
	),
	KeyQuickOne: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1-4", "quick action"),
	),
	KeyQuickTwo: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "quick action"),
	),
	KeyQuickThree: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "quick action"),
	),
	KeyQuickFour: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "quick action"),
	),

	// -- Special keybindings --

	KeySubmitForm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
}
