package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agenthub-io/agenthub/keys"
)

var keyStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

var descStyle = lipgloss.NewStyle().Foreground(ColorMuted)

var sepStyle = lipgloss.NewStyle().Foreground(ColorOverlay)

var actionGroupStyle = lipgloss.NewStyle().Foreground(ColorRose)

var separator = " • "
var verticalSeparator = " │ "

var menuStyle = lipgloss.NewStyle().
	Foreground(ColorFoam)

// MenuState represents different states the menu can be in
type MenuState int

const (
	StateLogin MenuState = iota
	StateDirectory
	StateIntegrations
	StateChat
	StateChatDisabled
	StateForm
	StateConfirm
)

type Menu struct {
	options       []keys.KeyName
	height, width int
	state         MenuState

	// saveReady controls whether the save keybind is surfaced on the
	// integrations screen.
	saveReady bool

	// keyDown is the key which is pressed. The default is -1.
	keyDown keys.KeyName

	// systemGroupSize is the number of items in the trailing system group
	// (used for separator placement).
	systemGroupSize int
}

var loginMenuOptions = []keys.KeyName{keys.KeySubmitForm, keys.KeyQuit}
var directoryMenuOptions = []keys.KeyName{keys.KeyUp, keys.KeyEnter, keys.KeyLogout, keys.KeyHelp, keys.KeyQuit}
var formMenuOptions = []keys.KeyName{keys.KeySubmitForm, keys.KeyBack}
var confirmMenuOptions = []keys.KeyName{keys.KeySubmitForm, keys.KeyBack}

func NewMenu() *Menu {
	return &Menu{
		options: loginMenuOptions,
		state:   StateLogin,
		keyDown: -1,
	}
}

func (m *Menu) Keydown(name keys.KeyName) {
	m.keyDown = name
}

func (m *Menu) ClearKeydown() {
	m.keyDown = -1
}

// SetState updates the menu state and options accordingly
func (m *Menu) SetState(state MenuState) {
	m.state = state
	m.updateOptions()
}

// SetSaveReady toggles the save keybind on the integrations screen.
func (m *Menu) SetSaveReady(ready bool) {
	m.saveReady = ready
	m.updateOptions()
}

// updateOptions updates the menu options based on the current state
func (m *Menu) updateOptions() {
	switch m.state {
	case StateLogin:
		m.options = loginMenuOptions
		m.systemGroupSize = 1
	case StateDirectory:
		m.options = directoryMenuOptions
		m.systemGroupSize = 2
	case StateIntegrations:
		m.addIntegrationsOptions()
	case StateChat:
		m.addChatOptions(true)
	case StateChatDisabled:
		m.addChatOptions(false)
	case StateForm:
		m.options = formMenuOptions
		m.systemGroupSize = 0
	case StateConfirm:
		m.options = confirmMenuOptions
		m.systemGroupSize = 0
	}
}

func (m *Menu) addIntegrationsOptions() {
	options := []keys.KeyName{keys.KeyUp, keys.KeyEnter, keys.KeyConnect, keys.KeyDisconnect}
	if m.saveReady {
		options = append(options, keys.KeySaveConfig)
	}
	systemGroup := []keys.KeyName{keys.KeyBack, keys.KeyHelp, keys.KeyQuit}

	options = append(options, systemGroup...)
	m.options = options
	m.systemGroupSize = len(systemGroup)
}

func (m *Menu) addChatOptions(canSend bool) {
	var options []keys.KeyName
	if canSend {
		options = []keys.KeyName{keys.KeySubmitForm, keys.KeyQuickOne, keys.KeyClearChat}
	} else {
		// Input is disabled until a project and board are picked.
		options = []keys.KeyName{keys.KeyEditConfig}
	}
	systemGroup := []keys.KeyName{keys.KeyBack, keys.KeyHelp, keys.KeyQuit}

	options = append(options, systemGroup...)
	m.options = options
	m.systemGroupSize = len(systemGroup)
}

// SetSize sets the width of the window. The menu will be centered horizontally within this width.
func (m *Menu) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Menu) String() string {
	var s strings.Builder

	sysSize := m.systemGroupSize
	actionEnd := len(m.options) - sysSize

	for i, k := range m.options {
		binding := keys.GlobalkeyBindings[k]
		help := binding.Help()
		helpKey := help.Key
		helpDesc := help.Desc

		var (
			localActionStyle = actionGroupStyle
			localKeyStyle    = keyStyle
			localDescStyle   = descStyle
		)
		if m.keyDown == k {
			localActionStyle = localActionStyle.Underline(true)
			localKeyStyle = localKeyStyle.Underline(true)
			localDescStyle = localDescStyle.Underline(true)
		}

		if i < actionEnd {
			s.WriteString(localActionStyle.Render(helpKey + " " + helpDesc))
		} else {
			s.WriteString(localKeyStyle.Render(helpKey))
			s.WriteString(descStyle.Render(" "))
			s.WriteString(localDescStyle.Render(helpDesc))
		}

		if i != len(m.options)-1 {
			if i == actionEnd-1 && sysSize > 0 {
				s.WriteString(sepStyle.Render(verticalSeparator))
			} else {
				s.WriteString(sepStyle.Render(separator))
			}
		}
	}

	centeredMenuText := menuStyle.Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, centeredMenuText)
}
