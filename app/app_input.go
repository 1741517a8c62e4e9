package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/agenthub-io/agenthub/conversation"
	"github.com/agenthub-io/agenthub/internal/integration"
	"github.com/agenthub-io/agenthub/keys"
	"github.com/agenthub-io/agenthub/ui"
	"github.com/agenthub-io/agenthub/ui/overlay"
)

func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, regardless of state.
	if msg.Type == tea.KeyCtrlC {
		return m.handleQuit()
	}

	switch m.state {
	case stateLogin:
		return m.handleLoginKeys(msg)
	case stateDirectory:
		return m.handleDirectoryKeys(msg)
	case stateIntegrations:
		return m.handleIntegrationsKeys(msg)
	case stateCredentials:
		return m.handleCredentialsKeys(msg)
	case stateChat:
		return m.handleChatKeys(msg)
	case stateHelp:
		// Any key closes the help screen.
		m.state = m.returnState
		m.restoreMenuState()
		return m, nil
	case stateConfirmLogout, stateConfirmClear:
		if m.confirmationOverlay != nil && m.confirmationOverlay.HandleKeyPress(msg) {
			m.confirmationOverlay = nil
			if m.state == stateConfirmLogout || m.state == stateConfirmClear {
				m.state = m.returnState
				m.restoreMenuState()
			}
		}
		return m, nil
	}
	return m, nil
}

// restoreMenuState re-syncs the bottom keybind rail after leaving an overlay.
func (m *home) restoreMenuState() {
	switch m.state {
	case stateLogin:
		m.menu.SetState(ui.StateLogin)
	case stateDirectory:
		m.menu.SetState(ui.StateDirectory)
	case stateIntegrations:
		m.menu.SetState(ui.StateIntegrations)
	case stateChat:
		if m.driver.CanSend() {
			m.menu.SetState(ui.StateChat)
		} else {
			m.menu.SetState(ui.StateChatDisabled)
		}
	}
}

func (m *home) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loginForm.HandleKeyPress(msg) {
		m.statusToastID = m.toastManager.Loading("Signing in…")
		return m, tea.Batch(
			m.loginCmd(m.loginForm.Email(), m.loginForm.Password(), m.loginForm.Remember()),
			m.toastTickCmd(),
		)
	}
	return m, nil
}

func (m *home) handleDirectoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}

	switch name {
	case keys.KeyUp:
		m.directory.MoveUp()
	case keys.KeyDown:
		m.directory.MoveDown()
	case keys.KeyArrowLeft:
		m.directory.MoveLeft()
	case keys.KeyArrowRight:
		m.directory.MoveRight()
	case keys.KeyEnter:
		return m.openSelectedAgent()
	case keys.KeyLogout:
		return m.confirmLogout()
	case keys.KeyHelp:
		return m.showHelp()
	case keys.KeyQuit:
		return m.handleQuit()
	}
	return m, nil
}

// openSelectedAgent enters the selected agent's workspace. Agents without a
// backend stay inert with a hint toast. A configured scrum master opens on
// the chat; an unconfigured one opens on the integrations panel.
func (m *home) openSelectedAgent() (tea.Model, tea.Cmd) {
	agent := m.directory.Selected()
	if !agent.Available {
		m.toastManager.Info(agent.Name + " is coming soon")
		return m, m.toastTickCmd()
	}

	m.syncChatContext()
	if m.driver.CanSend() {
		m.state = stateChat
		m.menu.SetState(ui.StateChat)
	} else {
		m.state = stateIntegrations
		m.menu.SetState(ui.StateIntegrations)
	}
	return m, m.refreshStatusCmd()
}

func (m *home) confirmLogout() (tea.Model, tea.Cmd) {
	m.returnState = m.state
	m.state = stateConfirmLogout
	m.menu.SetState(ui.StateConfirm)
	m.confirmationOverlay = overlay.NewConfirmationOverlay("Sign out? Your saved configuration stays on the server.")
	m.confirmationOverlay.OnConfirm = func() {
		m.logout()
	}
	return m, nil
}

// logout is the deliberate variant of forceLogout: same teardown, friendlier
// messaging.
func (m *home) logout() {
	m.session.Logout()
	m.configurator = integration.New(m.client)
	m.integrations = ui.NewIntegrationsPane(m.configurator)
	m.integrations.SetSize(m.termWidth, m.contentHeight)
	m.driver.Clear()
	m.driver.SetContext(conversation.Context{})
	m.chat.Reset()

	m.loginForm = overlay.NewLoginForm(52)
	m.state = stateLogin
	m.returnState = stateLogin
	m.menu.SetState(ui.StateLogin)
	m.menu.SetSaveReady(false)
}

func (m *home) handleIntegrationsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}

	switch name {
	case keys.KeyUp:
		m.integrations.MoveUp()
	case keys.KeyDown:
		m.integrations.MoveDown()
	case keys.KeyTab:
		m.cycleIntegrationsFocus()
	case keys.KeyEnter:
		return m.handleIntegrationsEnter()
	case keys.KeyConnect:
		return m.openCredentialsForm()
	case keys.KeyDisconnect:
		m.configurator.Edit(m.integrations.FocusedCategory())
		m.menu.SetSaveReady(m.configurator.IsReadyToSave())
	case keys.KeySaveConfig:
		if m.configurator.IsReadyToSave() {
			return m, m.saveConfigCmd()
		}
	case keys.KeyWorkspace:
		m.syncChatContext()
		m.state = stateChat
		m.restoreMenuState()
	case keys.KeyRefresh:
		return m, m.refreshStatusCmd()
	case keys.KeyBack, keys.KeyDirectory:
		m.leaveWorkspace()
	case keys.KeyHelp:
		return m.showHelp()
	case keys.KeyQuit:
		return m.handleQuit()
	}
	return m, nil
}

// leaveWorkspace returns to the agent directory. The transcript is display
// state only and does not survive leaving the workspace; the saved
// configuration stays on the server.
func (m *home) leaveWorkspace() {
	m.driver.Clear()
	m.chat.Reset()
	m.chat.ScrollToBottom()
	m.state = stateDirectory
	m.menu.SetState(ui.StateDirectory)
}

func (m *home) cycleIntegrationsFocus() {
	next := map[ui.IntegrationsFocus]ui.IntegrationsFocus{
		ui.FocusCategories: ui.FocusProviders,
		ui.FocusProviders:  ui.FocusProjects,
		ui.FocusProjects:   ui.FocusBoards,
		ui.FocusBoards:     ui.FocusCategories,
	}[m.integrations.Focus()]

	// The pickers only exist once the management tool is connected.
	if !m.configurator.Connection(integration.Management).Connected {
		if next == ui.FocusProjects || next == ui.FocusBoards {
			next = ui.FocusCategories
		}
	}
	m.integrations.SetFocus(next)
}

func (m *home) handleIntegrationsEnter() (tea.Model, tea.Cmd) {
	switch m.integrations.Focus() {
	case ui.FocusCategories:
		m.integrations.SetFocus(ui.FocusProviders)

	case ui.FocusProviders:
		c := m.integrations.FocusedCategory()
		m.configurator.SelectProvider(c, m.integrations.FocusedProvider().ID)
		m.menu.SetSaveReady(m.configurator.IsReadyToSave())
		m.syncChatContext()

	case ui.FocusProjects:
		if project, ok := m.integrations.FocusedProject(); ok {
			m.configurator.Selection().SelectProject(project)
			m.syncChatContext()
		}

	case ui.FocusBoards:
		if board, ok := m.integrations.FocusedBoard(); ok {
			if err := m.configurator.Selection().SelectBoard(board); err != nil {
				return m, m.handleError(err)
			}
			m.syncChatContext()
			m.restoreMenuState()
		}
	}
	return m, nil
}

// openCredentialsForm opens the credential entry for the focused category.
// Nothing opens until a provider is selected.
func (m *home) openCredentialsForm() (tea.Model, tea.Cmd) {
	c := m.integrations.FocusedCategory()
	conn := m.configurator.Connection(c)
	if conn.SelectedProvider == "" {
		m.toastManager.Info("Pick a provider first")
		return m, m.toastTickCmd()
	}
	if conn.Connecting {
		return m, nil
	}

	title := "Connect " + integration.ProviderName(c, conn.SelectedProvider)
	m.credCategory = c
	m.credForm = overlay.NewCredentialsForm(title, c == integration.Management, 52)
	m.returnState = stateIntegrations
	m.state = stateCredentials
	m.menu.SetState(ui.StateForm)
	return m, nil
}

func (m *home) handleCredentialsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.credForm.HandleKeyPress(msg) {
		return m, nil
	}

	submitted := m.credForm.IsSubmitted()
	c := m.credCategory

	if submitted {
		m.configurator.SetCredentials(c, integration.Credentials{
			Email:  m.credForm.Email(),
			Token:  m.credForm.Token(),
			Domain: m.credForm.Domain(),
			Secret: m.credForm.Secret(),
		})
	}
	m.credForm = nil
	m.state = stateIntegrations
	m.menu.SetState(ui.StateIntegrations)

	if !submitted {
		return m, nil
	}
	m.statusToastID = m.toastManager.Loading("Connecting…")
	return m, tea.Batch(m.connectCmd(c), m.toastTickCmd())
}

func (m *home) handleChatKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = stateIntegrations
		m.menu.SetState(ui.StateIntegrations)
		return m, nil

	case tea.KeyCtrlL:
		return m.confirmClearChat()

	case tea.KeyEnter:
		return m.sendChatMessage(m.chat.Value())

	case tea.KeyUp:
		m.chat.ScrollUp()
		return m, nil

	case tea.KeyDown:
		m.chat.ScrollDown()
		return m, nil
	}

	// Number keys prefill a quick action while the input is empty.
	if m.chat.Value() == "" {
		if name, ok := keys.GlobalKeyStringsMap[msg.String()]; ok {
			if idx, isQuick := quickActionIndex(name); isQuick {
				m.chat.SetValue(conversation.QuickActions()[idx])
				return m, nil
			}
		}
	}

	if m.driver.CanSend() {
		m.chat.HandleKey(msg)
	} else if msg.String() == "e" {
		m.state = stateIntegrations
		m.menu.SetState(ui.StateIntegrations)
	}
	return m, nil
}

func quickActionIndex(name keys.KeyName) (int, bool) {
	switch name {
	case keys.KeyQuickOne:
		return 0, true
	case keys.KeyQuickTwo:
		return 1, true
	case keys.KeyQuickThree:
		return 2, true
	case keys.KeyQuickFour:
		return 3, true
	}
	return 0, false
}

func (m *home) sendChatMessage(content string) (tea.Model, tea.Cmd) {
	if content == "" {
		return m, nil
	}
	seq, gen, req, err := m.driver.Send(content)
	if errors.Is(err, conversation.ErrEmptyMessage) {
		return m, nil
	}
	if err != nil {
		return m, m.handleError(err)
	}
	m.chat.Reset()
	m.chat.ScrollToBottom()
	return m, m.sendChatCmd(gen, seq, req)
}

func (m *home) confirmClearChat() (tea.Model, tea.Cmd) {
	if m.driver.Transcript().Len() == 0 {
		return m, nil
	}
	m.returnState = stateChat
	m.state = stateConfirmClear
	m.menu.SetState(ui.StateConfirm)
	m.confirmationOverlay = overlay.NewConfirmationOverlay("Clear this conversation?")
	m.confirmationOverlay.OnConfirm = func() {
		m.driver.Clear()
		m.chat.ScrollToBottom()
	}
	return m, nil
}

func (m *home) showHelp() (tea.Model, tea.Cmd) {
	m.returnState = m.state
	m.state = stateHelp
	m.textOverlay = overlay.NewTextOverlay(helpContent())
	m.textOverlay.SetWidth(int(float32(m.termWidth) * 0.6))
	return m, nil
}

func (m *home) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp && m.state == stateChat {
		m.chat.ScrollUp()
		return m, nil
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown && m.state == stateChat {
		m.chat.ScrollDown()
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	switch m.state {
	case stateDirectory:
		for i := range m.directory.Agents() {
			if zone.Get(ui.AgentCardZoneID(i)).InBounds(msg) {
				m.directory.Select(i)
				return m.openSelectedAgent()
			}
		}

	case stateIntegrations:
		for i := range integration.Categories() {
			if zone.Get(ui.CategoryZoneID(i)).InBounds(msg) {
				m.integrations.SelectCategory(i)
				m.integrations.SetFocus(ui.FocusProviders)
				return m, nil
			}
		}
		for i := range integration.Providers(m.integrations.FocusedCategory()) {
			if zone.Get(ui.ProviderZoneID(i)).InBounds(msg) {
				c := m.integrations.FocusedCategory()
				provider := integration.Providers(c)[i]
				m.configurator.SelectProvider(c, provider.ID)
				m.menu.SetSaveReady(m.configurator.IsReadyToSave())
				m.syncChatContext()
				return m, nil
			}
		}
		if zone.Get(ui.ZoneSaveConfig).InBounds(msg) && m.configurator.IsReadyToSave() {
			return m, m.saveConfigCmd()
		}
		if zone.Get(ui.ZoneBackToGrid).InBounds(msg) {
			m.leaveWorkspace()
			return m, nil
		}

	case stateChat:
		for i, action := range conversation.QuickActions() {
			if zone.Get(ui.QuickActionZoneID(i)).InBounds(msg) {
				return m.sendChatMessage(action)
			}
		}
	}
	return m, nil
}
