package app

import (
	"errors"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agenthub-io/agenthub/conversation"
	"github.com/agenthub-io/agenthub/internal/api"
	"github.com/agenthub-io/agenthub/internal/integration"
	"github.com/agenthub-io/agenthub/log"
	"github.com/agenthub-io/agenthub/session"
	"github.com/agenthub-io/agenthub/ui"
	"github.com/agenthub-io/agenthub/ui/overlay"
)

// -- Messages --

type loginResultMsg struct {
	user api.User
	err  error
}

type statusResultMsg struct {
	snap session.IntegrationSnapshot
	err  error
}

type configLoadedMsg struct {
	cfg *api.AgentConfig
	err error
}

type connectResultMsg struct {
	category integration.Category
	err      error
}

type configSavedMsg struct {
	err error
}

type chatReplyMsg struct {
	gen   int
	seq   int
	reply api.ChatReply
	err   error
}

// sessionExpiredMsg forces the global logout path from any handler that saw
// a rejected token.
type sessionExpiredMsg struct{}

// -- Commands --

func (m *home) toastTickCmd() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(time.Time) tea.Msg {
		return overlay.ToastTickMsg{}
	})
}

func (m *home) loginCmd(email, password string, remember bool) tea.Cmd {
	return func() tea.Msg {
		user, err := m.session.Login(m.ctx, email, password, remember)
		return loginResultMsg{user: user, err: err}
	}
}

func (m *home) refreshStatusCmd() tea.Cmd {
	m.checking = true
	return func() tea.Msg {
		snap, err := m.session.RefreshIntegrationStatus(m.ctx)
		return statusResultMsg{snap: snap, err: err}
	}
}

func (m *home) loadConfigCmd() tea.Cmd {
	return func() tea.Msg {
		cfg, err := m.client.GetConfig(m.ctx)
		return configLoadedMsg{cfg: cfg, err: err}
	}
}

func (m *home) connectCmd(c integration.Category) tea.Cmd {
	m.configurator.SetConnecting(c, true)
	return func() tea.Msg {
		err := m.configurator.Connect(m.ctx, c)
		return connectResultMsg{category: c, err: err}
	}
}

func (m *home) saveConfigCmd() tea.Cmd {
	return func() tea.Msg {
		return configSavedMsg{err: m.configurator.Save(m.ctx)}
	}
}

func (m *home) sendChatCmd(gen, seq int, req api.ChatRequest) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.driver.Do(m.ctx, req)
		return chatReplyMsg{gen: gen, seq: seq, reply: reply, err: err}
	}
}

// handleError routes an error to the right surface: expired sessions force
// the global logout, everything else becomes an error toast.
func (m *home) handleError(err error) tea.Cmd {
	if errors.Is(err, api.ErrSessionExpired) {
		return func() tea.Msg { return sessionExpiredMsg{} }
	}
	log.WarningLog.Printf("%v", err)
	m.toastManager.Error(err.Error())
	return m.toastTickCmd()
}

// -- Result handlers --

func (m *home) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		var authErr *api.AuthError
		if errors.As(msg.err, &authErr) {
			m.loginForm.SetError(authErr.Message)
			return m, nil
		}
		m.loginForm.SetError("")
		return m, m.handleError(msg.err)
	}

	m.state = stateDirectory
	m.menu.SetState(ui.StateDirectory)
	m.toastManager.Success("Welcome back, " + msg.user.Email)
	return m, tea.Batch(m.loadConfigCmd(), m.toastTickCmd())
}

func (m *home) handleStatusResult(msg statusResultMsg) (tea.Model, tea.Cmd) {
	m.checking = false
	if msg.err != nil {
		return m, m.handleError(msg.err)
	}
	// Surface the backend's line when a connected integration probes offline.
	if !msg.snap.IsOnline && m.configurator.Connection(integration.Management).Connected {
		if text := m.session.StatusMessage(); text != "" {
			m.toastManager.Info(text)
			return m, m.toastTickCmd()
		}
	}
	return m, nil
}

func (m *home) handleConfigLoaded(msg configLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.handleError(msg.err)
	}
	if msg.cfg == nil {
		// First visit, nothing saved yet.
		return m, nil
	}

	m.configurator.LoadSaved(msg.cfg)
	m.session.SetConfigured(m.configurator.IsReadyToSave())
	m.menu.SetSaveReady(m.configurator.IsReadyToSave())

	// Rehydrating a saved management connection needs the project/board
	// lists back before the selection can be restored against them.
	if m.configurator.Connection(integration.Management).Connected {
		return m, m.rehydrateListsCmd(msg.cfg)
	}
	return m, nil
}

// listsLoadedMsg carries the refetched projects/boards plus the saved
// selection to restore once they are in place.
type listsLoadedMsg struct {
	projects []api.Project
	boards   []api.Board
	saved    *api.AgentConfig
	err      error
}

func (m *home) rehydrateListsCmd(saved *api.AgentConfig) tea.Cmd {
	return func() tea.Msg {
		projects, err := m.client.Projects(m.ctx)
		if err != nil {
			return listsLoadedMsg{saved: saved, err: err}
		}
		boards, err := m.client.Boards(m.ctx)
		if err != nil {
			return listsLoadedMsg{saved: saved, err: err}
		}
		return listsLoadedMsg{projects: projects, boards: boards, saved: saved}
	}
}

func (m *home) handleListsLoaded(msg listsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.handleError(msg.err)
	}

	m.configurator.SetLists(msg.projects, msg.boards)
	m.restoreSelection(msg.saved)
	m.syncChatContext()
	return m, nil
}

// restoreSelection matches the saved project key and board id against the
// freshly fetched lists. A board that no longer exists is silently dropped.
func (m *home) restoreSelection(saved *api.AgentConfig) {
	if saved == nil || saved.SelectedProject == "" {
		return
	}
	for _, p := range m.configurator.Projects() {
		if p.Key == saved.SelectedProject {
			m.configurator.Selection().SelectProject(p)
			break
		}
	}
	if saved.SelectedBoard == "" {
		return
	}
	for _, b := range m.configurator.Boards(saved.SelectedProject) {
		if boardIDString(b) == saved.SelectedBoard {
			if err := m.configurator.Selection().SelectBoard(b); err != nil {
				log.WarningLog.Printf("saved board no longer matches: %v", err)
			}
			break
		}
	}
}

func (m *home) handleConnectResult(msg connectResultMsg) (tea.Model, tea.Cmd) {
	m.configurator.SetConnecting(msg.category, false)

	if msg.err != nil {
		m.toastManager.Resolve(m.statusToastID, overlay.ToastError, errText(msg.err))
		m.statusToastID = ""
		if errors.Is(msg.err, api.ErrSessionExpired) {
			return m.forceLogout()
		}
		return m, m.toastTickCmd()
	}

	name := integration.ProviderName(msg.category, m.configurator.Connection(msg.category).SelectedProvider)
	m.toastManager.Resolve(m.statusToastID, overlay.ToastSuccess, name+" connected")
	m.statusToastID = ""
	m.menu.SetSaveReady(m.configurator.IsReadyToSave())

	var cmd tea.Cmd
	if msg.category == integration.Management {
		// Re-probe the backend status after a management connect.
		cmd = m.refreshStatusCmd()
	}
	return m, tea.Batch(m.toastTickCmd(), cmd)
}

func (m *home) handleConfigSaved(msg configSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, api.ErrSessionExpired) {
			return m.forceLogout()
		}
		m.toastManager.Error(errText(msg.err))
		return m, m.toastTickCmd()
	}

	m.session.SetConfigured(true)
	m.syncChatContext()
	m.toastManager.Success("Configuration saved")

	// Land the user in the chat when it is usable, otherwise stay here so
	// they can pick a project and board.
	if m.driver.CanSend() {
		m.state = stateChat
		m.menu.SetState(ui.StateChat)
	}
	return m, m.toastTickCmd()
}

func (m *home) handleChatReply(msg chatReplyMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, api.ErrSessionExpired) {
			return m.forceLogout()
		}
		m.driver.Fail(msg.gen, msg.seq)
		m.toastManager.Error(errText(msg.err))
		return m, m.toastTickCmd()
	}

	m.driver.Apply(msg.gen, msg.seq, msg.reply)
	m.chat.ScrollToBottom()
	return m, nil
}

// forceLogout tears the whole session down after the backend rejected the
// token. Every piece of per-user state is discarded.
func (m *home) forceLogout() (tea.Model, tea.Cmd) {
	log.InfoLog.Printf("session expired, forcing logout")
	m.session.Logout()
	m.configurator = integration.New(m.client)
	m.integrations = ui.NewIntegrationsPane(m.configurator)
	m.integrations.SetSize(m.termWidth, m.contentHeight)
	m.driver.Clear()
	m.driver.SetContext(conversationContextZero)
	m.chat.Reset()

	m.loginForm = overlay.NewLoginForm(52)
	m.loginForm.SetError("Your session has expired. Please sign in again.")
	m.state = stateLogin
	m.menu.SetState(ui.StateLogin)
	m.menu.SetSaveReady(false)

	m.toastManager.Error("Session expired")
	return m, m.toastTickCmd()
}

// syncChatContext pushes the current selection and AI engine into the
// conversation driver. Sends already in flight keep their old context.
func (m *home) syncChatContext() {
	ctx := conversationContextZero
	if project, ok := m.configurator.Selection().Project(); ok {
		ctx.ProjectKey = project.Key
	}
	if board, ok := m.configurator.Selection().Board(); ok {
		ctx.BoardID = board.ID
	}
	// A selected engine is not enough; the chat stays disabled until the
	// AI connection has actually been established.
	if ai := m.configurator.Connection(integration.AI); ai.Connected {
		ctx.AIEngine = ai.SelectedProvider
	}
	m.driver.SetContext(ctx)
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func boardIDString(b api.Board) string {
	return strconv.Itoa(b.ID)
}

// conversationContextZero is the empty routing context, used when tearing
// chat state down.
var conversationContextZero = conversation.Context{}
