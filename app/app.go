package app

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/agenthub-io/agenthub/config"
	"github.com/agenthub-io/agenthub/conversation"
	"github.com/agenthub-io/agenthub/internal/api"
	"github.com/agenthub-io/agenthub/internal/integration"
	"github.com/agenthub-io/agenthub/session"
	"github.com/agenthub-io/agenthub/ui"
	"github.com/agenthub-io/agenthub/ui/overlay"
)

// Run is the main entrypoint into the application.
func Run(ctx context.Context, cfg *config.Config) error {
	// Set the terminal's default background to the theme base color so every
	// ANSI reset and unstyled cell falls back to #232136 instead of black.
	restore := setTerminalBackground(string(ui.ColorBase))
	defer restore()

	zone.NewGlobal()
	p := tea.NewProgram(
		newHome(ctx, cfg),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // Full mouse tracking for hover + scroll + click
	)
	_, err := p.Run()
	return err
}

type state int

const (
	// stateLogin is the state before a session exists.
	stateLogin state = iota
	// stateDirectory is the agent card grid behind login.
	stateDirectory
	// stateIntegrations is the scrum master's configuration panel.
	stateIntegrations
	// stateCredentials is the state while a credential form overlay is open.
	stateCredentials
	// stateChat is the scrum master conversation.
	stateChat
	// stateHelp is the state when a help screen is displayed.
	stateHelp
	// stateConfirmLogout is the state when the logout confirmation is displayed.
	stateConfirmLogout
	// stateConfirmClear is the state when the clear-chat confirmation is displayed.
	stateConfirmClear
)

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	// appConfig stores persistent application configuration
	appConfig *config.Config
	// client is the hub backend client shared by every component
	client *api.Client
	// session owns the auth token, user and persistence
	session *session.Manager
	// configurator drives the integration connections
	configurator *integration.Configurator
	// driver sequences the scrum master conversation
	driver *conversation.Driver

	// -- State --

	// state is the current discrete state of the application
	state state
	// returnState is where Back/Esc leads from help and confirmations
	returnState state
	// credCategory is the category whose credential form is open
	credCategory integration.Category
	// keySent is used to manage underlining menu items
	keySent bool
	// statusToastID tracks the loading toast of an in-flight connect
	statusToastID string
	// checking is true while the integration status probe is in flight
	checking bool

	// -- UI Components --

	statusBar    *ui.StatusBar
	menu         *ui.Menu
	directory    *ui.DirectoryPane
	integrations *ui.IntegrationsPane
	chat         *ui.ChatPane
	toastManager *overlay.ToastManager
	// global spinner instance. we plumb this down to where it's needed
	spinner spinner.Model

	loginForm           *overlay.LoginForm
	credForm            *overlay.CredentialsForm
	confirmationOverlay *overlay.ConfirmationOverlay
	textOverlay         *overlay.TextOverlay

	// Terminal dimensions for the global background fill.
	termWidth     int
	termHeight    int
	contentHeight int
}

func newHome(ctx context.Context, cfg *config.Config) *home {
	client := api.NewClient(cfg.ServerURL)
	client.SetTimeout(cfg.RequestTimeout())

	repo, err := session.NewRepository(cfg)
	if err != nil {
		// NewRepository already fell back to the file store; a hard error
		// here means the config dir itself is unusable.
		panic(err)
	}
	mgr := session.NewManager(client, repo)
	configurator := integration.New(client)
	driver := conversation.NewDriver(client)

	h := &home{
		ctx:          ctx,
		appConfig:    cfg,
		client:       client,
		session:      mgr,
		configurator: configurator,
		driver:       driver,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		statusBar:    ui.NewStatusBar(),
		menu:         ui.NewMenu(),
		directory:    ui.NewDirectoryPane(),
		integrations: ui.NewIntegrationsPane(configurator),
		chat:         ui.NewChatPane(driver),
		state:        stateLogin,
	}
	h.toastManager = overlay.NewToastManager(&h.spinner)
	h.loginForm = overlay.NewLoginForm(52)

	if mgr.Restore() {
		h.state = stateDirectory
		h.menu.SetState(ui.StateDirectory)
	} else {
		h.menu.SetState(ui.StateLogin)
	}

	return h
}

// updateHandleWindowSizeEvent sets the sizes of the components.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	statusHeight := 1
	menuHeight := 1
	contentHeight := msg.Height - statusHeight - menuHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	m.termWidth = msg.Width
	m.termHeight = msg.Height
	m.contentHeight = contentHeight

	m.toastManager.SetSize(msg.Width, msg.Height)
	m.statusBar.SetSize(msg.Width)
	m.directory.SetSize(msg.Width, contentHeight)
	m.integrations.SetSize(msg.Width, contentHeight)
	m.chat.SetSize(msg.Width, contentHeight)
	m.menu.SetSize(msg.Width, menuHeight)
}

func (m *home) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.session.Authenticated() {
		// A restored session is optimistic; the status probe and the saved
		// configuration decide what the workspace looks like.
		cmds = append(cmds, m.refreshStatusCmd(), m.loadConfigCmd())
	}
	return tea.Batch(cmds...)
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case overlay.ToastTickMsg:
		m.toastManager.Tick()
		if m.toastManager.HasActiveToasts() {
			return m, m.toastTickCmd()
		}
		return m, nil

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case statusResultMsg:
		return m.handleStatusResult(msg)

	case configLoadedMsg:
		return m.handleConfigLoaded(msg)

	case listsLoadedMsg:
		return m.handleListsLoaded(msg)

	case connectResultMsg:
		return m.handleConnectResult(msg)

	case configSavedMsg:
		return m.handleConfigSaved(msg)

	case chatReplyMsg:
		return m.handleChatReply(msg)

	case sessionExpiredMsg:
		return m.forceLogout()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	return m, tea.Quit
}

// syncStatusBar rebuilds the status bar data from current state.
func (m *home) syncStatusBar() {
	data := ui.StatusBarData{}
	if m.session.Authenticated() {
		data.UserEmail = m.session.User().Email

		switch {
		case m.checking:
			data.Badge = ui.ConnChecking
		case m.session.Integration().IsOnline:
			data.Badge = ui.ConnOnline
		case m.configurator.Connection(integration.Management).Connected:
			data.Badge = ui.ConnOffline
		default:
			data.Badge = ui.ConnUnknown
		}

		if m.state == stateIntegrations || m.state == stateChat || m.state == stateCredentials {
			data.AgentName = "Scrum Master"
		}
		if project, ok := m.configurator.Selection().Project(); ok {
			data.ProjectKey = project.Key
		}
		if board, ok := m.configurator.Selection().Board(); ok {
			data.BoardName = board.Name
		}
	}
	m.statusBar.SetData(data)
}

func (m *home) View() string {
	m.syncStatusBar()

	// Overlays render on top of the screen they were opened from.
	background := m.state
	switch m.state {
	case stateHelp, stateConfirmLogout:
		background = m.returnState
	case stateConfirmClear:
		background = stateChat
	case stateCredentials:
		background = stateIntegrations
	}

	var content string
	switch background {
	case stateLogin:
		banner := ui.FallBackText(0)
		form := m.loginForm.Render()
		content = lipgloss.Place(m.termWidth, m.contentHeight, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center, banner, "", form))
	case stateDirectory:
		content = m.directory.String()
	case stateChat:
		content = m.chat.String()
	default:
		content = m.integrations.String()
	}

	content = lipgloss.NewStyle().Height(m.contentHeight).Render(content)

	mainView := lipgloss.JoinVertical(
		lipgloss.Left,
		m.statusBar.String(),
		content,
		m.menu.String(),
	)

	var result string
	switch {
	case m.state == stateCredentials && m.credForm != nil:
		result = overlay.PlaceOverlay(0, 0, m.credForm.Render(), mainView, true, true)
	case m.state == stateHelp && m.textOverlay != nil:
		result = overlay.PlaceOverlay(0, 0, m.textOverlay.Render(), mainView, true, true)
	case (m.state == stateConfirmLogout || m.state == stateConfirmClear) && m.confirmationOverlay != nil:
		result = overlay.PlaceOverlay(0, 0, m.confirmationOverlay.Render(), mainView, true, true)
	default:
		result = mainView
	}

	if toastView := m.toastManager.View(); toastView != "" {
		x, y := m.toastManager.GetPosition()
		result = overlay.PlaceOverlay(x, y, toastView, result, false, false)
	}

	// Process bubblezone markers before rendering is complete
	// (zone markers inflate lipgloss.Width if left in place).
	result = zone.Scan(result)

	result = padToHeight(result, m.termHeight)

	return result
}
