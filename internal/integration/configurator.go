package integration

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/agenthub-io/agenthub/internal/api"
	"github.com/agenthub-io/agenthub/log"
)

// ErrEmptyCredentials is the local rejection of a connect attempt with no
// credentials entered. No request is sent.
var ErrEmptyCredentials = errors.New("credentials are required")

// ErrNotReady is returned by Save when the mandatory categories are not
// both connected.
var ErrNotReady = errors.New("management tool and AI engine must be connected")

// Credentials holds the provider-specific secrets for one category. The
// management category uses the email/token/domain triple; every other
// category uses the single Secret field. Values are opaque: nothing is
// validated client-side beyond non-emptiness.
type Credentials struct {
	Email  string
	Token  string
	Domain string
	Secret string
}

// EmptyFor reports whether the credentials are incomplete for a category.
func (cr Credentials) EmptyFor(c Category) bool {
	if c == Management {
		return strings.TrimSpace(cr.Email) == "" ||
			strings.TrimSpace(cr.Token) == "" ||
			strings.TrimSpace(cr.Domain) == ""
	}
	return strings.TrimSpace(cr.Secret) == ""
}

// Connection is the per-category sub-state. Connected becomes true only
// after a successful round-trip; credentials may be non-empty while
// Connected is false (pending), never the other way around.
type Connection struct {
	SelectedProvider string
	Credentials      Credentials
	Connected        bool
	// Connecting guards against double-submit while a request is in flight.
	// Set and cleared by the caller around Connect.
	Connecting bool
}

// Configurator drives the four provider connections to completion and owns
// the project/board lists fetched from the management tool.
type Configurator struct {
	api *api.Client

	conns     map[Category]*Connection
	projects  []api.Project
	boards    []api.Board
	selection ProjectSelection

	// saved tracks whether a configuration record exists server-side, which
	// decides between POST (create) and PUT (update) on the config endpoint.
	saved bool
}

// New creates a configurator with all categories empty.
func New(client *api.Client) *Configurator {
	conns := make(map[Category]*Connection, len(Categories()))
	for _, c := range Categories() {
		conns[c] = &Connection{}
	}
	return &Configurator{api: client, conns: conns}
}

// Connection returns a copy of the category's sub-state.
func (g *Configurator) Connection(c Category) Connection {
	return *g.conns[c]
}

// SetConnecting flips the in-flight guard for a category.
func (g *Configurator) SetConnecting(c Category, v bool) {
	g.conns[c].Connecting = v
}

// SelectProvider sets the category's provider. Selecting the already-active
// provider deselects it. Any change resets the connection and clears the
// credentials; switching the management provider additionally discards the
// fetched projects/boards and resets the project selection, since those are
// provider-specific.
func (g *Configurator) SelectProvider(c Category, providerID string) {
	conn := g.conns[c]
	if conn.SelectedProvider == providerID {
		providerID = ""
	}
	conn.SelectedProvider = providerID
	conn.Connected = false
	conn.Credentials = Credentials{}

	if c == Management {
		g.projects = nil
		g.boards = nil
		g.selection.Clear()
	}
}

// SetCredentials is a pure local field update; nothing is sent until
// Connect is invoked.
func (g *Configurator) SetCredentials(c Category, creds Credentials) {
	g.conns[c].Credentials = creds
}

// Edit re-opens credential entry: the connection is dropped and the
// credentials are cleared.
func (g *Configurator) Edit(c Category) {
	g.conns[c].Connected = false
	g.conns[c].Credentials = Credentials{}
}

// Connect sends the category's credentials to the corresponding backend.
// Empty credentials are rejected locally without issuing a request. On
// success Connected becomes true; for the management category the provider's
// project and board lists are fetched as a follow-up (fetch failures degrade
// to empty lists rather than failing the connect). On failure the backend's
// message is returned and Connected stays false.
func (g *Configurator) Connect(ctx context.Context, c Category) error {
	conn := g.conns[c]
	if conn.SelectedProvider == "" {
		return ErrEmptyCredentials
	}
	if conn.Credentials.EmptyFor(c) {
		return ErrEmptyCredentials
	}

	switch c {
	case Management:
		cfg := api.AgentConfig{
			ManagementTool:        conn.SelectedProvider,
			ManagementEmail:       conn.Credentials.Email,
			ManagementCredentials: conn.Credentials.Token,
			ManagementDomain:      conn.Credentials.Domain,
			AIEngine:              g.conns[AI].SelectedProvider,
		}
		if err := g.api.SaveConfig(ctx, cfg, g.saved); err != nil {
			return err
		}
		g.saved = true
		conn.Connected = true
		g.refreshLists(ctx)
		return nil

	case AI:
		if err := g.api.ConnectAI(ctx, conn.SelectedProvider, conn.Credentials.Secret); err != nil {
			return err
		}
		conn.Connected = true
		return nil

	default:
		// Communication and email have no dedicated validation endpoint;
		// their credentials travel with the full record at Save time.
		conn.Connected = true
		return nil
	}
}

// refreshLists fetches projects and boards after a management connect.
// A failed fetch is logged and leaves an empty list — the UI degrades to a
// placeholder selection instead of crashing.
func (g *Configurator) refreshLists(ctx context.Context) {
	projects, err := g.api.Projects(ctx)
	if err != nil {
		log.WarningLog.Printf("project list fetch failed: %v", err)
		projects = nil
	}
	boards, err := g.api.Boards(ctx)
	if err != nil {
		log.WarningLog.Printf("board list fetch failed: %v", err)
		boards = nil
	}
	g.projects = projects
	g.boards = boards
	g.selection.Clear()
}

// IsReadyToSave reports whether the mandatory categories are both
// connected. Optional categories never block readiness.
func (g *Configurator) IsReadyToSave() bool {
	return g.conns[Management].Connected && g.conns[AI].Connected
}

// Save persists the full configuration (all four categories, connected or
// not, plus the project selection) as one record. Only callable when
// IsReadyToSave.
func (g *Configurator) Save(ctx context.Context) error {
	if !g.IsReadyToSave() {
		return ErrNotReady
	}

	cfg := api.AgentConfig{
		ManagementTool:           g.conns[Management].SelectedProvider,
		ManagementEmail:          g.conns[Management].Credentials.Email,
		ManagementCredentials:    g.conns[Management].Credentials.Token,
		ManagementDomain:         g.conns[Management].Credentials.Domain,
		CommunicationTool:        g.conns[Communication].SelectedProvider,
		CommunicationCredentials: g.conns[Communication].Credentials.Secret,
		EmailTool:                g.conns[Email].SelectedProvider,
		EmailCredentials:         g.conns[Email].Credentials.Secret,
		AIEngine:                 g.conns[AI].SelectedProvider,
		AICredentials:            g.conns[AI].Credentials.Secret,
	}
	if project, ok := g.selection.Project(); ok {
		cfg.SelectedProject = project.Key
	}
	if board, ok := g.selection.Board(); ok {
		cfg.SelectedBoard = strconv.Itoa(board.ID)
	}

	if err := g.api.SaveConfig(ctx, cfg, g.saved); err != nil {
		return err
	}
	g.saved = true
	return nil
}

// LoadSaved rehydrates provider selections from a previously saved record.
// Credentials come back from the backend too; connections holding them are
// marked connected so a returning user lands on a ready workspace.
func (g *Configurator) LoadSaved(cfg *api.AgentConfig) {
	if cfg == nil {
		return
	}
	g.saved = true

	if cfg.ManagementTool != "" {
		mgmt := g.conns[Management]
		mgmt.SelectedProvider = cfg.ManagementTool
		mgmt.Credentials = Credentials{
			Email:  cfg.ManagementEmail,
			Token:  cfg.ManagementCredentials,
			Domain: cfg.ManagementDomain,
		}
		mgmt.Connected = !mgmt.Credentials.EmptyFor(Management)
	}
	if cfg.CommunicationTool != "" {
		comm := g.conns[Communication]
		comm.SelectedProvider = cfg.CommunicationTool
		comm.Credentials = Credentials{Secret: cfg.CommunicationCredentials}
		comm.Connected = comm.Credentials.Secret != ""
	}
	if cfg.EmailTool != "" {
		em := g.conns[Email]
		em.SelectedProvider = cfg.EmailTool
		em.Credentials = Credentials{Secret: cfg.EmailCredentials}
		em.Connected = em.Credentials.Secret != ""
	}
	if cfg.AIEngine != "" {
		ai := g.conns[AI]
		ai.SelectedProvider = cfg.AIEngine
		ai.Credentials = Credentials{Secret: cfg.AICredentials}
		ai.Connected = ai.Credentials.Secret != ""
	}
}

// Projects returns the fetched project list.
func (g *Configurator) Projects() []api.Project {
	return g.projects
}

// Boards returns the fetched boards, optionally filtered to one project key.
func (g *Configurator) Boards(projectKey string) []api.Board {
	if projectKey == "" {
		return g.boards
	}
	var filtered []api.Board
	for _, b := range g.boards {
		if b.ProjectKey == projectKey {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// SetLists replaces the fetched lists (used when the app refreshes them
// outside a connect flow).
func (g *Configurator) SetLists(projects []api.Project, boards []api.Board) {
	g.projects = projects
	g.boards = boards
}

// Selection exposes the project/board selection for reads and updates.
func (g *Configurator) Selection() *ProjectSelection {
	return &g.selection
}
