package session

import (
	"context"
	"errors"

	"github.com/agenthub-io/agenthub/internal/api"
	"github.com/agenthub-io/agenthub/log"
)

// Manager is the single source of truth for "is the user logged in" and
// "is the integration reachable". It owns the bearer token: the api.Client
// only ever receives the token through the manager.
type Manager struct {
	api  *api.Client
	repo Repository

	snapshot Snapshot
	// statusMessage is the human-readable line from the last status probe.
	// It is display-only and never persisted.
	statusMessage string
	// persist reflects the remember-me choice: when false, the session lives
	// in memory only and a restart logs the user out.
	persist bool
}

// NewManager wires the session manager to its collaborators.
func NewManager(client *api.Client, repo Repository) *Manager {
	return &Manager{api: client, repo: repo, persist: true}
}

// Restore hydrates the session from the repository without contacting the
// auth backend (optimistic restore). Returns whether a session was found.
// The integration snapshot restored here is stale by definition and must be
// re-validated on workspace entry.
func (m *Manager) Restore() bool {
	snap, err := m.repo.Load()
	if err != nil {
		log.WarningLog.Printf("failed to load persisted session: %v", err)
		return false
	}
	if !snap.Authenticated() {
		return false
	}
	m.snapshot = snap
	m.api.SetToken(snap.Token)
	return true
}

// Login authenticates against the backend. On success the token and profile
// are stored (and persisted when remember is set), then the integration
// status is fetched and persisted too. On failure the session state is left
// untouched and the *api.AuthError is returned as-is.
func (m *Manager) Login(ctx context.Context, email, password string, remember bool) (api.User, error) {
	result, err := m.api.Login(ctx, email, password)
	if err != nil {
		return api.User{}, err
	}

	m.persist = remember
	m.snapshot = Snapshot{Token: result.Token, User: result.User}
	m.save()

	// Best-effort: a failed status fetch leaves the conservative zero value.
	if _, err := m.RefreshIntegrationStatus(ctx); err != nil {
		log.WarningLog.Printf("integration status check after login failed: %v", err)
	}

	return result.User, nil
}

// Logout clears all persisted keys and in-memory state unconditionally.
// It never fails and is idempotent.
func (m *Manager) Logout() {
	m.snapshot = Snapshot{}
	m.statusMessage = ""
	m.api.SetToken("")
	if err := m.repo.Clear(); err != nil {
		log.WarningLog.Printf("failed to clear persisted session: %v", err)
	}
}

// RefreshIntegrationStatus re-queries the integration backend. On transport
// failure the snapshot conservatively becomes offline/unconfigured rather
// than keeping stale optimistic data. A session-expiry error is propagated
// untouched so the caller can trigger the global logout.
func (m *Manager) RefreshIntegrationStatus(ctx context.Context) (IntegrationSnapshot, error) {
	status, err := m.api.IntegrationStatus(ctx)
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return IntegrationSnapshot{}, err
		}
		m.snapshot.Integration = IntegrationSnapshot{}
		m.statusMessage = ""
		m.save()
		return m.snapshot.Integration, err
	}

	m.snapshot.Integration.IsOnline = status.IsOnline
	m.statusMessage = status.Message
	if status.IsOnline {
		m.snapshot.Integration.IsConfigured = true
	}
	m.save()
	return m.snapshot.Integration, nil
}

// StatusMessage returns the backend's line from the last status probe.
func (m *Manager) StatusMessage() string {
	return m.statusMessage
}

// SetConfigured flips the configured flag (after a successful configuration
// save) and persists the change.
func (m *Manager) SetConfigured(configured bool) {
	m.snapshot.Integration.IsConfigured = configured
	m.save()
}

// Authenticated reports whether a session is active.
func (m *Manager) Authenticated() bool {
	return m.snapshot.Authenticated()
}

// User returns the authenticated profile. Zero value when logged out.
func (m *Manager) User() api.User {
	return m.snapshot.User
}

// Integration returns the cached integration snapshot.
func (m *Manager) Integration() IntegrationSnapshot {
	return m.snapshot.Integration
}

func (m *Manager) save() {
	if !m.persist {
		return
	}
	if err := m.repo.Save(m.snapshot); err != nil {
		log.WarningLog.Printf("failed to persist session: %v", err)
	}
}
