package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agenthub-io/agenthub/internal/api"
	"github.com/agenthub-io/agenthub/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBackend returns a fake hub backend handling login and jira status.
func newBackend(t *testing.T, statusOnline bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if body["password"] != "test123" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"token": "jwt-token",
				"user":  map[string]string{"email": body["email"], "name": "Test User", "role": "user"},
			})
		case "/api/scrum-master/jira/status":
			json.NewEncoder(w).Encode(map[string]any{"is_online": statusOnline, "message": "ok"})
		default:
			http.NotFound(w, r)
		}
	}))
}

func newManager(t *testing.T, serverURL string) (*session.Manager, session.Repository) {
	t.Helper()
	repo := newSQLiteRepo(t)
	client := api.NewClient(serverURL)
	return session.NewManager(client, repo), repo
}

func TestManager_LoginPersistsSessionAndStatus(t *testing.T) {
	srv := newBackend(t, true)
	defer srv.Close()

	m, repo := newManager(t, srv.URL)

	user, err := m.Login(context.Background(), "test@example.com", "test123", true)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.True(t, m.Authenticated())
	assert.True(t, m.Integration().IsOnline)
	assert.True(t, m.Integration().IsConfigured)

	// Snapshot survived in the repository.
	snap, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", snap.Token)
	assert.Equal(t, "test@example.com", snap.User.Email)
	assert.True(t, snap.Integration.IsOnline)
}

func TestManager_LoginRejectedLeavesStateUntouched(t *testing.T) {
	srv := newBackend(t, true)
	defer srv.Close()

	m, repo := newManager(t, srv.URL)

	_, err := m.Login(context.Background(), "test@example.com", "wrong", true)
	var authErr *api.AuthError
	require.ErrorAs(t, err, &authErr)

	assert.False(t, m.Authenticated())
	snap, err := repo.Load()
	require.NoError(t, err)
	assert.False(t, snap.Authenticated())
}

func TestManager_RememberFalseSkipsPersistence(t *testing.T) {
	srv := newBackend(t, true)
	defer srv.Close()

	m, repo := newManager(t, srv.URL)

	_, err := m.Login(context.Background(), "test@example.com", "test123", false)
	require.NoError(t, err)
	assert.True(t, m.Authenticated())

	snap, err := repo.Load()
	require.NoError(t, err)
	assert.False(t, snap.Authenticated())
}

func TestManager_RestoreIsOptimistic(t *testing.T) {
	repo := newSQLiteRepo(t)
	require.NoError(t, repo.Save(testSnapshot()))

	// No backend at all: restore must not hit the network.
	client := api.NewClient("http://127.0.0.1:1")
	m := session.NewManager(client, repo)

	assert.True(t, m.Restore())
	assert.True(t, m.Authenticated())
	assert.Equal(t, "test@example.com", m.User().Email)
	assert.Equal(t, "jwt-token", client.Token())
}

func TestManager_RestoreEmptyRepo(t *testing.T) {
	m, _ := newManager(t, "http://127.0.0.1:1")
	assert.False(t, m.Restore())
	assert.False(t, m.Authenticated())
}

func TestManager_LogoutClearsEverythingAndIsIdempotent(t *testing.T) {
	srv := newBackend(t, true)
	defer srv.Close()

	m, repo := newManager(t, srv.URL)
	_, err := m.Login(context.Background(), "test@example.com", "test123", true)
	require.NoError(t, err)

	m.Logout()
	assert.False(t, m.Authenticated())
	assert.Equal(t, api.User{}, m.User())

	snap, err := repo.Load()
	require.NoError(t, err)
	assert.False(t, snap.Authenticated())

	// Repeated logout never fails.
	m.Logout()
	m.Logout()
	assert.False(t, m.Authenticated())
}

func TestManager_RefreshFailureIsConservative(t *testing.T) {
	srv := newBackend(t, true)
	m, _ := newManager(t, srv.URL)
	_, err := m.Login(context.Background(), "test@example.com", "test123", true)
	require.NoError(t, err)
	require.True(t, m.Integration().IsOnline)
	assert.Equal(t, "ok", m.StatusMessage())

	// Backend gone: refresh must downgrade to offline/unconfigured, not
	// keep the stale optimistic snapshot.
	srv.Close()
	snap, err := m.RefreshIntegrationStatus(context.Background())
	assert.Error(t, err)
	assert.False(t, snap.IsOnline)
	assert.False(t, snap.IsConfigured)
	assert.False(t, m.Integration().IsConfigured)
	assert.Empty(t, m.StatusMessage())
}

func TestManager_RefreshPropagatesSessionExpiry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid token"})
	}))
	defer srv.Close()

	repo := newSQLiteRepo(t)
	require.NoError(t, repo.Save(testSnapshot()))
	client := api.NewClient(srv.URL)
	m := session.NewManager(client, repo)
	require.True(t, m.Restore())

	_, err := m.RefreshIntegrationStatus(context.Background())
	assert.ErrorIs(t, err, api.ErrSessionExpired)
}
