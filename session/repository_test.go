package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agenthub-io/agenthub/internal/api"
	"github.com/agenthub-io/agenthub/log"
	"github.com/agenthub-io/agenthub/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Initialize(false)
	defer log.Close()
	os.Exit(m.Run())
}

func newSQLiteRepo(t *testing.T) session.Repository {
	t.Helper()
	repo, err := session.NewSQLiteRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testSnapshot() session.Snapshot {
	return session.Snapshot{
		Token: "jwt-token",
		User:  api.User{Email: "test@example.com", Name: "Test User", Role: "user"},
		Integration: session.IntegrationSnapshot{
			IsOnline:     true,
			IsConfigured: true,
		},
	}
}

func TestSQLiteRepository_RoundTrip(t *testing.T) {
	repo := newSQLiteRepo(t)

	require.NoError(t, repo.Save(testSnapshot()))

	got, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", got.Token)
	assert.Equal(t, "test@example.com", got.User.Email)
	assert.True(t, got.Integration.IsOnline)
	assert.True(t, got.Integration.IsConfigured)
}

func TestSQLiteRepository_SaveOverwrites(t *testing.T) {
	repo := newSQLiteRepo(t)

	require.NoError(t, repo.Save(testSnapshot()))

	updated := testSnapshot()
	updated.Integration.IsOnline = false
	require.NoError(t, repo.Save(updated))

	got, err := repo.Load()
	require.NoError(t, err)
	assert.False(t, got.Integration.IsOnline)
	assert.True(t, got.Integration.IsConfigured)
}

func TestSQLiteRepository_LoadEmpty(t *testing.T) {
	repo := newSQLiteRepo(t)

	got, err := repo.Load()
	require.NoError(t, err)
	assert.False(t, got.Authenticated())
}

func TestSQLiteRepository_Clear(t *testing.T) {
	repo := newSQLiteRepo(t)

	require.NoError(t, repo.Save(testSnapshot()))
	require.NoError(t, repo.Clear())

	got, err := repo.Load()
	require.NoError(t, err)
	assert.False(t, got.Authenticated())

	// Clearing an already-empty store must not fail.
	require.NoError(t, repo.Clear())
}

func TestFileRepository_RoundTrip(t *testing.T) {
	repo := session.NewFileRepository(t.TempDir())

	require.NoError(t, repo.Save(testSnapshot()))

	got, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", got.Token)
	assert.Equal(t, "Test User", got.User.Name)
}

func TestFileRepository_MissingFileIsLoggedOut(t *testing.T) {
	repo := session.NewFileRepository(t.TempDir())

	got, err := repo.Load()
	require.NoError(t, err)
	assert.False(t, got.Authenticated())
}

func TestFileRepository_CorruptFileIsLoggedOut(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0600))

	repo := session.NewFileRepository(dir)
	got, err := repo.Load()
	require.NoError(t, err)
	assert.False(t, got.Authenticated())
}

func TestFileRepository_Clear(t *testing.T) {
	dir := t.TempDir()
	repo := session.NewFileRepository(dir)

	require.NoError(t, repo.Save(testSnapshot()))
	require.NoError(t, repo.Clear())

	_, err := os.Stat(filepath.Join(dir, "session.json"))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, repo.Clear())
}
