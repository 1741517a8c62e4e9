// Package session owns the client-side authentication state: who is logged
// in, the bearer token, and the last known integration-status snapshot. The
// snapshot survives restarts through a Repository, so the app can restore a
// session optimistically without re-contacting the auth backend.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agenthub-io/agenthub/internal/api"
)

// IntegrationSnapshot is the cached reachability of the management tool
// connection. IsConfigured means a connection was once successfully
// established, not that it is still reachable — it goes stale and is
// re-validated on each workspace entry.
type IntegrationSnapshot struct {
	IsOnline     bool `json:"isOnline"`
	IsConfigured bool `json:"isConfigured"`
}

// Snapshot is everything persisted across restarts. Token and User are set
// and cleared together; a zero Snapshot means "not logged in".
type Snapshot struct {
	Token       string              `json:"token"`
	User        api.User            `json:"user"`
	Integration IntegrationSnapshot `json:"jiraStatus"`
}

// Authenticated reports whether the snapshot holds a live session.
func (s Snapshot) Authenticated() bool {
	return s.Token != ""
}

// Repository persists the session snapshot. Implementations: SQLiteRepository
// (default) and FileRepository (JSON, selectable via config).
type Repository interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
	Clear() error
	Close() error
}

const sessionFileName = "session.json"

// FileRepository stores the snapshot as a JSON file in the config directory.
type FileRepository struct {
	path string
}

// NewFileRepository creates a file-backed repository at dir/session.json.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{path: filepath.Join(dir, sessionFileName)}
}

func (r *FileRepository) Load() (Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, nil
		}
		return Snapshot{}, fmt.Errorf("read session file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// A corrupt session file is treated as logged out, not fatal.
		return Snapshot{}, nil
	}
	return snap, nil
}

func (r *FileRepository) Save(snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	// 0600: the file holds a bearer token.
	return os.WriteFile(r.path, data, 0600)
}

func (r *FileRepository) Clear() error {
	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (r *FileRepository) Close() error { return nil }
