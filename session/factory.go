package session

import (
	"path/filepath"

	"github.com/agenthub-io/agenthub/config"
	"github.com/agenthub-io/agenthub/log"
)

// NewRepository creates the session repository selected by config ("sqlite"
// by default, "file" as a fallback). A sqlite open failure degrades to the
// file implementation rather than failing startup.
func NewRepository(cfg *config.Config) (Repository, error) {
	dir, err := config.GetConfigDir()
	if err != nil {
		return nil, err
	}

	if cfg.SessionStore == "file" {
		return NewFileRepository(dir), nil
	}

	repo, err := NewSQLiteRepository(filepath.Join(dir, "session.db"))
	if err != nil {
		log.WarningLog.Printf("sqlite session store unavailable, falling back to file: %v", err)
		return NewFileRepository(dir), nil
	}
	return repo, nil
}
