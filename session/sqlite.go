package session

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS session (
	id            INTEGER PRIMARY KEY CHECK (id = 1),
	token         TEXT    NOT NULL DEFAULT '',
	email         TEXT    NOT NULL DEFAULT '',
	name          TEXT    NOT NULL DEFAULT '',
	role          TEXT    NOT NULL DEFAULT '',
	is_online     INTEGER NOT NULL DEFAULT 0,
	is_configured INTEGER NOT NULL DEFAULT 0,
	updated_at    TEXT    NOT NULL DEFAULT ''
);
`

// SQLiteRepository is a Repository backed by a single-row SQLite table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (or creates) a SQLite database at dbPath and runs
// schema migrations. Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run schema migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close releases the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Load() (Snapshot, error) {
	const q = `SELECT token, email, name, role, is_online, is_configured FROM session WHERE id = 1`

	var snap Snapshot
	var online, configured int
	err := r.db.QueryRow(q).Scan(
		&snap.Token,
		&snap.User.Email,
		&snap.User.Name,
		&snap.User.Role,
		&online,
		&configured,
	)
	if err == sql.ErrNoRows {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("load session: %w", err)
	}
	snap.Integration.IsOnline = online != 0
	snap.Integration.IsConfigured = configured != 0
	return snap, nil
}

func (r *SQLiteRepository) Save(snap Snapshot) error {
	const q = `
		INSERT INTO session (id, token, email, name, role, is_online, is_configured, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			email = excluded.email,
			name = excluded.name,
			role = excluded.role,
			is_online = excluded.is_online,
			is_configured = excluded.is_configured,
			updated_at = excluded.updated_at
	`
	_, err := r.db.Exec(q,
		snap.Token,
		snap.User.Email,
		snap.User.Name,
		snap.User.Role,
		boolInt(snap.Integration.IsOnline),
		boolInt(snap.Integration.IsConfigured),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM session`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
