// Package registry provides SQLite-backed bookkeeping of generated index
// blocks: which notes carry one, of what kind, and the checksum of the
// last rendered block.
package registry

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS waypoints (
	path       TEXT NOT NULL,
	kind       TEXT NOT NULL,
	checksum   TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (path, kind)
);

CREATE INDEX IF NOT EXISTS idx_waypoints_path ON waypoints(path);
`

// Row is one generated index block.
type Row struct {
	Path      string    `json:"path"`
	Kind      string    `json:"kind"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DB wraps a sql.DB with registry operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("registry: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("registry: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("registry: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Upsert records (or refreshes) a generated block.
func (db *DB) Upsert(path, kind, checksum string) error {
	_, err := db.conn.Exec(`
		INSERT INTO waypoints (path, kind, checksum, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path, kind) DO UPDATE SET
			checksum   = excluded.checksum,
			updated_at = excluded.updated_at
	`, path, kind, checksum, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("registry: upsert: %w", err)
	}
	return nil
}

// Delete removes every row for a note path.
func (db *DB) Delete(path string) error {
	if _, err := db.conn.Exec(`DELETE FROM waypoints WHERE path = ?`, path); err != nil {
		return fmt.Errorf("registry: delete: %w", err)
	}
	return nil
}

// DeleteTree removes every row under a folder path and returns the
// affected note paths.
func (db *DB) DeleteTree(dir string) ([]string, error) {
	rows, err := db.conn.Query(`SELECT DISTINCT path FROM waypoints WHERE path LIKE ? || '/%'`, dir)
	if err != nil {
		return nil, fmt.Errorf("registry: delete tree: %w", err)
	}
	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			rows.Close()
			return nil, err
		}
		paths = append(paths, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}
	if _, err := db.conn.Exec(`DELETE FROM waypoints WHERE path LIKE ? || '/%'`, dir); err != nil {
		return nil, fmt.Errorf("registry: delete tree: %w", err)
	}
	return paths, nil
}

// GetChecksum returns the stored block checksum, or "" when absent.
func (db *DB) GetChecksum(path, kind string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM waypoints WHERE path = ? AND kind = ?`, path, kind).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// List returns every registered block, ordered by path.
func (db *DB) List() ([]Row, error) {
	rows, err := db.conn.Query(`SELECT path, kind, checksum, updated_at FROM waypoints ORDER BY path, kind`)
	if err != nil {
		return nil, fmt.Errorf("registry: list: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Path, &r.Kind, &r.Checksum, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// AllPaths returns every registered note path.
func (db *DB) AllPaths() (map[string]struct{}, error) {
	rows, err := db.conn.Query(`SELECT DISTINCT path FROM waypoints`)
	if err != nil {
		return nil, fmt.Errorf("registry: all paths: %w", err)
	}
	defer rows.Close()
	out := make(map[string]struct{})
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out[p] = struct{}{}
	}
	return out, rows.Err()
}
