package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	conn *sql.DB
	Path string
}

const schema = `
CREATE TABLE IF NOT EXISTS sentences (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	source TEXT,
	text   TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS words (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	word            TEXT NOT NULL UNIQUE,
	is_sentence_end INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS transitions (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	source_id INTEGER NOT NULL REFERENCES words(id) ON DELETE CASCADE,
	target_id INTEGER NOT NULL REFERENCES words(id) ON DELETE CASCADE,
	weight    INTEGER NOT NULL DEFAULT 1,
	UNIQUE(source_id, target_id)
);
`

// OpenDB opens a SQLite database with WAL mode and foreign keys enabled
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for concurrent reads
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return &DB{conn: conn, Path: path}, nil
}

// Migrate creates the corpus tables if they do not exist yet
func (d *DB) Migrate() error {
	if _, err := d.conn.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}
