// Package db provides the SQLite connection and schema for the event ledger.
package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// DB wraps the SQLite database connection
type DB struct {
	*sql.DB
}

// Open opens the database and initializes the schema
func Open(dbPath string) (*DB, error) {
	dsn := dbPath + "?_journal_mode=WAL"
	if isMemory(dbPath) {
		dsn = dbPath
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database
	if isMemory(dbPath) {
		db.SetMaxOpenConns(1)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &DB{db}, nil
}

func isMemory(path string) bool {
	return path == MemoryPath || strings.HasPrefix(path, "file::memory:")
}

// initSchema creates all required tables
func initSchema(db *sql.DB) error {
	// Event ledger - append-only mirror of the controller's event log.
	// Rows are grouped by session; nothing is ever read back into the controller.
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS event_ledger (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			stimulus TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			message TEXT NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_ledger_session_seq ON event_ledger(session_id, seq);
		CREATE INDEX IF NOT EXISTS idx_ledger_stimulus ON event_ledger(session_id, stimulus, seq);
	`)
	if err != nil {
		return fmt.Errorf("failed to create event_ledger table: %w", err)
	}

	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
