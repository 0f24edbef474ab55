package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

type DB struct {
	*sql.DB
}

// New creates a new database connection and initializes schema
func New(dbPath string) (*DB, error) {
	if dbPath != MemoryPath {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// sqlite serializes writers anyway; one connection also keeps :memory: shared
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	d := &DB{db}
	if err := d.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return d, nil
}

// initSchema creates database tables if they don't exist
func (db *DB) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS starred_items (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id INTEGER NOT NULL UNIQUE,
			title TEXT NOT NULL,
			url TEXT NOT NULL DEFAULT '',
			by_user TEXT NOT NULL,
			domain TEXT NOT NULL DEFAULT '',
			starred_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY,
			rank INTEGER NOT NULL,
			title TEXT NOT NULL,
			by_user TEXT NOT NULL,
			url TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL DEFAULT 0,
			time INTEGER NOT NULL,
			descendants INTEGER,
			type TEXT NOT NULL DEFAULT 'story',
			text TEXT NOT NULL DEFAULT '',
			fetched_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_items_rank ON items(rank);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}
