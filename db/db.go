// ABOUTME: Database connection management and initialization
// ABOUTME: Handles opening SQLite database with WAL mode at XDG path
package db

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// openDSN enables WAL, waits out writer contention instead of failing fast,
// and turns on foreign key enforcement for the connector_id references in the
// schema (sqlite leaves it off by default).
const openDSN = "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

func OpenDatabase(path string) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path+openDSN)
	if err != nil {
		return nil, err
	}

	// Single connection avoids database locked errors under SQLite
	db.SetMaxOpenConns(1)

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
