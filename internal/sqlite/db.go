// Package sqlite persists the column catalog between process runs.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	*sql.DB
}

// New opens (or creates) the cache database at dataSourceName.
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema if it is not present.
func (db *DB) RunMigrations() error {
	migration := `
CREATE TABLE IF NOT EXISTS board_columns (
    board_id     TEXT NOT NULL,
    board_name   TEXT NOT NULL,
    title        TEXT NOT NULL,
    column_id    TEXT NOT NULL,
    column_type  TEXT NOT NULL,
    refreshed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (board_id, title)
);
CREATE INDEX IF NOT EXISTS idx_board_columns_board ON board_columns(board_id);
`
	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
