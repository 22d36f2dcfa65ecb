package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/boardsync/internal/domain/catalog"
)

// CatalogRepository implements catalog.Store on SQLite. One row per
// (board, title); a refresh replaces a board's rows in one transaction.
type CatalogRepository struct {
	db *DB
}

// NewCatalogRepository creates a CatalogRepository.
func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Load returns the persisted column map for a board. An unknown board
// yields an empty map, not an error.
func (r *CatalogRepository) Load(ctx context.Context, boardID string) (map[string]catalog.Descriptor, error) {
	query := `
		SELECT title, column_id, column_type
		FROM board_columns
		WHERE board_id = ?
	`
	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	defer rows.Close()

	columns := map[string]catalog.Descriptor{}
	for rows.Next() {
		var desc catalog.Descriptor
		if err := rows.Scan(&desc.Title, &desc.ID, &desc.Type); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		columns[desc.Title] = desc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog rows: %w", err)
	}
	return columns, nil
}

// Replace swaps a board's persisted map wholesale.
func (r *CatalogRepository) Replace(ctx context.Context, boardID, boardName string, columns map[string]catalog.Descriptor) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin catalog replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM board_columns WHERE board_id = ?`, boardID); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	insert := `
		INSERT INTO board_columns (board_id, board_name, title, column_id, column_type)
		VALUES (?, ?, ?, ?, ?)
	`
	for _, desc := range columns {
		if _, err := tx.ExecContext(ctx, insert, boardID, boardName, desc.Title, desc.ID, desc.Type); err != nil {
			return fmt.Errorf("failed to insert catalog row %q: %w", desc.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog replace: %w", err)
	}
	return nil
}
