package catalog

import (
	"context"
	"encoding/json"
)

// API issues GraphQL documents against the remote platform.
type API interface {
	Send(ctx context.Context, document string, variables map[string]any) (json.RawMessage, error)
}

// Store persists a board's column map between process runs.
type Store interface {
	// Load returns the persisted map for a board, empty when none exists.
	Load(ctx context.Context, boardID string) (map[string]Descriptor, error)
	// Replace swaps the persisted map for a board wholesale.
	Replace(ctx context.Context, boardID, boardName string, columns map[string]Descriptor) error
}
