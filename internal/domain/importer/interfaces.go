package importer

import (
	"context"
	"encoding/json"

	"github.com/rpggio/boardsync/internal/domain/catalog"
)

// API issues GraphQL documents against the remote platform.
type API interface {
	Send(ctx context.Context, document string, variables map[string]any) (json.RawMessage, error)
}

// Catalog resolves column titles for the target board.
type Catalog interface {
	Get(ctx context.Context, title string) (catalog.Descriptor, error)
	Titles() []string
}

// Counter reports a board's current total item count, used to reconcile
// ambiguous timeout outcomes.
type Counter interface {
	ItemCount(ctx context.Context, boardID string) (int, error)
}
