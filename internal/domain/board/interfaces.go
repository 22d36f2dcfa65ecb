package board

import (
	"context"
	"encoding/json"
)

// API issues GraphQL documents against the remote platform.
type API interface {
	Send(ctx context.Context, document string, variables map[string]any) (json.RawMessage, error)
}

// Catalog resolves column titles to wire identifiers.
type Catalog interface {
	ID(ctx context.Context, title string) (string, error)
}
