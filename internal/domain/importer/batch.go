package importer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// batchRequest accumulates aliased create_item sub-mutations and renders
// one mutation document per batch. Construction is kept separate from
// value formatting so the wire shape can be tested in isolation.
type batchRequest struct {
	aliases []string
	defs    []string
	parts   []string
	vars    map[string]any
}

func newBatchRequest(boardID, groupID string) *batchRequest {
	return &batchRequest{
		vars: map[string]any{
			"boardId": boardID,
			"groupId": groupID,
		},
	}
}

// Add appends one row. rowIndex is the row's position in the whole input
// table, keeping aliases unique across batches.
func (b *batchRequest) Add(rowIndex int, itemName string, columnValues map[string]any) error {
	encoded, err := json.Marshal(columnValues)
	if err != nil {
		return fmt.Errorf("encoding column values for row %d: %w", rowIndex, err)
	}

	alias := fmt.Sprintf("item_%d", rowIndex)
	nameVar := fmt.Sprintf("itemName_%d", rowIndex)
	valuesVar := fmt.Sprintf("columnValues_%d", rowIndex)

	b.aliases = append(b.aliases, alias)
	b.defs = append(b.defs, fmt.Sprintf("$%s: String!", nameVar), fmt.Sprintf("$%s: JSON!", valuesVar))
	b.vars[nameVar] = itemName
	b.vars[valuesVar] = string(encoded)
	b.parts = append(b.parts, fmt.Sprintf(
		"%s: create_item(board_id: $boardId, group_id: $groupId, item_name: $%s, column_values: $%s) { id }",
		alias, nameVar, valuesVar,
	))
	return nil
}

func (b *batchRequest) Len() int {
	return len(b.aliases)
}

// Document renders the full mutation for this batch.
func (b *batchRequest) Document() string {
	return fmt.Sprintf(
		"mutation CreateItems($boardId: ID!, $groupId: String!, %s) {\n  %s\n}",
		strings.Join(b.defs, ", "),
		strings.Join(b.parts, "\n  "),
	)
}

func (b *batchRequest) Variables() map[string]any {
	return b.vars
}

// CollectIDs harvests the created item id behind every alias of this
// batch from a successful response.
func (b *batchRequest) CollectIDs(data json.RawMessage) ([]string, error) {
	var results map[string]struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decoding batch response: %w", err)
	}

	ids := make([]string, 0, len(b.aliases))
	for _, alias := range b.aliases {
		if res, ok := results[alias]; ok && res.ID != "" {
			ids = append(ids, res.ID)
		}
	}
	return ids, nil
}
