package importer

import (
	"log/slog"
	"strings"

	"github.com/rpggio/boardsync/internal/tabular"
)

// buildAutoMap matches input fields to catalog column titles and names
// the item-name source field. Explicit overrides win over
// case-insensitive, whitespace-trimmed equality. Unmatched fields are
// dropped with a warning; input tables commonly carry extra bookkeeping
// fields.
func buildAutoMap(table tabular.Table, titles []string, overrides map[string]string, logger *slog.Logger) (map[string]string, string, error) {
	nameField := table.Fields[0]
	if strings.TrimSpace(nameField) == "" {
		return nil, "", ErrItemNameUnresolved
	}
	if logger != nil {
		logger.Info("using first field as item name source", "field", nameField)
	}

	autoMap := map[string]string{}
	for _, field := range table.Fields {
		normalized := strings.ToLower(strings.TrimSpace(field))
		matched := false
		for _, title := range titles {
			isOverride := overrides[field] == title
			isDirect := overrides[field] == "" && normalized == strings.ToLower(strings.TrimSpace(title))
			if isOverride || isDirect {
				autoMap[field] = title
				matched = true
				break
			}
		}
		if !matched && field != nameField {
			if logger != nil {
				logger.Warn("no matching board column for field, dropping", "field", field)
			}
		}
	}
	return autoMap, nameField, nil
}
