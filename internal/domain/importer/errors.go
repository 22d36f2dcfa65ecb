package importer

import "errors"

var (
	// ErrEmptyInput indicates a table with no rows or no fields.
	ErrEmptyInput = errors.New("input table is empty or has no fields")
	// ErrItemNameUnresolved indicates no field could serve as the item
	// name source. Every created item requires a name.
	ErrItemNameUnresolved = errors.New("no field resolves as the item name source")
)
