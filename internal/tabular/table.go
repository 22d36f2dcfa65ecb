// Package tabular holds the ordered row format exchanged with the board
// services: what the reader produces and the batch writer consumes.
package tabular

// Row maps a field name to a scalar value. A missing or nil value means
// the field is absent for that row.
type Row map[string]any

// Table is an ordered sequence of rows over a fixed field list. Field
// order is significant: by convention the first field names the item.
type Table struct {
	Fields []string
	Rows   []Row
}

// Empty reports whether the table has no rows or no fields.
func (t Table) Empty() bool {
	return len(t.Rows) == 0 || len(t.Fields) == 0
}
