package board

// Item is one work record fetched from a board.
type Item struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Group    GroupRef      `json:"group"`
	Columns  []ColumnValue `json:"columns"`
	Subitems []Subitem     `json:"subitems"`
}

// Subitem is a nested child record of an Item.
type Subitem struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Columns []ColumnValue `json:"columns"`
}

// GroupRef names the group an item belongs to.
type GroupRef struct {
	Title string `json:"title"`
}

// ColumnValue is one column cell as returned by the API.
type ColumnValue struct {
	Column       ColumnRef `json:"column"`
	Text         string    `json:"text"`
	DisplayValue string    `json:"display_value"`
}

// ColumnRef names the column a value belongs to.
type ColumnRef struct {
	Title string `json:"title"`
}

// Value returns the cell's display text. Mirror-style columns carry it
// in display_value instead of text.
func (c ColumnValue) Value() string {
	if c.Text != "" {
		return c.Text
	}
	return c.DisplayValue
}
