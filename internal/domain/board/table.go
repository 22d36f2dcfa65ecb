package board

import "github.com/rpggio/boardsync/internal/tabular"

// ItemsTable flattens fetched items into tabular rows: the fixed id,
// group and name fields followed by column titles in first-seen order.
func ItemsTable(items []Item) tabular.Table {
	fields := []string{"id", "group", "name"}
	seen := map[string]bool{"id": true, "group": true, "name": true}

	rows := make([]tabular.Row, 0, len(items))
	for _, item := range items {
		row := tabular.Row{
			"id":    item.ID,
			"group": item.Group.Title,
			"name":  item.Name,
		}
		for _, col := range item.Columns {
			title := col.Column.Title
			if title == "" {
				continue
			}
			if !seen[title] {
				seen[title] = true
				fields = append(fields, title)
			}
			row[title] = col.Value()
		}
		rows = append(rows, row)
	}
	return tabular.Table{Fields: fields, Rows: rows}
}

// SubitemsTable flattens the sub-items of fetched items, keeping the
// link to their parent.
func SubitemsTable(items []Item) tabular.Table {
	fields := []string{"parent_id", "parent_name", "subitem_id", "subitem_name"}
	seen := map[string]bool{
		"parent_id": true, "parent_name": true,
		"subitem_id": true, "subitem_name": true,
	}

	var rows []tabular.Row
	for _, item := range items {
		for _, sub := range item.Subitems {
			row := tabular.Row{
				"parent_id":    item.ID,
				"parent_name":  item.Name,
				"subitem_id":   sub.ID,
				"subitem_name": sub.Name,
			}
			for _, col := range sub.Columns {
				title := col.Column.Title
				if title == "" {
					continue
				}
				if !seen[title] {
					seen[title] = true
					fields = append(fields, title)
				}
				row[title] = col.Value()
			}
			rows = append(rows, row)
		}
	}
	return tabular.Table{Fields: fields, Rows: rows}
}
