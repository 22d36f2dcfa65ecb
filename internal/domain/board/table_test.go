package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestItemsTable(t *testing.T) {
	items := []Item{
		{
			ID: "1", Name: "alpha", Group: GroupRef{Title: "g1"},
			Columns: []ColumnValue{
				{Column: ColumnRef{Title: "Status"}, Text: "Done"},
				{Column: ColumnRef{Title: "Mirror"}, DisplayValue: "mirrored"},
			},
		},
		{
			ID: "2", Name: "beta", Group: GroupRef{Title: "g1"},
			Columns: []ColumnValue{
				{Column: ColumnRef{Title: "Status"}, Text: "Open"},
				{Column: ColumnRef{Title: "Extra"}, Text: "x"},
			},
		},
	}

	table := ItemsTable(items)
	require.Equal(t, []string{"id", "group", "name", "Status", "Mirror", "Extra"}, table.Fields)
	require.Len(t, table.Rows, 2)
	require.Equal(t, "Done", table.Rows[0]["Status"])
	require.Equal(t, "mirrored", table.Rows[0]["Mirror"])
	require.Equal(t, "x", table.Rows[1]["Extra"])
}

func TestSubitemsTable(t *testing.T) {
	items := []Item{
		{
			ID: "1", Name: "parent",
			Subitems: []Subitem{
				{
					ID: "s1", Name: "child",
					Columns: []ColumnValue{
						{Column: ColumnRef{Title: "Owner"}, Text: "alice"},
					},
				},
			},
		},
		{ID: "2", Name: "childless"},
	}

	table := SubitemsTable(items)
	require.Equal(t, []string{"parent_id", "parent_name", "subitem_id", "subitem_name", "Owner"}, table.Fields)
	require.Len(t, table.Rows, 1)
	require.Equal(t, "1", table.Rows[0]["parent_id"])
	require.Equal(t, "child", table.Rows[0]["subitem_name"])
	require.Equal(t, "alice", table.Rows[0]["Owner"])
}
