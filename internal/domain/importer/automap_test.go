package importer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/boardsync/internal/tabular"
)

var boardTitles = []string{"Status", "Deadline", "Owner"}

func TestBuildAutoMap_CaseInsensitiveTrimmedMatch(t *testing.T) {
	table := tabular.Table{
		Fields: []string{"task", "  status ", "deadline", "bookkeeping"},
		Rows:   []tabular.Row{{}},
	}

	autoMap, nameField, err := buildAutoMap(table, boardTitles, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "task", nameField)
	require.Equal(t, map[string]string{
		"  status ": "Status",
		"deadline":  "Deadline",
	}, autoMap)
}

func TestBuildAutoMap_Idempotent(t *testing.T) {
	table := tabular.Table{
		Fields: []string{"task", "status", "due"},
		Rows:   []tabular.Row{{}},
	}
	overrides := map[string]string{"due": "Deadline"}

	first, name1, err := buildAutoMap(table, boardTitles, overrides, nil)
	require.NoError(t, err)
	second, name2, err := buildAutoMap(table, boardTitles, overrides, nil)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, name1, name2)
}

func TestBuildAutoMap_OverrideWinsOverDirectMatch(t *testing.T) {
	table := tabular.Table{
		Fields: []string{"task", "status"},
		Rows:   []tabular.Row{{}},
	}
	// "status" would match "Status" case-insensitively, but the caller
	// pinned it to Owner.
	overrides := map[string]string{"status": "Owner"}

	autoMap, _, err := buildAutoMap(table, boardTitles, overrides, nil)
	require.NoError(t, err)
	require.Equal(t, "Owner", autoMap["status"])
}

func TestBuildAutoMap_UnmatchedFieldsDropped(t *testing.T) {
	table := tabular.Table{
		Fields: []string{"task", "internal_notes"},
		Rows:   []tabular.Row{{}},
	}

	autoMap, _, err := buildAutoMap(table, boardTitles, nil, nil)
	require.NoError(t, err)
	require.NotContains(t, autoMap, "internal_notes")
}

func TestBuildAutoMap_BlankNameFieldFails(t *testing.T) {
	table := tabular.Table{
		Fields: []string{"   ", "status"},
		Rows:   []tabular.Row{{}},
	}

	_, _, err := buildAutoMap(table, boardTitles, nil, nil)
	require.ErrorIs(t, err, ErrItemNameUnresolved)
}
