package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/boardsync/internal/domain/catalog"
)

func TestCatalogRepository_ReplaceAndLoad(t *testing.T) {
	db := NewTestDB(t)
	repo := NewCatalogRepository(db)
	ctx := context.Background()

	cols := map[string]catalog.Descriptor{
		"Status":   {Title: "Status", ID: "status", Type: "status"},
		"Deadline": {Title: "Deadline", ID: "date4", Type: "date"},
	}
	require.NoError(t, repo.Replace(ctx, "b1", "creative", cols))

	loaded, err := repo.Load(ctx, "b1")
	require.NoError(t, err)
	require.Equal(t, cols, loaded)
}

func TestCatalogRepository_LoadUnknownBoardIsEmpty(t *testing.T) {
	db := NewTestDB(t)
	repo := NewCatalogRepository(db)

	loaded, err := repo.Load(context.Background(), "missing")
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestCatalogRepository_ReplaceIsWholesale(t *testing.T) {
	db := NewTestDB(t)
	repo := NewCatalogRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, "b1", "creative", map[string]catalog.Descriptor{
		"Old": {Title: "Old", ID: "old", Type: "text"},
	}))
	require.NoError(t, repo.Replace(ctx, "b1", "creative", map[string]catalog.Descriptor{
		"New": {Title: "New", ID: "new", Type: "text"},
	}))

	loaded, err := repo.Load(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Contains(t, loaded, "New")
}

func TestCatalogRepository_BoardsAreIsolated(t *testing.T) {
	db := NewTestDB(t)
	repo := NewCatalogRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, "b1", "creative", map[string]catalog.Descriptor{
		"A": {Title: "A", ID: "a", Type: "text"},
	}))
	require.NoError(t, repo.Replace(ctx, "b2", "design", map[string]catalog.Descriptor{
		"B": {Title: "B", ID: "b", Type: "text"},
	}))

	loaded, err := repo.Load(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Contains(t, loaded, "A")
}
