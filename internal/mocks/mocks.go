// Package mocks provides shared testify mocks for the service interfaces.
package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/rpggio/boardsync/internal/domain/catalog"
)

// API is a mock for the GraphQL transport interface.
type API struct {
	mock.Mock
}

func (m *API) Send(ctx context.Context, document string, variables map[string]any) (json.RawMessage, error) {
	args := m.Called(ctx, document, variables)
	if data, ok := args.Get(0).(json.RawMessage); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

// CatalogStore is a mock for catalog.Store.
type CatalogStore struct {
	mock.Mock
}

func (m *CatalogStore) Load(ctx context.Context, boardID string) (map[string]catalog.Descriptor, error) {
	args := m.Called(ctx, boardID)
	if cols, ok := args.Get(0).(map[string]catalog.Descriptor); ok {
		return cols, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogStore) Replace(ctx context.Context, boardID, boardName string, columns map[string]catalog.Descriptor) error {
	args := m.Called(ctx, boardID, boardName, columns)
	return args.Error(0)
}

// Catalog is a mock for the importer's and reader's catalog view.
type Catalog struct {
	mock.Mock
}

func (m *Catalog) Get(ctx context.Context, title string) (catalog.Descriptor, error) {
	args := m.Called(ctx, title)
	return args.Get(0).(catalog.Descriptor), args.Error(1)
}

func (m *Catalog) ID(ctx context.Context, title string) (string, error) {
	args := m.Called(ctx, title)
	return args.String(0), args.Error(1)
}

func (m *Catalog) Titles() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

// Counter is a mock for the importer's board item counter.
type Counter struct {
	mock.Mock
}

func (m *Counter) ItemCount(ctx context.Context, boardID string) (int, error) {
	args := m.Called(ctx, boardID)
	return args.Int(0), args.Error(1)
}
