// Package catalog maintains the per-board cache that maps human column
// titles to wire identifiers and types. Lookups self-heal: a miss
// triggers exactly one refresh from the API before failing.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rpggio/boardsync/internal/errlog"
	"github.com/rpggio/boardsync/internal/transport"
)

// Service answers title lookups for one board.
type Service struct {
	boardID   string
	boardName string
	api       API
	store     Store
	logger    *slog.Logger
	errs      *errlog.Log

	mu      sync.RWMutex
	columns map[string]Descriptor
}

// NewService loads the board's map from the store, refreshing from the
// API when nothing is persisted yet.
func NewService(ctx context.Context, boardID, boardName string, api API, store Store, logger *slog.Logger, errs *errlog.Log) (*Service, error) {
	s := &Service{
		boardID:   boardID,
		boardName: boardName,
		api:       api,
		store:     store,
		logger:    logger,
		errs:      errs,
		columns:   map[string]Descriptor{},
	}
	cols, err := store.Load(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("loading catalog cache: %w", err)
	}
	if len(cols) == 0 {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}
	s.columns = cols
	return s, nil
}

type metadataResponse struct {
	Boards []struct {
		MainColumns []struct {
			Title string `json:"title"`
			ID    string `json:"id"`
			Type  string `json:"type"`
		} `json:"main_columns"`
		SubColumns []struct {
			ID     string `json:"id"`
			Type   string `json:"type"`
			Column struct {
				Title string `json:"title"`
			} `json:"column"`
		} `json:"sub_columns"`
	} `json:"boards"`
}

// Refresh rebuilds the whole map from a fresh metadata query, persists
// it, and swaps it in atomically. Partial maps are never observable.
func (s *Service) Refresh(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Info("refreshing column metadata", "board", s.boardID)
	}
	data, err := s.api.Send(ctx, transport.QueryColumnMetadata, map[string]any{"boardId": s.boardID})
	if err != nil {
		return fmt.Errorf("fetching column metadata for board %s: %w", s.boardID, err)
	}

	var resp metadataResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("decoding column metadata for board %s: %w", s.boardID, err)
	}
	if len(resp.Boards) == 0 {
		return fmt.Errorf("%w %s", ErrNoColumns, s.boardID)
	}

	fresh := map[string]Descriptor{}
	board := resp.Boards[0]
	for _, col := range board.MainColumns {
		if col.Title == "" || col.ID == "" || col.Type == "" {
			continue
		}
		fresh[col.Title] = Descriptor{Title: col.Title, ID: col.ID, Type: col.Type}
	}
	// Sub-item columns share the title namespace and win on collision,
	// matching the order the map is assembled in.
	for _, col := range board.SubColumns {
		title := col.Column.Title
		if title == "" || col.ID == "" || col.Type == "" {
			continue
		}
		fresh[title] = Descriptor{Title: title, ID: col.ID, Type: col.Type}
	}
	if len(fresh) == 0 {
		return fmt.Errorf("%w %s", ErrNoColumns, s.boardID)
	}

	if err := s.store.Replace(ctx, s.boardID, s.boardName, fresh); err != nil {
		return fmt.Errorf("persisting catalog for board %s: %w", s.boardID, err)
	}

	s.mu.Lock()
	s.columns = fresh
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("column metadata refreshed", "board", s.boardID, "columns", len(fresh))
	}
	return nil
}

// Get returns the descriptor for an exact title. A miss triggers one
// refresh and one re-lookup before failing with ErrColumnNotFound.
func (s *Service) Get(ctx context.Context, title string) (Descriptor, error) {
	s.mu.RLock()
	desc, ok := s.columns[title]
	s.mu.RUnlock()
	if ok {
		return desc, nil
	}

	if err := s.Refresh(ctx); err != nil {
		s.report(fmt.Sprintf("refresh failed looking up column %q on board %s", title, s.boardID), err)
		return Descriptor{}, err
	}

	s.mu.RLock()
	desc, ok = s.columns[title]
	s.mu.RUnlock()
	if !ok {
		err := fmt.Errorf("%w: %q on board %s", ErrColumnNotFound, title, s.boardID)
		s.report("column lookup failed after refresh", err)
		return Descriptor{}, err
	}
	return desc, nil
}

// ID returns just the wire identifier for a title.
func (s *Service) ID(ctx context.Context, title string) (string, error) {
	desc, err := s.Get(ctx, title)
	if err != nil {
		return "", err
	}
	return desc.ID, nil
}

// Type returns just the column type for a title.
func (s *Service) Type(ctx context.Context, title string) (string, error) {
	desc, err := s.Get(ctx, title)
	if err != nil {
		return "", err
	}
	return desc.Type, nil
}

// Titles returns the currently known column titles.
func (s *Service) Titles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	titles := make([]string, 0, len(s.columns))
	for t := range s.columns {
		titles = append(titles, t)
	}
	return titles
}

func (s *Service) report(msg string, err error) {
	if s.logger != nil {
		s.logger.Error(msg, "board", s.boardID)
	}
	s.errs.Write(errlog.Record{
		Operation: "ColumnLookup",
		Kind:      "catalog_error",
		Message:   msg + ": " + err.Error(),
	})
}
