// Package board reads items out of a remote board: cursor-paginated
// retrieval with optional server-side date filtering, plus the board's
// total item count.
package board

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/boardsync/internal/transport"
)

// Reader walks a board's pagination protocol. Reads are not rate
// limited; only writes count against the request budget.
type Reader struct {
	api     API
	catalog Catalog
	logger  *slog.Logger
	now     func() time.Time
}

// NewReader creates a Reader.
func NewReader(api API, catalog Catalog, logger *slog.Logger) *Reader {
	return &Reader{api: api, catalog: catalog, logger: logger, now: time.Now}
}

type pageResponse struct {
	Boards []struct {
		ItemsPage struct {
			Cursor *string `json:"cursor"`
			Items  []Item  `json:"items"`
		} `json:"items_page"`
	} `json:"boards"`
}

type countResponse struct {
	Boards []struct {
		ItemsCount int `json:"items_count"`
	} `json:"boards"`
}

// FetchAll collects every item (and nested sub-item) of a board,
// optionally pre-filtered server-side by a date range. Response order is
// preserved across pages.
func (r *Reader) FetchAll(ctx context.Context, boardID string, opts FetchOptions) ([]Item, error) {
	var all []Item

	var first json.RawMessage
	var err error
	if opts.FilterByDate {
		if opts.DateColumn == "" {
			return nil, ErrDateColumnRequired
		}
		start, end := opts.StartDate, opts.EndDate
		if start == "" && end == "" {
			start, end = previousMonthRange(r.now())
		}
		columnID, err := r.catalog.ID(ctx, opts.DateColumn)
		if err != nil {
			return nil, err
		}
		rules := []map[string]any{{
			"column_id":     columnID,
			"compare_value": []string{start, end},
			"operator":      "between",
		}}
		if r.logger != nil {
			r.logger.Info("fetching first page with date filter",
				"board", boardID, "column", opts.DateColumn, "from", start, "to", end)
		}
		first, err = r.api.Send(ctx, transport.QueryItemsFiltered, map[string]any{
			"boardId": boardID,
			"rules":   rules,
		})
		if err != nil {
			return nil, err
		}
	} else {
		if r.logger != nil {
			r.logger.Warn("fetching without date filter, cost scales with total item count", "board", boardID)
		}
		first, err = r.api.Send(ctx, transport.QueryItemsPage, map[string]any{"boardId": boardID})
		if err != nil {
			return nil, err
		}
	}

	items, cursor, err := parsePage(first)
	if err != nil {
		return nil, err
	}
	all = append(all, items...)

	for cursor != nil {
		data, err := r.api.Send(ctx, transport.QueryItemsPage, map[string]any{
			"boardId": boardID,
			"cursor":  *cursor,
		})
		if err != nil {
			return nil, err
		}
		items, next, err := parsePage(data)
		if err != nil {
			return nil, err
		}
		if items == nil && next == nil {
			break
		}
		all = append(all, items...)
		cursor = next
		if r.logger != nil && cursor != nil {
			r.logger.Info("fetched page", "board", boardID, "items_so_far", len(all))
		}
	}

	if opts.Group != "" {
		all = filterByGroup(all, opts.Group)
	}
	if r.logger != nil {
		r.logger.Info("fetch complete", "board", boardID, "items", len(all))
	}
	return all, nil
}

// ItemCount returns the board's current total item count.
func (r *Reader) ItemCount(ctx context.Context, boardID string) (int, error) {
	data, err := r.api.Send(ctx, transport.QueryItemCount, map[string]any{"boardId": boardID})
	if err != nil {
		return 0, err
	}
	var resp countResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return 0, fmt.Errorf("decoding item count for board %s: %w", boardID, err)
	}
	if len(resp.Boards) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrBoardNotFound, boardID)
	}
	return resp.Boards[0].ItemsCount, nil
}

func parsePage(data json.RawMessage) ([]Item, *string, error) {
	var resp pageResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, nil, fmt.Errorf("decoding items page: %w", err)
	}
	if len(resp.Boards) == 0 {
		return nil, nil, nil
	}
	page := resp.Boards[0].ItemsPage
	return page.Items, page.Cursor, nil
}

func filterByGroup(items []Item, group string) []Item {
	var kept []Item
	for _, item := range items {
		if item.Group.Title == group {
			kept = append(kept, item)
		}
	}
	return kept
}

// previousMonthRange returns the first and last calendar day of the
// month before now, as YYYY-MM-DD.
func previousMonthRange(now time.Time) (string, string) {
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastOfPrevMonth := firstOfThisMonth.AddDate(0, 0, -1)
	firstOfPrevMonth := time.Date(lastOfPrevMonth.Year(), lastOfPrevMonth.Month(), 1, 0, 0, 0, 0, now.Location())
	return firstOfPrevMonth.Format("2006-01-02"), lastOfPrevMonth.Format("2006-01-02")
}
