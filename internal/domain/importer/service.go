// Package importer bulk-creates board items from tabular input: batched
// aliased mutations, automatic field-to-column mapping, rate pacing
// against the server's request window, and post-hoc reconciliation of
// ambiguous timeout outcomes.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/boardsync/internal/domain/catalog"
	"github.com/rpggio/boardsync/internal/format"
	"github.com/rpggio/boardsync/internal/tabular"
	"github.com/rpggio/boardsync/internal/transport"
)

const (
	defaultBatchSize = 100
	// The server renews its request budget every minute; batch pacing
	// targets that window.
	defaultRateWindow = 60 * time.Second
)

// Writer creates items in bulk. There is no automatic retry of failed or
// timed-out batches; the Summary informs the caller's resubmission
// decision instead.
type Writer struct {
	api       API
	catalog   Catalog
	counter   Counter
	formatter *format.Formatter
	logger    *slog.Logger

	batchSize  int
	rateWindow time.Duration

	now   func() time.Time
	pause func(ctx context.Context, d time.Duration) error
}

// NewWriter creates a Writer.
func NewWriter(api API, cat Catalog, counter Counter, logger *slog.Logger, opts ...Option) *Writer {
	w := &Writer{
		api:        api,
		catalog:    cat,
		counter:    counter,
		formatter:  format.New(),
		logger:     logger,
		batchSize:  defaultBatchSize,
		rateWindow: defaultRateWindow,
		now:        time.Now,
		pause:      sleepCtx,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// renderedRow is one input row with its name and wire values resolved,
// before any network traffic.
type renderedRow struct {
	index  int
	name   string
	values map[string]any
}

// CreateItems writes the table into a group. Caller-input problems fail
// before any network call; batch-level failures are classified and
// aggregated into the returned Summary rather than aborting the run.
func (w *Writer) CreateItems(ctx context.Context, boardID, groupID string, table tabular.Table, overrides map[string]string) (*Summary, error) {
	if table.Empty() {
		return nil, ErrEmptyInput
	}

	rows, err := w.renderRows(ctx, table, overrides)
	if err != nil {
		return nil, err
	}

	summary := &Summary{TotalRows: len(rows)}
	batches := batchCount(len(rows), w.batchSize)
	if w.logger != nil {
		w.logger.Info("starting upload", "rows", len(rows), "batches", batches, "batch_size", w.batchSize, "group", groupID)
	}

	for i := 0; i < batches; i++ {
		start := i * w.batchSize
		end := min(start+w.batchSize, len(rows))
		batchStart := w.now()

		req := newBatchRequest(boardID, groupID)
		for _, row := range rows[start:end] {
			if err := req.Add(row.index, row.name, row.values); err != nil {
				return nil, err
			}
		}

		if w.logger != nil {
			w.logger.Info("sending batch", "batch", i+1, "of", batches, "items", req.Len())
		}
		data, err := w.api.Send(ctx, req.Document(), req.Variables())
		switch {
		case err == nil:
			ids, err := req.CollectIDs(data)
			if err != nil {
				return nil, err
			}
			summary.CreatedIDs = append(summary.CreatedIDs, ids...)
		case errors.Is(err, transport.ErrGatewayTimeout):
			// Outcome unknown: the server may have applied the batch.
			// Judgment is deferred to reconciliation.
			if w.logger != nil {
				w.logger.Warn("batch timed out, items may have been created", "batch", i+1)
			}
			summary.TimeoutBatches = append(summary.TimeoutBatches, TimeoutBatch{
				Batch:     i + 1,
				ItemCount: end - start,
			})
		default:
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			if w.logger != nil {
				w.logger.Error("batch failed critically", "batch", i+1)
			}
			summary.FailedBatches = append(summary.FailedBatches, FailedBatch{
				Batch:     i + 1,
				ItemCount: end - start,
				Error:     err.Error(),
			})
		}

		if i < batches-1 {
			elapsed := w.now().Sub(batchStart)
			if wait := w.rateWindow - elapsed; wait > 0 {
				if w.logger != nil {
					w.logger.Info("pacing before next batch", "elapsed", elapsed, "pause", wait)
				}
				if err := w.pause(ctx, wait); err != nil {
					return summary, err
				}
			}
		}
	}

	if err := w.reconcile(ctx, boardID, summary); err != nil {
		return summary, err
	}

	summary.FailedCount = summary.criticalRows() + summary.UncreatedAfterTimeout
	summary.SuccessCount = summary.TotalRows - summary.FailedCount
	if w.logger != nil {
		w.logger.Info("upload complete",
			"created", summary.SuccessCount, "failed", summary.FailedCount,
			"timeout_batches", len(summary.TimeoutBatches))
	}
	return summary, nil
}

// renderRows resolves the column map and formats every row's wire
// values. Any error here is a caller-input problem and precedes all
// network traffic.
func (w *Writer) renderRows(ctx context.Context, table tabular.Table, overrides map[string]string) ([]renderedRow, error) {
	autoMap, nameField, err := buildAutoMap(table, w.catalog.Titles(), overrides, w.logger)
	if err != nil {
		return nil, err
	}

	descriptors := map[string]catalog.Descriptor{}
	for field, title := range autoMap {
		if field == nameField {
			continue
		}
		desc, err := w.catalog.Get(ctx, title)
		if err != nil {
			return nil, err
		}
		descriptors[field] = desc
	}

	rows := make([]renderedRow, 0, len(table.Rows))
	for i, row := range table.Rows {
		name := fmt.Sprintf("Item %d", i)
		if v, ok := row[nameField]; ok && v != nil {
			name = fmt.Sprint(v)
		}

		values := map[string]any{}
		for field, desc := range descriptors {
			v, ok := row[field]
			if !ok || v == nil {
				// Absent values are omitted, not sent as empty.
				continue
			}
			wire, err := w.formatter.Format(v, desc.Type, desc.ID)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			values[desc.ID] = wire
		}
		rows = append(rows, renderedRow{index: i, name: name, values: values})
	}
	return rows, nil
}

// reconcile resolves ambiguous timeout outcomes by comparing the input
// size against the board's observed item count. Best effort: it cannot
// attribute loss to a specific batch, and assumes the board had no
// concurrent writers and no unaccounted pre-existing items.
func (w *Writer) reconcile(ctx context.Context, boardID string, summary *Summary) error {
	if len(summary.TimeoutBatches) == 0 {
		return nil
	}
	if w.logger != nil {
		w.logger.Info("reconciling timeout batches against board count", "batches", len(summary.TimeoutBatches))
	}

	onBoard, err := w.counter.ItemCount(ctx, boardID)
	if err != nil {
		return fmt.Errorf("reconciling timeouts for board %s: %w", boardID, err)
	}

	unaccounted := summary.TotalRows - onBoard - summary.criticalRows()
	if unaccounted < 0 {
		unaccounted = 0
	}
	summary.UncreatedAfterTimeout = unaccounted

	if w.logger != nil {
		if unaccounted > 0 {
			w.logger.Error("timeout batches lost items", "uncreated", unaccounted)
		} else {
			w.logger.Info("all timed-out writes landed on the board")
		}
	}
	return nil
}

func batchCount(rows, size int) int {
	return (rows + size - 1) / size
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
