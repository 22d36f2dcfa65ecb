package importer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/boardsync/internal/domain/catalog"
	"github.com/rpggio/boardsync/internal/mocks"
	"github.com/rpggio/boardsync/internal/tabular"
	"github.com/rpggio/boardsync/internal/transport"
)

func newTestCatalog() *mocks.Catalog {
	cat := &mocks.Catalog{}
	cat.On("Titles").Return([]string{"Status"})
	cat.On("Get", mock.Anything, "Status").
		Return(catalog.Descriptor{Title: "Status", ID: "status", Type: "status"}, nil)
	return cat
}

func fourRowTable() tabular.Table {
	return tabular.Table{
		Fields: []string{"task", "status"},
		Rows: []tabular.Row{
			{"task": "a", "status": "Done"},
			{"task": "b", "status": "Open"},
			{"task": "c", "status": "Done"},
			{"task": "d"},
		},
	}
}

// fakeClock advances a fixed step on every reading.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func silence(w *Writer) *Writer {
	w.now = (&fakeClock{t: time.Unix(0, 0)}).now
	w.pause = func(context.Context, time.Duration) error { return nil }
	return w
}

func TestCreateItems_CollectsIDsAcrossBatches(t *testing.T) {
	ctx := context.Background()
	api := &mocks.API{}
	api.On("Send", ctx, mock.Anything, mock.Anything).
		Return(json.RawMessage(`{"item_0":{"id":"100"},"item_1":{"id":"101"}}`), nil).Once()
	api.On("Send", ctx, mock.Anything, mock.Anything).
		Return(json.RawMessage(`{"item_2":{"id":"102"},"item_3":{"id":"103"}}`), nil).Once()

	w := silence(NewWriter(api, newTestCatalog(), &mocks.Counter{}, nil, WithBatchSize(2)))
	summary, err := w.CreateItems(ctx, "b1", "g1", fourRowTable(), nil)
	require.NoError(t, err)

	require.Equal(t, 4, summary.TotalRows)
	require.Equal(t, 4, summary.SuccessCount)
	require.Equal(t, 0, summary.FailedCount)
	require.Equal(t, []string{"100", "101", "102", "103"}, summary.CreatedIDs)
	require.Empty(t, summary.TimeoutBatches)
	require.Empty(t, summary.FailedBatches)
	api.AssertNumberOfCalls(t, "Send", 2)
}

func TestCreateItems_EmptyInput(t *testing.T) {
	w := NewWriter(&mocks.API{}, newTestCatalog(), nil, nil)

	_, err := w.CreateItems(context.Background(), "b1", "g1", tabular.Table{}, nil)
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = w.CreateItems(context.Background(), "b1", "g1", tabular.Table{
		Fields: []string{"task"},
	}, nil)
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestCreateItems_NameUnresolvedBeforeAnyNetworkCall(t *testing.T) {
	api := &mocks.API{}
	w := NewWriter(api, newTestCatalog(), nil, nil)

	_, err := w.CreateItems(context.Background(), "b1", "g1", tabular.Table{
		Fields: []string{"  ", "status"},
		Rows:   []tabular.Row{{"status": "Done"}},
	}, nil)
	require.ErrorIs(t, err, ErrItemNameUnresolved)
	api.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateItems_CriticalFailureDoesNotBlockNextBatch(t *testing.T) {
	ctx := context.Background()
	api := &mocks.API{}
	api.On("Send", ctx, mock.Anything, mock.Anything).
		Return(nil, &transport.APIError{StatusCode: 500, Message: "boom"}).Once()
	api.On("Send", ctx, mock.Anything, mock.Anything).
		Return(json.RawMessage(`{"item_2":{"id":"102"},"item_3":{"id":"103"}}`), nil).Once()

	w := silence(NewWriter(api, newTestCatalog(), &mocks.Counter{}, nil, WithBatchSize(2)))
	summary, err := w.CreateItems(ctx, "b1", "g1", fourRowTable(), nil)
	require.NoError(t, err)

	require.Equal(t, 2, summary.SuccessCount)
	require.Equal(t, 2, summary.FailedCount)
	require.Len(t, summary.FailedBatches, 1)
	require.Equal(t, 1, summary.FailedBatches[0].Batch)
	require.Equal(t, 2, summary.FailedBatches[0].ItemCount)
	require.Contains(t, summary.FailedBatches[0].Error, "boom")
	require.Equal(t, []string{"102", "103"}, summary.CreatedIDs)
	api.AssertNumberOfCalls(t, "Send", 2)
}

func TestCreateItems_TimeoutDefersJudgmentToReconciliation(t *testing.T) {
	ctx := context.Background()
	api := &mocks.API{}
	api.On("Send", ctx, mock.Anything, mock.Anything).
		Return(json.RawMessage(`{"item_0":{"id":"100"},"item_1":{"id":"101"}}`), nil).Once()
	api.On("Send", ctx, mock.Anything, mock.Anything).
		Return(nil, transport.ErrGatewayTimeout).Once()

	counter := &mocks.Counter{}
	counter.On("ItemCount", ctx, "b1").Return(3, nil)

	w := silence(NewWriter(api, newTestCatalog(), counter, nil, WithBatchSize(2)))
	summary, err := w.CreateItems(ctx, "b1", "g1", fourRowTable(), nil)
	require.NoError(t, err)

	require.Len(t, summary.TimeoutBatches, 1)
	require.Equal(t, TimeoutBatch{Batch: 2, ItemCount: 2}, summary.TimeoutBatches[0])
	// 4 input rows, 3 on the board, 0 critical: one item never landed.
	require.Equal(t, 1, summary.UncreatedAfterTimeout)
	require.Equal(t, 3, summary.SuccessCount)
	require.Equal(t, 1, summary.FailedCount)
}

func TestCreateItems_TimeoutThatActuallyLanded(t *testing.T) {
	ctx := context.Background()
	api := &mocks.API{}
	api.On("Send", ctx, mock.Anything, mock.Anything).
		Return(nil, transport.ErrGatewayTimeout).Twice()

	counter := &mocks.Counter{}
	counter.On("ItemCount", ctx, "b1").Return(4, nil)

	w := silence(NewWriter(api, newTestCatalog(), counter, nil, WithBatchSize(2)))
	summary, err := w.CreateItems(ctx, "b1", "g1", fourRowTable(), nil)
	require.NoError(t, err)

	require.Len(t, summary.TimeoutBatches, 2)
	require.Equal(t, 0, summary.UncreatedAfterTimeout)
	require.Equal(t, 4, summary.SuccessCount)
	require.Equal(t, 0, summary.FailedCount)
}

func TestReconcile_Arithmetic(t *testing.T) {
	ctx := context.Background()

	run := func(boardCount, criticalRows int) *Summary {
		counter := &mocks.Counter{}
		counter.On("ItemCount", ctx, "b1").Return(boardCount, nil)
		w := NewWriter(&mocks.API{}, newTestCatalog(), counter, nil)

		summary := &Summary{
			TotalRows:      100,
			TimeoutBatches: []TimeoutBatch{{Batch: 1, ItemCount: 10}},
		}
		if criticalRows > 0 {
			summary.FailedBatches = []FailedBatch{{Batch: 2, ItemCount: criticalRows}}
		}
		require.NoError(t, w.reconcile(ctx, "b1", summary))
		return summary
	}

	require.Equal(t, 5, run(90, 5).UncreatedAfterTimeout)
	require.Equal(t, 0, run(95, 5).UncreatedAfterTimeout)
}

func TestCreateItems_PacingSleepsRemainderOfWindow(t *testing.T) {
	ctx := context.Background()
	api := &mocks.API{}
	api.On("Send", ctx, mock.Anything, mock.Anything).
		Return(json.RawMessage(`{}`), nil)

	var pauses []time.Duration
	clock := &fakeClock{t: time.Unix(0, 0), step: 10 * time.Second}

	w := NewWriter(api, newTestCatalog(), &mocks.Counter{}, nil,
		WithBatchSize(2), WithRateWindow(60*time.Second))
	w.now = clock.now
	w.pause = func(_ context.Context, d time.Duration) error {
		pauses = append(pauses, d)
		return nil
	}

	_, err := w.CreateItems(ctx, "b1", "g1", fourRowTable(), nil)
	require.NoError(t, err)

	// Each batch reads the clock twice, so elapsed is one 10s step;
	// only the non-final batch pauses.
	require.Equal(t, []time.Duration{50 * time.Second}, pauses)
}

func TestCreateItems_SlowBatchSkipsPause(t *testing.T) {
	ctx := context.Background()
	api := &mocks.API{}
	api.On("Send", ctx, mock.Anything, mock.Anything).
		Return(json.RawMessage(`{}`), nil)

	var pauses []time.Duration
	clock := &fakeClock{t: time.Unix(0, 0), step: 70 * time.Second}

	w := NewWriter(api, newTestCatalog(), &mocks.Counter{}, nil,
		WithBatchSize(2), WithRateWindow(60*time.Second))
	w.now = clock.now
	w.pause = func(_ context.Context, d time.Duration) error {
		pauses = append(pauses, d)
		return nil
	}

	_, err := w.CreateItems(ctx, "b1", "g1", fourRowTable(), nil)
	require.NoError(t, err)
	require.Empty(t, pauses)
}

func TestCreateItems_OmitsAbsentValues(t *testing.T) {
	ctx := context.Background()
	api := &mocks.API{}

	var gotVars map[string]any
	api.On("Send", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotVars = args.Get(2).(map[string]any)
		}).
		Return(json.RawMessage(`{}`), nil)

	w := silence(NewWriter(api, newTestCatalog(), &mocks.Counter{}, nil))
	table := tabular.Table{
		Fields: []string{"task", "status"},
		Rows: []tabular.Row{
			{"task": "with", "status": "Done"},
			{"task": "without", "status": nil},
		},
	}
	_, err := w.CreateItems(ctx, "b1", "g1", table, nil)
	require.NoError(t, err)

	require.JSONEq(t, `{"status":{"label":"Done"}}`, gotVars["columnValues_0"].(string))
	require.JSONEq(t, `{}`, gotVars["columnValues_1"].(string))
	require.Equal(t, "with", gotVars["itemName_0"])
	require.Equal(t, "without", gotVars["itemName_1"])
}
