package importer

import (
	"time"

	"github.com/rpggio/boardsync/internal/format"
)

// Option configures a Writer.
type Option func(*Writer)

// WithBatchSize sets the number of rows per mutation request.
func WithBatchSize(n int) Option {
	return func(w *Writer) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

// WithRateWindow sets the server's rate-limit renewal period that batch
// pacing targets.
func WithRateWindow(d time.Duration) Option {
	return func(w *Writer) {
		if d > 0 {
			w.rateWindow = d
		}
	}
}

// WithFormatter replaces the default column value formatter, e.g. to
// carry column-id-specific conversions.
func WithFormatter(f *format.Formatter) Option {
	return func(w *Writer) {
		if f != nil {
			w.formatter = f
		}
	}
}
