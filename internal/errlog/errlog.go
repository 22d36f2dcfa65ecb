// Package errlog maintains the persistent API error log: an append-only,
// size-rotated file of structured failure diagnostics, kept separate from
// operational console logging.
package errlog

import (
	"io"
	"log/slog"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Record is one diagnostic entry written on an API failure.
type Record struct {
	Operation  string
	RequestID  string
	StatusCode int
	Elapsed    time.Duration
	Kind       string
	Message    string
}

// Log writes diagnostic records as JSON lines. A nil *Log discards
// records, so components may carry it without guarding.
type Log struct {
	logger *slog.Logger
	closer io.Closer
}

// Open creates a Log backed by a size-rotated file.
func Open(path string, maxSizeMB, maxBackups int) *Log {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}
	return &Log{
		logger: slog.New(slog.NewJSONHandler(lj, nil)),
		closer: lj,
	}
}

// NewWriter creates a Log writing to w, for tests.
func NewWriter(w io.Writer) *Log {
	return &Log{logger: slog.New(slog.NewJSONHandler(w, nil))}
}

// Write appends one diagnostic record.
func (l *Log) Write(rec Record) {
	if l == nil {
		return
	}
	l.logger.Error("api call failed",
		"operation", rec.Operation,
		"request_id", rec.RequestID,
		"status_code", rec.StatusCode,
		"elapsed", rec.Elapsed.String(),
		"kind", rec.Kind,
		"message", rec.Message,
	)
}

// Close releases the underlying file, if any.
func (l *Log) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
