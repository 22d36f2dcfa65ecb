package catalog

import "errors"

var (
	// ErrColumnNotFound indicates a title missing even after a refresh.
	ErrColumnNotFound = errors.New("column not found")
	// ErrNoColumns indicates the metadata query yielded no usable columns.
	ErrNoColumns = errors.New("no columns found for board")
)
