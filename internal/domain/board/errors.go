package board

import "errors"

var (
	// ErrDateColumnRequired indicates date filtering was requested
	// without naming the column to filter on.
	ErrDateColumnRequired = errors.New("date filter requires a column title")
	// ErrBoardNotFound indicates the API returned no board for the id.
	ErrBoardNotFound = errors.New("board not found")
)
