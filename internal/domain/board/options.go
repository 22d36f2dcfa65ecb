package board

// FetchOptions controls one board fetch.
type FetchOptions struct {
	// FilterByDate applies a server-side between rule on DateColumn.
	// Without explicit dates the previous calendar month is used.
	FilterByDate bool
	DateColumn   string
	StartDate    string // YYYY-MM-DD
	EndDate      string // YYYY-MM-DD
	// Group, when set, keeps only items whose group title matches
	// exactly. Applied client-side after retrieval.
	Group string
}

// DefaultFetchOptions returns the conventional fetch: date-filtered on
// the given column over the previous month.
func DefaultFetchOptions(dateColumn string) FetchOptions {
	return FetchOptions{FilterByDate: true, DateColumn: dateColumn}
}
