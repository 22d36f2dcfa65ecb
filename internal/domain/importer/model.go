package importer

// FailedBatch records a batch that is known not to have applied.
type FailedBatch struct {
	Batch     int    `json:"batch_number"`
	ItemCount int    `json:"item_count"`
	Error     string `json:"error"`
}

// TimeoutBatch records a batch whose outcome is unknown: the server may
// have applied some or all of its writes.
type TimeoutBatch struct {
	Batch     int `json:"batch_number"`
	ItemCount int `json:"item_count"`
}

// Summary is the single source of truth for a bulk create call. It is
// always returned for batch-level trouble; only caller-input and
// process-level problems surface as errors instead.
type Summary struct {
	TotalRows    int      `json:"total_rows"`
	SuccessCount int      `json:"success_count"`
	FailedCount  int      `json:"failed_count"`
	CreatedIDs   []string `json:"created_ids"`

	FailedBatches  []FailedBatch  `json:"critical_errors"`
	TimeoutBatches []TimeoutBatch `json:"timeout_batches"`

	// UncreatedAfterTimeout is the reconciled count of items that
	// timeout batches genuinely failed to create. Best effort: it
	// assumes no concurrent writers and an otherwise accounted-for
	// prior board count.
	UncreatedAfterTimeout int `json:"uncreated_items_after_timeout"`
}

func (s *Summary) criticalRows() int {
	total := 0
	for _, b := range s.FailedBatches {
		total += b.ItemCount
	}
	return total
}
