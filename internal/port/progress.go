package port

// ProgressReporter displays progress for a hashing run.
// Implementations must never write to the result stream.
type ProgressReporter interface {
	// StartBatch begins an aggregate indicator for total files.
	StartBatch(total int) BatchTracker

	// TrackFile begins a per-file indicator that only becomes visible when the
	// file takes longer than the reporter's latency threshold.
	TrackFile(path string) FileTracker

	// Wait blocks until every indicator has been rendered for the last time.
	Wait()
}

// BatchTracker advances an aggregate indicator.
type BatchTracker interface {
	Increment()
	Finish()
}

// FileTracker is finished exactly once when the tracked file is done.
type FileTracker interface {
	Done()
}
