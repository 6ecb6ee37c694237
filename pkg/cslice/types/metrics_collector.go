package types

// MetricsCollector defines methods for recording partitioning activity.
//
// Implementations must be safe for concurrent use: chunks are released from
// worker goroutines.
type MetricsCollector interface {
	// RecordPartition records a new partitioning session.
	//
	// Parameters:
	//   - strategy: How the regions were planned ("size", "count", "even", "cpu", "whole", "split", "cat")
	//   - chunks: Number of regions planned
	RecordPartition(strategy string, chunks int)

	// IncrementChunksIssued counts a chunk handed out.
	IncrementChunksIssued()

	// IncrementChunksReleased counts a chunk released.
	IncrementChunksReleased()

	// RecordRecoverAttempt records a recovery attempt and whether it succeeded.
	RecordRecoverAttempt(success bool)

	// RecordWorkerDuration records how long a worker spent on one chunk, in seconds.
	RecordWorkerDuration(seconds float64)
}
