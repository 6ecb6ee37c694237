package types

import "errors"

// Sentinel errors returned by the partitioning session.
var (
	// ErrInvalidPartition is returned when a chunk size or chunk count is not positive.
	ErrInvalidPartition = errors.New("invalid partition")

	// ErrIndexOutOfBounds is returned when a chunk is indexed outside its region.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrStillBorrowed is returned when recovery is attempted while chunks or
	// the iterator still hold the backing storage. It is always retryable.
	ErrStillBorrowed = errors.New("storage still borrowed")

	// ErrGuardAlreadyIssued is returned when a second guard is requested for a session.
	ErrGuardAlreadyIssued = errors.New("guard already issued")

	// ErrGuardAlreadyConsumed is returned when a guard is used after a successful recovery.
	ErrGuardAlreadyConsumed = errors.New("guard already consumed")

	// ErrChunkReleased is returned when a released chunk is accessed.
	ErrChunkReleased = errors.New("chunk released")

	// ErrIteratorReleased is returned when a released iterator is asked for a guard.
	ErrIteratorReleased = errors.New("iterator released")

	// ErrReclaimed is returned when the backing storage was already handed back.
	ErrReclaimed = errors.New("storage reclaimed")

	// ErrNotContiguous is returned when concatenated chunks do not touch end to start.
	ErrNotContiguous = errors.New("chunks are not contiguous")

	// ErrInconsistentOwner is returned when concatenated chunks belong to different sessions.
	ErrInconsistentOwner = errors.New("chunks belong to different sessions")

	// ErrEmptyCat is returned when Cat is called without chunks.
	ErrEmptyCat = errors.New("no chunks to concatenate")
)
