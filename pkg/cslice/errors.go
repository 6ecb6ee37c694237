package cslice

import "github.com/ib-77/cslice/pkg/cslice/types"

// Re-exported sentinel errors; test with errors.Is.
var (
	ErrInvalidPartition     = types.ErrInvalidPartition
	ErrIndexOutOfBounds     = types.ErrIndexOutOfBounds
	ErrStillBorrowed        = types.ErrStillBorrowed
	ErrGuardAlreadyIssued   = types.ErrGuardAlreadyIssued
	ErrGuardAlreadyConsumed = types.ErrGuardAlreadyConsumed
	ErrChunkReleased        = types.ErrChunkReleased
	ErrIteratorReleased     = types.ErrIteratorReleased
	ErrReclaimed            = types.ErrReclaimed
	ErrNotContiguous        = types.ErrNotContiguous
	ErrInconsistentOwner    = types.ErrInconsistentOwner
	ErrEmptyCat             = types.ErrEmptyCat
)
