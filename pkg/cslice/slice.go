package cslice

import (
	"github.com/ib-77/cslice/pkg/cslice/plan"
)

// New takes ownership of s and returns it as a single chunk covering all
// of it. Reshape it with SplitAt or Chunks. s must not be used afterwards.
func New[T any](s []T, opts ...Option) *Chunk[T] {
	sess := newSession(s, opts...)
	sess.metrics.RecordPartition("whole", 1)
	return sess.issue(plan.Region{Start: 0, End: len(s)})
}

// IntoChunks takes ownership of s and returns an iterator over chunks of
// size elements; the last chunk holds the remainder. size must be positive.
// On error s is left untouched.
func IntoChunks[T any](s []T, size int, opts ...Option) (*Chunks[T], error) {
	regions, err := plan.BySize(len(s), size)
	if err != nil {
		return nil, err
	}
	return start(s, regions, "size", opts...)
}

// IntoChunksByCount takes ownership of s and returns an iterator over at
// most count chunks of ceil(len(s)/count) elements. Empty trailing chunks
// are not produced, so there can be fewer than count.
func IntoChunksByCount[T any](s []T, count int, opts ...Option) (*Chunks[T], error) {
	regions, err := plan.ByCount(len(s), count)
	if err != nil {
		return nil, err
	}
	return start(s, regions, "count", opts...)
}

// IntoEvenChunks takes ownership of s and returns an iterator over
// min(len(s), count) chunks whose sizes differ by at most one.
func IntoEvenChunks[T any](s []T, count int, opts ...Option) (*Chunks[T], error) {
	regions, err := plan.Even(len(s), count)
	if err != nil {
		return nil, err
	}
	return start(s, regions, "even", opts...)
}

// IntoChunksByCPU is IntoChunksByCount with one chunk per processor usable
// by this process.
func IntoChunksByCPU[T any](s []T, opts ...Option) (*Chunks[T], error) {
	regions, err := plan.ByCPU(len(s))
	if err != nil {
		return nil, err
	}
	return start(s, regions, "cpu", opts...)
}

func start[T any](s []T, regions []plan.Region, strategy string, opts ...Option) (*Chunks[T], error) {
	if err := plan.Validate(regions, len(s)); err != nil {
		return nil, err
	}
	return newSession(s, opts...).partition(regions, strategy), nil
}
