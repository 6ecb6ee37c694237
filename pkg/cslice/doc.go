// Package cslice splits one owned slice into disjoint mutable chunks that
// can be handed to concurrent workers, and hands the original slice back
// once every chunk is released.
//
// No element is copied and no lock guards element access. Chunks come
// from a planned partition (see package plan) whose regions are pairwise
// disjoint, and each region is handed out exactly once, so two live chunks
// never share an index. The slice's backing array is held by a
// reference-counted cell (see package cell); the chunk iterator, every
// chunk and the recovery guard each hold one reference.
//
// Typical flow:
//
//	it, err := cslice.IntoChunks(data, 1024)
//	guard, err := it.Guard()
//	for chunk := range it.All() {
//	    go func() {
//	        defer chunk.Release()
//	        for i, v := range chunk.All() {
//	            *v = f(chunk.Region().Start + i)
//	        }
//	    }()
//	}
//	it.Release()
//	// ... wait for workers ...
//	data, err = guard.Recover()
//
// Recover never blocks: while any chunk or the iterator is still held it
// returns ErrStillBorrowed and can be retried later.
//
// Highlights:
// - IntoChunks/IntoChunksByCount/IntoEvenChunks/IntoChunksByCPU: start a session
// - New: the whole slice as a single chunk
// - Chunk.SplitAt, Chunk.Chunks, Cat: reshape chunks without copying
// - Guard.Recover: reclaim the slice with its original length and capacity
//
// Package dispatch runs workers over the chunks of a session.
package cslice
