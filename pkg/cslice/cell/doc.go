// Package cell holds the backing storage of a partitioning session.
//
// A Cell owns the original slice (its backing array, length and capacity)
// and counts outstanding references to it. Every chunk, the chunk iterator
// and the recovery guard each hold one reference. The slice is handed back
// only by TryReconstruct, and only when the caller holds the last reference.
package cell
