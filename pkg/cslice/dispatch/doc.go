// Package dispatch runs workers over the chunks of a partitioned slice.
//
// FromChunks feeds an iterator into a channel, Locomotive is the worker loop
// and Run/Dispatch fan out a fixed number of lines of them, emitting one
// cslice.Result per chunk. ForEach is the fail-fast variant built on an
// errgroup, and Process wraps partition, work and recovery in one call.
//
// Worker limits, cancellation behaviour, logger and metrics are read from
// the context (WithWorkerOptions, WithProcessOptions, WithObserver).
//
// Every chunk handed to a worker is released by the worker loop, whether it
// was processed or not, so the session's guard can recover the slice once
// the output channel is closed.
package dispatch
