// Package plan computes partitions: ordered, disjoint, contiguous index
// regions that together cover [0, n) exactly once.
//
// Planners are pure functions. They never look at the data being split,
// only at its length:
// - BySize: fixed-size regions, the last one takes the remainder
// - ByCount: size derived as ceil(n/count), then BySize
// - Even: exactly min(n, count) regions whose sizes differ by at most one
// - ByCPU: ByCount with one region per usable processor
//
// Validate checks the partition invariant and is cheap enough to run on
// every plan.
package plan
