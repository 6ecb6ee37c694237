package plan

import (
	"fmt"
	"runtime"

	"github.com/ib-77/cslice/pkg/cslice/types"
)

// Region is a half-open index range [Start, End) of the partitioned slice.
type Region struct {
	Start int
	End   int
}

// Len returns the number of elements in the region.
func (r Region) Len() int {
	return r.End - r.Start
}

// Contains reports whether the absolute index i falls inside the region.
func (r Region) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Shift moves the region by off elements.
func (r Region) Shift(off int) Region {
	return Region{Start: r.Start + off, End: r.End + off}
}

func (r Region) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// BySize splits n elements into regions of size elements, filled greedily
// from the front. The last region holds the remainder and may be shorter,
// but is never empty. n == 0 yields no regions.
func BySize(n, size int) ([]Region, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", types.ErrInvalidPartition, size)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", types.ErrInvalidPartition, n)
	}

	regions := make([]Region, 0, Count(n, size))
	for start := 0; start < n; start += size {
		regions = append(regions, Region{Start: start, End: min(start+size, n)})
	}
	return regions, nil
}

// ByCount splits n elements into at most count regions of SizeFor(n, count)
// elements each. A zero-length trailing region is never emitted, so the
// result can be shorter than count: 9 elements by 4 gives 3,3,3.
func ByCount(n, count int) ([]Region, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: chunk count must be positive, got %d", types.ErrInvalidPartition, count)
	}
	if n == 0 {
		return []Region{}, nil
	}
	return BySize(n, SizeFor(n, count))
}

// Even splits n elements into exactly min(n, count) regions. Sizes differ
// by at most one and the longer regions come first: 16 by 3 gives 6,5,5.
func Even(n, count int) ([]Region, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: chunk count must be positive, got %d", types.ErrInvalidPartition, count)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", types.ErrInvalidPartition, n)
	}

	count = min(count, n)
	regions := make([]Region, 0, count)
	if count == 0 {
		return regions, nil
	}

	base, long := n/count, n%count
	start := 0
	for i := 0; i < count; i++ {
		size := base
		if i < long {
			size++
		}
		regions = append(regions, Region{Start: start, End: start + size})
		start += size
	}
	return regions, nil
}

// ByCPU is ByCount with one region per processor usable by this process.
func ByCPU(n int) ([]Region, error) {
	return ByCount(n, runtime.GOMAXPROCS(0))
}

// Count returns how many regions BySize produces: ceil(n/size), 0 for n == 0.
func Count(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// SizeFor returns the region size ByCount uses: ceil(n/count).
func SizeFor(n, count int) int {
	if n <= 0 || count <= 0 {
		return 0
	}
	return (n + count - 1) / count
}

// Validate checks that regions are ascending, pairwise disjoint, and cover
// [0, n) exactly.
func Validate(regions []Region, n int) error {
	next := 0
	for i, r := range regions {
		if r.Start != next {
			return fmt.Errorf("%w: region %d %s does not start at %d", types.ErrInvalidPartition, i, r, next)
		}
		if r.End < r.Start {
			return fmt.Errorf("%w: region %d %s is inverted", types.ErrInvalidPartition, i, r)
		}
		next = r.End
	}
	if next != n {
		return fmt.Errorf("%w: regions cover [0, %d), want [0, %d)", types.ErrInvalidPartition, next, n)
	}
	return nil
}
