package cslice_test

import (
	"fmt"
	"sync"

	"github.com/ib-77/cslice/pkg/cslice"
)

func ExampleIntoChunks() {
	it, _ := cslice.IntoChunks(make([]int, 12), 4)
	guard, _ := it.Guard()

	var wg sync.WaitGroup
	marker := 0
	for chunk := range it.All() {
		marker++
		wg.Add(1)
		go func(m int) {
			defer wg.Done()
			defer chunk.Release()
			for _, v := range chunk.All() {
				*v = m
			}
		}(marker)
	}
	it.Release()
	wg.Wait()

	data, err := guard.Recover()
	fmt.Println(data, err)
	// Output: [1 1 1 1 2 2 2 2 3 3 3 3] <nil>
}

func ExampleGuard_Recover() {
	it, _ := cslice.IntoChunks([]string{"a", "b", "c"}, 2)
	guard, _ := it.Guard()

	first, _ := it.Next()
	_, err := guard.Recover()
	fmt.Println(err != nil, guard.Outstanding())

	first.Release()
	for c := range it.All() {
		c.Release()
	}
	it.Release()

	data, err := guard.Recover()
	fmt.Println(data, err)
	// Output:
	// true 2
	// [a b c] <nil>
}
