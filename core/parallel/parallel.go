// Package parallel provides small worker-pool helpers for data-parallel
// loops, used by the block partitioning code where every iteration works on
// an independent destination buffer.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize divides items across workers sized to the number of CPU cores
// and executes fn for each contiguous range (start, end).
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// Ceiling division so every item lands in exactly one chunk.
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ParallelizeWithThreshold parallelizes only when items exceeds the
// threshold; below it the loop runs sequentially on the calling goroutine.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}

	Parallelize(items, fn)
}

// ForEachErr runs fn for every index in [0, items) and returns the first
// error encountered. Iterations run in parallel when items exceeds the
// threshold. All iterations are attempted even after a failure; the
// first-by-completion error wins.
func ForEachErr(items, threshold int, fn func(i int) error) error {
	var (
		once  sync.Once
		first error
	)
	record := func(err error) {
		if err != nil {
			once.Do(func() { first = err })
		}
	}

	ParallelizeWithThreshold(items, threshold, func(start, end int) {
		for i := start; i < end; i++ {
			record(fn(i))
		}
	})

	return first
}
