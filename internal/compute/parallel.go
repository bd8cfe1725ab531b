// Package compute provides the fork-join primitive used by the solver's
// O(N²) influence sums. Work is split into contiguous chunks over disjoint
// output slots, so no locking is needed.
package compute

import (
	"runtime"
	"sync"
)

// ParallelFor executes fn over the range [0, n), split into contiguous chunks
// across workers. Ranges below minChunk run serially; callers pick minChunk so
// that goroutine overhead never dominates the per-element work.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.NumCPU()
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
