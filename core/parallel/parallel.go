// Package parallel provides chunked index-range helpers for running
// independent per-index work across CPU cores.
package parallel

import (
	"runtime"
	"sync"
)

// Run splits [0, items) into contiguous ranges and executes fn on each
// range from its own goroutine. workers <= 0 means one worker per CPU
// core. fn must be safe to call concurrently on disjoint ranges.
func Run(items, workers int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items
	}

	// Ceiling division so every index is covered.
	chunkSize := (items + workers - 1) / workers

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
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

// RunWithThreshold runs fn sequentially over the whole range when items
// is at or below threshold, and in parallel otherwise. Small simulation
// runs are not worth the goroutine overhead.
func RunWithThreshold(items, threshold, workers int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Run(items, workers, fn)
}
