// Package parallel runs embarrassingly parallel kernel loops across
// the available cores.
package parallel

import (
	"runtime"
	"sync"
)

// minParallel is the work-item count below which goroutine setup costs
// more than it saves and the loop runs inline.
const minParallel = 64

// For splits [0, n) into contiguous chunks and runs fn(lo, hi) for
// each chunk, one goroutine per chunk, returning when all are done.
// Small n runs inline on the calling goroutine. fn must not assume
// chunk boundaries; items are covered exactly once in unspecified
// order.
func For(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 || n < minParallel {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
