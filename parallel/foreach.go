// Package parallel contains the bounded ForEach concurrency primitive used
// by the training step.
package parallel

import "sync"

// ForEach runs body(i) for every i in [0, length) across at most limit
// goroutines. The index range is split into contiguous chunks, one per
// worker, and ForEach returns once every chunk has finished. A limit below
// two runs everything on the calling goroutine.
func ForEach(length, limit int, body func(i int)) {
	if length <= 0 {
		return
	}
	if limit > length {
		limit = length
	}
	if limit <= 1 {
		for i := 0; i < length; i++ {
			body(i)
		}
		return
	}

	chunk := (length + limit - 1) / limit
	var wg sync.WaitGroup
	for start := 0; start < length; start += chunk {
		end := start + chunk
		if end > length {
			end = length
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				body(i)
			}
		}(start, end)
	}
	wg.Wait()
}
