package lbm

import (
	"runtime"
	"sync"
)

// serialCells is the grid size below which kernels run on the calling
// goroutine; spawning workers costs more than it saves on small lattices.
const serialCells = 4096

// parallelRows calls fn over disjoint row ranges [y0, y1) covering [0, h)
// and returns once every range is done. Ranges are split across at most
// workers goroutines (GOMAXPROCS when workers is zero).
func parallelRows(h, w, workers int, fn func(y0, y1 int)) {
	if h <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > h {
		workers = h
	}
	if workers <= 1 || h*w < serialCells {
		fn(0, h)
		return
	}
	var wg sync.WaitGroup
	chunk := (h + workers - 1) / workers
	for start := 0; start < h; start += chunk {
		end := start + chunk
		if end > h {
			end = h
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			fn(y0, y1)
		}(start, end)
	}
	wg.Wait()
}
