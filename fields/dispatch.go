package fields

import (
	"runtime"
	"sync"
)

// Backend selects how element-wise kernels are executed. It is purely an
// execution strategy: both backends run the same formulas in the same
// floating-point order per element, so results are bit-identical.
type Backend int

const (
	// BackendSerial runs kernels on the calling goroutine.
	BackendSerial Backend = iota
	// BackendParallel spreads kernel index ranges over worker goroutines.
	BackendParallel
)

// A Dispatcher executes an element kernel over the index range [0, n).
// Kernels must be free of cross-index data dependencies.
type Dispatcher interface {
	Run(n int, kernel func(i int))
}

type serialDispatcher struct{}

func (serialDispatcher) Run(n int, kernel func(i int)) {
	for i := 0; i < n; i++ {
		kernel(i)
	}
}

type parallelDispatcher struct {
	workers int
}

func (d parallelDispatcher) Run(n int, kernel func(i int)) {
	workers := d.workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		serialDispatcher{}.Run(n, kernel)
		return
	}

	// Contiguous chunks keep each worker on its own cache lines.
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				kernel(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}

func newDispatcher(b Backend) Dispatcher {
	if b == BackendParallel {
		return parallelDispatcher{workers: runtime.GOMAXPROCS(0)}
	}
	return serialDispatcher{}
}
