// Package parallel provides the goroutine pool and row partitioning used by
// the blur engine.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines that execute work items.
//
// Work items are pulled from a shared queue, so a slow band does not hold up
// idle workers. ExecuteAll blocks until every submitted item has returned.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	// queue feeds work items to the workers.
	queue chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), queueSize),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.done:
			// Queued items still belong to a blocked ExecuteAll.
			for {
				select {
				case work := <-p.queue:
					work()
				default:
					return
				}
			}
		case work := <-p.queue:
			work()
		}
	}
}

// ExecuteAll runs every item and waits for all of them to return.
// Nil items are skipped. If the pool is closed, the items run sequentially
// on the calling goroutine, so callers always get complete results.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if !p.running.Load() {
		for _, fn := range work {
			if fn != nil {
				fn()
			}
		}
		return
	}

	var completion sync.WaitGroup
	for _, fn := range work {
		if fn == nil {
			continue
		}
		completion.Add(1)
		wrapped := func() {
			defer completion.Done()
			fn()
		}

		select {
		case p.queue <- wrapped:
		case <-p.done:
			wrapped()
		}
	}

	completion.Wait()
}

// Close stops the workers after the queue drains.
// Close is safe to call multiple times but must not race with ExecuteAll.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
