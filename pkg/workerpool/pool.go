// Package workerpool implements a fixed-size worker pool with bounded
// parallelism, in the style of agcp's ad hoc semaphore-bounded goroutine
// dispatch, generalized into a long-lived, explicitly owned value instead
// of a per-call semaphore or a package-level singleton.
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"solidpack/internal/errs"
)

// Task is a nullary unit of work submitted to a Pool.
type Task func()

// Handle is returned by Submit and can be waited on for completion.
type Handle struct {
	done chan struct{}
}

// Wait blocks until the submitted task has run to completion.
func (h *Handle) Wait() {
	<-h.done
}

// Pool is a fixed-size collection of worker goroutines draining a shared
// task queue. It is created explicitly by the caller (typically main) and
// passed into pipeline calls; it is not process-wide global state.
type Pool struct {
	tasks chan Task
	wg    sync.WaitGroup
	n     int

	// shutdownMu serialises Submit against Shutdown: Submit holds the
	// read side while it sends on tasks, Shutdown takes the write side
	// before closing it, so a send can never race a close.
	shutdownMu sync.RWMutex
	closed     bool
}

// New creates a Pool with n worker goroutines. n is clamped to at least
// 1. Workers start immediately and run until Shutdown is called.
func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{
		tasks: make(chan Task),
		n:     n,
	}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

// NewDefault creates a Pool sized to the host's hardware concurrency
// minus one, with a floor of one worker, matching spec.md §4.A's default.
func NewDefault() *Pool {
	return New(runtime.NumCPU() - 1)
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// ThreadCount returns the number of worker goroutines in the pool.
func (p *Pool) ThreadCount() int {
	return p.n
}

// Submit enqueues task and returns a Handle that can be awaited for
// completion. Submitting to a shut-down pool returns errs.ErrShutdown.
func (p *Pool) Submit(task Task) (*Handle, error) {
	p.shutdownMu.RLock()
	defer p.shutdownMu.RUnlock()
	if p.closed {
		return nil, errs.ErrShutdown
	}

	h := &Handle{done: make(chan struct{})}
	p.tasks <- func() {
		defer close(h.done)
		task()
	}
	return h, nil
}

// ParallelFor spawns ThreadCount() worker tasks (fewer if n is smaller),
// each atomically pulling the next index from a shared counter and
// invoking fn(index) until the counter reaches n. It blocks until every
// index in [0, n) has been processed. ParallelFor must only be called
// from the orchestrator goroutine, never from within a task already
// running on the pool — the pool has no re-entrancy support.
func (p *Pool) ParallelFor(n int, fn func(index int)) error {
	if n <= 0 {
		return nil
	}

	workers := p.n
	if workers > n {
		workers = n
	}

	var next atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		handle, err := p.Submit(func() {
			defer wg.Done()
			for {
				idx := next.Add(1) - 1
				if idx >= int64(n) {
					return
				}
				fn(int(idx))
			}
		})
		if err != nil {
			wg.Done()
			return err
		}
		_ = handle
	}
	wg.Wait()
	return nil
}

// Shutdown signals all workers, wakes them, and joins them. Submissions
// after Shutdown fail with errs.ErrShutdown. Shutdown is idempotent.
func (p *Pool) Shutdown() {
	p.shutdownMu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.shutdownMu.Unlock()
	p.wg.Wait()
}
