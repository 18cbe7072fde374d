package workerpool

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSubmitRunsTask(t *testing.T) {
	p := New(2)
	defer p.Shutdown()

	var ran atomic.Bool
	handle, err := p.Submit(func() { ran.Store(true) })
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	handle.Wait()

	if !ran.Load() {
		t.Fatal("task did not run")
	}
}

func TestParallelForVisitsEveryIndex(t *testing.T) {
	p := New(4)
	defer p.Shutdown()

	const n = 1000
	var seen [n]atomic.Bool
	if err := p.ParallelFor(n, func(i int) {
		seen[i].Store(true)
	}); err != nil {
		t.Fatalf("ParallelFor: %v", err)
	}

	for i := range seen {
		if !seen[i].Load() {
			t.Fatalf("index %d was never visited", i)
		}
	}
}

func TestParallelForZeroLength(t *testing.T) {
	p := New(2)
	defer p.Shutdown()

	if err := p.ParallelFor(0, func(int) { t.Fatal("fn should not be called") }); err != nil {
		t.Fatalf("ParallelFor: %v", err)
	}
}

func TestThreadCount(t *testing.T) {
	p := New(3)
	defer p.Shutdown()

	if got := p.ThreadCount(); got != 3 {
		t.Fatalf("ThreadCount() = %d, want 3", got)
	}
}

func TestNewClampsToOne(t *testing.T) {
	p := New(0)
	defer p.Shutdown()

	if got := p.ThreadCount(); got != 1 {
		t.Fatalf("ThreadCount() = %d, want 1", got)
	}
}

func TestSubmitAfterShutdownFails(t *testing.T) {
	p := New(1)
	p.Shutdown()

	if _, err := p.Submit(func() {}); err == nil {
		t.Fatal("Submit after Shutdown should fail")
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	p := New(1)
	p.Shutdown()
	p.Shutdown()
}

// TestParallelForConcurrency proves that ParallelFor actually runs
// workers concurrently rather than serially, using a barrier: every
// worker must arrive before any of them is released, which can only
// happen if they are scheduled at the same time.
func TestParallelForConcurrency(t *testing.T) {
	const workers = 4
	p := New(workers)
	defer p.Shutdown()

	arrived := make(chan struct{}, workers)
	release := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- p.ParallelFor(workers, func(int) {
			arrived <- struct{}{}
			<-release
		})
	}()

	for i := 0; i < workers; i++ {
		select {
		case <-arrived:
		case <-time.After(2 * time.Second):
			t.Fatal("not all workers started concurrently within timeout")
		}
	}
	close(release)

	if err := <-done; err != nil {
		t.Fatalf("ParallelFor: %v", err)
	}
}
