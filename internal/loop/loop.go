// Package loop provides a cancellable recurring task.
package loop

import (
	"context"
	"sync"
	"time"
)

// Task runs a function on a fixed interval in a background goroutine.
//
// Start replaces a running loop instead of adding a second one. Stop never
// blocks, so it is safe to call while holding locks the loop function also
// takes; the function receives the context of its own run and should check it
// after acquiring such locks. Wait joins every goroutine started so far.
type Task struct {
	interval time.Duration
	fn       func(ctx context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a stopped task.
func New(interval time.Duration, fn func(ctx context.Context)) *Task {
	return &Task{interval: interval, fn: fn}
}

// Start launches the loop, cancelling the previous run if there is one.
func (t *Task) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startLocked()
}

// StartEvery is Start with a new interval for this and later runs.
func (t *Task) StartEvery(interval time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.interval = interval
	t.startLocked()
}

func (t *Task) startLocked() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}

	// a non-positive interval never fires
	if t.interval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel

	t.wg.Add(1)
	go t.run(ctx, t.interval)
}

func (t *Task) run(ctx context.Context, interval time.Duration) {
	defer t.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			t.fn(ctx)
		}
	}
}

// Stop cancels the current run. It does not wait for the goroutine to exit.
func (t *Task) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// Running reports whether a run is active.
func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

// Wait blocks until every run started so far has returned.
func (t *Task) Wait() {
	t.wg.Wait()
}
