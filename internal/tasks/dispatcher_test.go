package tasks

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestDispatcher(t *testing.T, workers, queueSize int) *Dispatcher {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDispatcher(Config{Name: "test", Workers: workers, QueueSize: queueSize}, log)
}

func TestDispatcher_RunsTasks(t *testing.T) {
	d := newTestDispatcher(t, 2, 8)
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	var count atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		err := d.Enqueue(func(ctx context.Context) {
			defer wg.Done()
			count.Add(1)
		})
		if err != nil {
			t.Fatalf("Enqueue() error = %v", err)
		}
	}

	wg.Wait()
	if got := count.Load(); got != 5 {
		t.Errorf("ran %d tasks, want 5", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Stop(ctx); err != nil {
		t.Errorf("Stop() error = %v", err)
	}

	m := d.Metrics()
	if m.Enqueued != 5 || m.Completed != 5 {
		t.Errorf("metrics = %+v, want 5 enqueued and completed", m)
	}
}

func TestDispatcher_RejectsWhenFull(t *testing.T) {
	d := newTestDispatcher(t, 1, 1)
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	block := make(chan struct{})

	// Occupy the single worker, then fill the single queue slot.
	_ = d.Enqueue(func(ctx context.Context) { <-block })

	// Give the worker a moment to pick up the blocking task.
	deadline := time.Now().Add(time.Second)
	for d.Metrics().Enqueued < 1 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	_ = d.Enqueue(func(ctx context.Context) {})

	// Queue slot and worker are both busy now; the next enqueue must fail
	// fast rather than block the request handler.
	var err error
	for i := 0; i < 3; i++ {
		err = d.Enqueue(func(ctx context.Context) {})
		if err == ErrQueueFull {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != ErrQueueFull {
		t.Errorf("Enqueue() error = %v, want ErrQueueFull", err)
	}

	close(block)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = d.Stop(ctx)
}

func TestDispatcher_EnqueueAfterStop(t *testing.T) {
	d := newTestDispatcher(t, 1, 4)
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if err := d.Enqueue(func(ctx context.Context) {}); err != ErrStopped {
		t.Errorf("Enqueue() error = %v, want ErrStopped", err)
	}
}

func TestDispatcher_EnqueueConcurrentWithStop(t *testing.T) {
	// Submissions racing a shutdown must resolve to ErrStopped or
	// ErrQueueFull, never a send on the closed queue.
	for i := 0; i < 20; i++ {
		d := newTestDispatcher(t, 2, 16)
		if err := d.Start(context.Background()); err != nil {
			t.Fatalf("Start() error = %v", err)
		}

		start := make(chan struct{})
		var wg sync.WaitGroup
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				for j := 0; j < 50; j++ {
					err := d.Enqueue(func(ctx context.Context) {})
					if err != nil && err != ErrStopped && err != ErrQueueFull {
						t.Errorf("Enqueue() error = %v", err)
					}
				}
			}()
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := d.Stop(ctx); err != nil {
				t.Errorf("Stop() error = %v", err)
			}
		}()

		close(start)
		wg.Wait()
	}
}

func TestDispatcher_StopDrainsQueuedTasks(t *testing.T) {
	d := newTestDispatcher(t, 1, 8)
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	var count atomic.Int64
	for i := 0; i < 4; i++ {
		err := d.Enqueue(func(ctx context.Context) {
			time.Sleep(5 * time.Millisecond)
			count.Add(1)
		})
		if err != nil {
			t.Fatalf("Enqueue() error = %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if got := count.Load(); got != 4 {
		t.Errorf("drained %d tasks, want 4", got)
	}
}

func TestDispatcher_RecoversFromPanic(t *testing.T) {
	d := newTestDispatcher(t, 1, 4)
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	done := make(chan struct{})
	_ = d.Enqueue(func(ctx context.Context) {
		defer close(done)
		panic("boom")
	})
	<-done

	// The pool must survive a panicking task
	var ran atomic.Bool
	var wg sync.WaitGroup
	wg.Add(1)
	if err := d.Enqueue(func(ctx context.Context) {
		defer wg.Done()
		ran.Store(true)
	}); err != nil {
		t.Fatalf("Enqueue() after panic error = %v", err)
	}
	wg.Wait()

	if !ran.Load() {
		t.Error("worker did not survive a panicking task")
	}
	if d.Metrics().Panicked != 1 {
		t.Errorf("Panicked = %d, want 1", d.Metrics().Panicked)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = d.Stop(ctx)
}
