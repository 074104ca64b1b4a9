// Package tasks provides an in-process background task dispatcher.
//
// Submissions are fire-and-forget: the enqueuing request handler returns
// before the task runs, and results are communicated only through whatever
// state the task itself persists. There is no retry policy; a failed task
// is done. A full queue rejects new tasks instead of blocking the caller.
package tasks

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

// Task is a unit of background work
type Task func(ctx context.Context)

var (
	// ErrQueueFull is returned when the task queue has no capacity
	ErrQueueFull = errors.New("task queue is full")

	// ErrStopped is returned when the dispatcher is shutting down
	ErrStopped = errors.New("dispatcher is stopped")
)

// Config contains dispatcher settings
type Config struct {
	// Name is a descriptive name for logging
	Name string
	// Workers is the number of concurrent workers (default: 4)
	Workers int
	// QueueSize bounds pending tasks (default: 64)
	QueueSize int
}

// Dispatcher runs tasks on a bounded worker pool.
type Dispatcher struct {
	config Config
	log    *slog.Logger

	queue   chan Task
	baseCtx context.Context

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup

	// Metrics
	metricsMu sync.RWMutex
	enqueued  int64
	completed int64
	rejected  int64
	panicked  int64
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(config Config, log *slog.Logger) *Dispatcher {
	if config.Workers <= 0 {
		config.Workers = 4
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 64
	}

	return &Dispatcher{
		config: config,
		log:    log.With(slog.String("dispatcher", config.Name)),
		queue:  make(chan Task, config.QueueSize),
	}
}

// Start spawns the worker pool. Tasks run on a context derived from ctx;
// the dispatcher never cancels in-flight tasks on behalf of callers.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return nil
	}
	d.running = true
	d.baseCtx = ctx

	d.log.Info("dispatcher starting",
		slog.Int("workers", d.config.Workers),
		slog.Int("queue_size", d.config.QueueSize))

	for i := 0; i < d.config.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return nil
}

// Enqueue schedules a task. It never blocks: a full queue or a stopped
// dispatcher fails immediately and the caller decides how to surface that.
func (d *Dispatcher) Enqueue(task Task) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return ErrStopped
	}

	// The send must stay under d.mu: Stop closes the queue under the same
	// lock, and a send racing that close would panic. The select never
	// blocks, so holding the lock across it is fine.
	select {
	case d.queue <- task:
		d.incr(&d.enqueued)
		return nil
	default:
		d.incr(&d.rejected)
		d.log.Warn("task rejected, queue full")
		return ErrQueueFull
	}
}

// Stop closes intake and waits for queued and in-flight tasks, bounded by
// ctx. Tasks still running when ctx expires are abandoned, not cancelled.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return nil
	}
	d.running = false
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.log.Info("dispatcher drained")
		return nil
	case <-ctx.Done():
		d.log.Warn("dispatcher stop timeout, abandoning in-flight tasks")
		return ctx.Err()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for task := range d.queue {
		d.run(task)
	}
}

func (d *Dispatcher) run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			d.incr(&d.panicked)
			d.log.Error("task panicked",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
			return
		}
		d.incr(&d.completed)
	}()

	start := time.Now()
	task(d.baseCtx)
	d.log.Debug("task finished", slog.Duration("duration", time.Since(start)))
}

// Metrics contains dispatcher counters
type Metrics struct {
	Enqueued  int64 `json:"enqueued"`
	Completed int64 `json:"completed"`
	Rejected  int64 `json:"rejected"`
	Panicked  int64 `json:"panicked"`
}

// Metrics returns current dispatcher counters
func (d *Dispatcher) Metrics() Metrics {
	d.metricsMu.RLock()
	defer d.metricsMu.RUnlock()
	return Metrics{
		Enqueued:  d.enqueued,
		Completed: d.completed,
		Rejected:  d.rejected,
		Panicked:  d.panicked,
	}
}

func (d *Dispatcher) incr(counter *int64) {
	d.metricsMu.Lock()
	*counter++
	d.metricsMu.Unlock()
}
