package tasks

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/pagesmith-app/pagesmith/internal/config"
)

// Module provides the shared background dispatcher, started and drained
// with the application lifecycle.
var Module = fx.Module("tasks",
	fx.Provide(newLifecycleDispatcher),
)

func newLifecycleDispatcher(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) *Dispatcher {
	d := NewDispatcher(Config{
		Name:      "generation",
		Workers:   cfg.Dispatcher.Workers,
		QueueSize: cfg.Dispatcher.QueueSize,
	}, log)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Tasks must outlive the request contexts that enqueue them,
			// so the pool runs on the background context.
			return d.Start(context.Background())
		},
		OnStop: func(ctx context.Context) error {
			drainCtx, cancel := context.WithTimeout(ctx, cfg.Dispatcher.DrainTimeout)
			defer cancel()
			return d.Stop(drainCtx)
		},
	})

	return d
}
