package generation

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pagesmith-app/pagesmith/internal/config"
	"github.com/pagesmith-app/pagesmith/pkg/logger"
)

// staleStore is the repository slice the sweeper needs
type staleStore interface {
	SweepStale(ctx context.Context, staleAfter time.Duration) (int64, error)
}

// Sweeper periodically flips accounts stuck in processing to error. The
// dispatcher never retries a crashed task, so without the sweeper a poller
// whose generation died would spin until its timeout.
type Sweeper struct {
	cron       *cron.Cron
	store      staleStore
	schedule   string
	staleAfter time.Duration
	log        *slog.Logger
}

// NewSweeper creates a sweeper from configuration
func NewSweeper(store staleStore, cfg *config.Config, log *slog.Logger) *Sweeper {
	return &Sweeper{
		cron:       cron.New(),
		store:      store,
		schedule:   cfg.Sweeper.Schedule,
		staleAfter: cfg.Sweeper.StaleAfter,
		log:        log.With(logger.Scope("sweeper")),
	}
}

// Start registers the sweep job and begins the cron loop
func (s *Sweeper) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.schedule, s.sweep)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("stale generation sweeper started",
		slog.String("schedule", s.schedule),
		slog.Duration("stale_after", s.staleAfter))
	return nil
}

// Stop halts the cron loop, waiting for an in-flight sweep
func (s *Sweeper) Stop(ctx context.Context) error {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
		s.log.Warn("sweeper stop timeout")
	}
	return nil
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	swept, err := s.store.SweepStale(ctx, s.staleAfter)
	if err != nil {
		s.log.Error("stale sweep failed", logger.Error(err))
		return
	}
	if swept > 0 {
		s.log.Warn("flipped stale generations to error", slog.Int64("count", swept))
	}
}
