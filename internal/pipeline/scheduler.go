package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/green-check-collector/internal/domain"
	sharedretry "github.com/couchcryptid/storm-data-shared/retry"
	"github.com/jonboulle/clockwork"
)

const initialRetry = time.Minute

// Runner performs one collection pass.
type Runner interface {
	Run(ctx context.Context) (domain.ReportSet, error)
}

// Scheduler repeats collection runs on a fixed interval. A failed run is
// retried with exponential backoff capped at the interval.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
}

// NewScheduler creates a scheduler. Pass a nil clock for real time.
func NewScheduler(runner Runner, interval time.Duration, clock clockwork.Clock, logger *slog.Logger) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{runner: runner, interval: interval, clock: clock, logger: logger}
}

// Run collects immediately, then again after every interval, until ctx is
// cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	backoff := min(initialRetry, s.interval)
	for {
		wait := s.interval
		if _, err := s.runner.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.Error("collection run failed", "error", err, "retry_in", backoff)
			wait = backoff
			backoff = sharedretry.NextBackoff(backoff, s.interval)
		} else {
			backoff = min(initialRetry, s.interval)
		}

		if !s.sleep(ctx, wait) {
			s.logger.Info("scheduler stopping", "reason", ctx.Err())
			return nil
		}
	}
}

func (s *Scheduler) sleep(ctx context.Context, d time.Duration) bool {
	timer := s.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
