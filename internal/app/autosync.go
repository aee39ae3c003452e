package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/okian/solvemap/internal/adapters/judge"
	"github.com/okian/solvemap/pkg/logger"
	"github.com/okian/solvemap/pkg/metrics"
)

// AutoSync periodically re-imports a fixed judge handle, replacing the
// store content with the fresh record set. It bypasses the interactive
// import state machine so a scheduled run never disturbs a user's pending
// preview.
type AutoSync struct {
	scheduler gocron.Scheduler
}

// StartAutoSync schedules a recurring sync of handle on judgeName every
// interval. The first run fires on schedule, not at startup.
func StartAutoSync(ctx context.Context, svc *Service, judgeName, handle string, interval time.Duration) (*AutoSync, error) {
	adapter, ok := svc.registry.Get(judgeName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", judge.ErrUnknownJudge, judgeName)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("%w: auto-sync interval must be positive", ErrValidation)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create auto-sync scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			svc.syncOnce(ctx, adapter, handle)
		}),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("schedule auto-sync job: %w", err)
	}
	scheduler.Start()

	svc.logger.Info(ctx, "auto-sync enabled",
		logger.String("judge", judgeName),
		logger.String("handle", handle),
		logger.Duration("interval", interval),
	)
	return &AutoSync{scheduler: scheduler}, nil
}

// Stop shuts down the scheduler.
func (a *AutoSync) Stop() {
	_ = a.scheduler.Shutdown()
}

// syncOnce fetches and replaces the store content in one shot.
func (s *Service) syncOnce(ctx context.Context, adapter judge.Adapter, handle string) {
	metrics.RecordAutosyncRun()

	records, err := adapter.Fetch(ctx, handle)
	if err != nil {
		metrics.RecordAutosyncFailure()
		s.logger.Warn(ctx, "auto-sync fetch failed",
			logger.String("judge", adapter.Name()),
			logger.Error(err),
		)
		return
	}
	n, err := s.store.ImportBatch(ctx, records, true)
	if err != nil {
		metrics.RecordAutosyncFailure()
		metrics.RecordStoreError()
		s.logger.Error(ctx, "auto-sync import failed", logger.Error(err))
		return
	}
	metrics.RecordRecordsImported(n)
	s.logger.Info(ctx, "auto-sync completed",
		logger.String("judge", adapter.Name()),
		logger.Int("records", n),
	)
}
