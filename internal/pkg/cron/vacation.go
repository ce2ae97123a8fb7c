package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/notification"
	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/lock"
)

const recalculationLockKey = "vacation-recalculation"

// maxRelayRounds bounds how many batches one relay tick drains.
const maxRelayRounds = 10

type VacationJobsConfig struct {
	RecalculationInterval time.Duration
	RelayInterval         time.Duration
	LockTTL               time.Duration
}

type VacationJobs struct {
	vacationSvc     vacation.Service
	notificationSvc notification.Service
	locker          lock.Locker
	clock           calendar.Clock
	logger          *slog.Logger
	cfg             VacationJobsConfig
}

func NewVacationJobs(
	vacationSvc vacation.Service,
	notificationSvc notification.Service,
	locker lock.Locker,
	clock calendar.Clock,
	logger *slog.Logger,
	cfg VacationJobsConfig,
) *VacationJobs {
	if cfg.RecalculationInterval <= 0 {
		cfg.RecalculationInterval = 24 * time.Hour
	}
	if cfg.RelayInterval <= 0 {
		cfg.RelayInterval = 2 * time.Second
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 10 * time.Minute
	}
	return &VacationJobs{
		vacationSvc:     vacationSvc,
		notificationSvc: notificationSvc,
		locker:          locker,
		clock:           clock,
		logger:          logger,
		cfg:             cfg,
	}
}

func (j *VacationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("recalculate_vacation_days", j.cfg.RecalculationInterval, j.RecalculateVacationDays)
	scheduler.AddJob("relay_notifications", j.cfg.RelayInterval, j.RelayNotifications)
}

// RecalculateVacationDays recomputes every balance as of now. When the lock
// backend is unreachable the run proceeds: recalculation is idempotent.
func (j *VacationJobs) RecalculateVacationDays(ctx context.Context) error {
	release, err := j.locker.TryAcquire(ctx, recalculationLockKey, j.cfg.LockTTL)
	switch {
	case err != nil:
		j.logger.Warn("Cron: recalculation lock unavailable, running without it", "error", err)
	case release == nil:
		j.logger.Info("Cron: recalculation already running elsewhere, skipping")
		return nil
	default:
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				j.logger.Warn("Cron: failed to release recalculation lock", "error", err)
			}
		}()
	}

	j.logger.Info("Cron: Starting vacation days recalculation")
	result, err := j.vacationSvc.RecalculateAll(ctx, j.clock.Now())
	if err != nil {
		return err
	}
	j.logger.Info("Cron: Vacation days recalculated", "updated", result.UpdatedCount, "failed", result.FailedCount)
	return nil
}

// RelayNotifications drains committed notifications to their subscribers.
func (j *VacationJobs) RelayNotifications(ctx context.Context) error {
	for i := 0; i < maxRelayRounds; i++ {
		n, err := j.notificationSvc.RelayPending(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
	return nil
}
