package scheduler

import (
	"context"
	"time"

	"printmob-be/internal/pkg/logger"
	"printmob-be/pkg/lock"
	"printmob-be/pkg/settlement"
)

const settlementLockName = "settlement-sweep"

// SettlementWorker periodically runs the finalize and cancel jobs. A redis
// lock guarantees a single instance sweeps at a time; instances that lose the
// race simply wait for the next tick.
type SettlementWorker struct {
	processor *settlement.Processor
	locker    lock.Locker
	interval  time.Duration
	logger    logger.ILogger
}

func NewSettlementWorker(
	processor *settlement.Processor,
	locker lock.Locker,
	interval time.Duration,
	logger logger.ILogger,
) *SettlementWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SettlementWorker{
		processor: processor,
		locker:    locker,
		interval:  interval,
		logger:    logger,
	}
}

// Run blocks until ctx is cancelled.
func (w *SettlementWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("scheduler", "settlement worker started", map[string]interface{}{
		"interval": w.interval.String(),
	})

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("scheduler", "settlement worker stopped", nil)
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *SettlementWorker) sweep(ctx context.Context) {
	// Lock TTL outlives the expected sweep; Release is owner-checked so an
	// overrun cannot break another instance's lock.
	acquired, err := w.locker.Acquire(ctx, settlementLockName, 5*w.interval)
	if err != nil {
		w.logger.Error("scheduler", "failed to acquire settlement lock", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if !acquired {
		return
	}
	defer func() {
		if err := w.locker.Release(ctx, settlementLockName); err != nil {
			w.logger.Warn("scheduler", "failed to release settlement lock", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	if report, err := w.processor.RunFinalize(ctx); err != nil {
		w.logger.Error("scheduler", "finalize job failed", map[string]interface{}{
			"error": err.Error(),
		})
	} else if len(report.Campaigns) > 0 {
		w.logger.Info("scheduler", "finalize job done", map[string]interface{}{
			"campaigns": len(report.Campaigns),
			"refunded":  report.TotalRefunded(),
			"failed":    report.TotalFailed(),
		})
	}

	if report, err := w.processor.RunCancel(ctx); err != nil {
		w.logger.Error("scheduler", "cancel job failed", map[string]interface{}{
			"error": err.Error(),
		})
	} else if len(report.Campaigns) > 0 {
		w.logger.Info("scheduler", "cancel job done", map[string]interface{}{
			"campaigns": len(report.Campaigns),
			"refunded":  report.TotalRefunded(),
			"failed":    report.TotalFailed(),
		})
	}
}
