package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StalePendingOrderJob watches for orders stuck in Pending status.
// Runs every minute and logs a warning for each order older than the
// configured threshold, so operators can nudge the owning agent.
type StalePendingOrderJob struct {
	uowFactory commands.OrderUoWFactory
	threshold  time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewStalePendingOrderJob creates a job that flags stale pending orders.
// threshold controls how long an order may sit in Pending before it is
// reported.
func NewStalePendingOrderJob(
	uowFactory commands.OrderUoWFactory,
	threshold time.Duration,
	logger *slog.Logger,
) *StalePendingOrderJob {
	return &StalePendingOrderJob{
		uowFactory: uowFactory,
		threshold:  threshold,
		cron:       cron.New(),
		logger:     logger.With("component", "stale_pending_order_job"),
	}
}

// Start begins the stale order check, running every minute.
func (j *StalePendingOrderJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stale pending order check failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale pending order job started (running every minute)",
		"threshold", j.threshold)
	return nil
}

// Stop stops the stale order check.
func (j *StalePendingOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale pending order job stopped")
}

func (j *StalePendingOrderJob) run(ctx context.Context) error {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().UTC().Add(-j.threshold)
	stale, err := uow.OrderRepository().GetAllPendingOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, o := range stale {
		j.logger.WarnContext(ctx, "Order has been pending too long",
			"orderId", o.ID(),
			"agentId", o.AgentID(),
			"agentName", o.AgentName(),
			"age", time.Since(o.CreatedAt()).Round(time.Second),
		)
	}

	return nil
}
