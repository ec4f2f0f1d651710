package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/service"
)

// TotalsRefreshJob reconciles the derived pricing columns of every project
// against its stored ledgers. The recompute is idempotent, so the job is a
// safety net against drift rather than a source of truth.
type TotalsRefreshJob struct {
	projects *service.ProjectService
	logger   *zap.Logger
	timeout  time.Duration
}

func NewTotalsRefreshJob(projects *service.ProjectService, logger *zap.Logger) *TotalsRefreshJob {
	return &TotalsRefreshJob{
		projects: projects,
		logger:   logger,
		timeout:  10 * time.Minute,
	}
}

// Run executes one reconciliation pass
func (j *TotalsRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	refreshed, err := j.projects.RecalculateAll(ctx)
	if err != nil {
		j.logger.Error("totals refresh failed", zap.Error(err))
		return
	}

	j.logger.Info("totals refresh completed",
		zap.Int("projects_refreshed", refreshed),
		zap.Duration("duration", time.Since(start)))
}
