package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/jfscargo/backoffice/internal/finance/report"
	"github.com/jfscargo/backoffice/internal/shared"
)

// TaskTypeReportWarmup is the task type for refreshing the cached daily report.
const TaskTypeReportWarmup = "report:warmup"

// NewReportWarmupTask constructs the warmup task. It carries no payload.
func NewReportWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskTypeReportWarmup, nil)
}

// ReportWarmupJob rebuilds the cached daily report so the first request after
// the business-day rollover does not pay the aggregation cost.
type ReportWarmupJob struct {
	Reports *report.Service
	Logger  *slog.Logger
}

// Handle processes TaskTypeReportWarmup tasks.
func (j *ReportWarmupJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil || j.Reports == nil {
		return errors.New("report warmup: handler not configured")
	}
	if err := j.Reports.Invalidate(ctx); err != nil {
		return err
	}
	system := shared.Identity{Roles: []string{shared.RoleSuperAdmin}}
	if _, err := j.Reports.Daily(ctx, system, ""); err != nil {
		j.Logger.Error("warm report cache", slog.Any("error", err))
		return err
	}
	j.Logger.Info("report cache warmed")
	return nil
}
