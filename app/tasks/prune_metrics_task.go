package tasks

import (
	"context"
	"log/slog"

	"github.com/climawatch/news-service/app/database"
)

// PruneMetricsTask deletes source fetch records past the retention
// window.
type PruneMetricsTask struct {
	Task
	metricsRepo database.SourceMetricsRepository
	retention   int // days
}

func NewPruneMetricsTask(metricsRepo database.SourceMetricsRepository, retention int) *PruneMetricsTask {
	return &PruneMetricsTask{
		Task:        NewTask(TaskTypePruneMetrics),
		metricsRepo: metricsRepo,
		retention:   retention,
	}
}

func (t *PruneMetricsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	deleted, err := t.metricsRepo.PruneOlderThan(t.retention)
	if err != nil {
		return err
	}

	slog.Info("Task completed", "type", string(t.Type), "duration", t.GetDuration(), "deleted", deleted)

	return nil
}
