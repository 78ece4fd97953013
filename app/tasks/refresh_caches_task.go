package tasks

import (
	"context"
	"log/slog"

	"github.com/climawatch/news-service/app/pipeline"
)

// RefreshCachesTask re-fetches whichever caches have expired. Caches
// still valid are left untouched, so running it on every scheduler tick
// is cheap.
type RefreshCachesTask struct {
	Task
	pipeline *pipeline.Pipeline
}

func NewRefreshCachesTask(p *pipeline.Pipeline) *RefreshCachesTask {
	return &RefreshCachesTask{
		Task:     NewTask(TaskTypeRefreshCaches),
		pipeline: p,
	}
}

func (t *RefreshCachesTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.pipeline.Prewarm(ctx); err != nil {
		return err
	}

	slog.Debug("Task completed", "type", string(t.Type), "duration", t.GetDuration())

	return nil
}
