package sources

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/climawatch/news-service/app/cfg"
	"github.com/climawatch/news-service/app/news"
)

// FetchRecorder persists the outcome of one source fetch. Implemented
// by the database source metrics repository.
type FetchRecorder interface {
	RecordFetch(source, sourceType string, ok bool, itemCount int, duration time.Duration, fetchErr string) error
}

// SourceStatus is the last observed outcome for one source, kept in
// memory for the debug endpoint.
type SourceStatus struct {
	Source     string    `json:"source"`
	SourceType string    `json:"sourceType"`
	OK         bool      `json:"ok"`
	ItemCount  int       `json:"itemCount"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"durationMs"`
	FetchedAt  time.Time `json:"fetchedAt"`
}

// Aggregator fans out to all configured sources, normalizes their
// records into news.Article, and dedupes each tier. Per-source failures
// are logged and skipped; a tier only errors when every one of its
// sources failed.
type Aggregator struct {
	client        *Client
	feeds         []FeedConfig
	recorder      FetchRecorder
	concurrency   int
	reliefWebURL  string
	gnewsKey      string
	newsAPIKey    string
	eventbriteKey string
	now           func() time.Time

	mu         sync.RWMutex
	lastStatus map[string]SourceStatus
}

func NewAggregator(client *Client, feeds []FeedConfig, recorder FetchRecorder) *Aggregator {
	c := cfg.Get()

	return &Aggregator{
		client:        client,
		feeds:         feeds,
		recorder:      recorder,
		concurrency:   c.FetchConcurrency,
		reliefWebURL:  c.ReliefWebURL,
		gnewsKey:      c.GNewsAPIKey,
		newsAPIKey:    c.NewsAPIKey,
		eventbriteKey: c.EventbriteAPIKey,
		now:           time.Now,
		lastStatus:    make(map[string]SourceStatus),
	}
}

type fetchTask struct {
	source     string
	sourceType string
	run        func(ctx context.Context) ([]news.Article, error)
}

// FetchPrimary fetches ReliefWeb and all primary-tier feeds.
func (a *Aggregator) FetchPrimary(ctx context.Context) ([]news.Article, error) {
	tasks := []fetchTask{
		{source: "ReliefWeb", sourceType: news.SourceTypePrimary, run: a.fetchReliefWeb},
	}
	tasks = append(tasks, a.feedTasks(news.SourceTypePrimary)...)

	articles, err := a.fanOut(ctx, tasks)
	if err != nil {
		return nil, fmt.Errorf("all primary sources failed: %w", err)
	}

	return news.Deduplicate(articles), nil
}

// FetchSecondary fetches GNews and NewsAPI (when configured) and all
// secondary-tier feeds.
func (a *Aggregator) FetchSecondary(ctx context.Context) ([]news.Article, error) {
	var tasks []fetchTask
	if a.gnewsKey != "" {
		tasks = append(tasks, fetchTask{source: "GNews", sourceType: news.SourceTypeSecondary, run: a.fetchGNews})
	} else {
		slog.Debug("GNews API key not set, skipping")
	}
	if a.newsAPIKey != "" {
		tasks = append(tasks, fetchTask{source: "NewsAPI", sourceType: news.SourceTypeSecondary, run: a.fetchNewsAPI})
	} else {
		slog.Debug("NewsAPI key not set, skipping")
	}
	tasks = append(tasks, a.feedTasks(news.SourceTypeSecondary)...)

	articles, err := a.fanOut(ctx, tasks)
	if err != nil {
		return nil, fmt.Errorf("all secondary sources failed: %w", err)
	}

	return news.Deduplicate(articles), nil
}

// FetchEvents fetches Eventbrite when configured.
func (a *Aggregator) FetchEvents(ctx context.Context) ([]news.Article, error) {
	var tasks []fetchTask
	if a.eventbriteKey != "" {
		tasks = append(tasks, fetchTask{source: "Eventbrite", sourceType: news.SourceTypeEvent, run: a.fetchEventbrite})
	} else {
		slog.Debug("Eventbrite API key not set, skipping")
	}

	events, err := a.fanOut(ctx, tasks)
	if err != nil {
		return nil, fmt.Errorf("all event sources failed: %w", err)
	}

	return news.Deduplicate(events), nil
}

// LastStatuses returns the last fetch outcome per source.
func (a *Aggregator) LastStatuses() []SourceStatus {
	a.mu.RLock()
	defer a.mu.RUnlock()

	statuses := make([]SourceStatus, 0, len(a.lastStatus))
	for _, status := range a.lastStatus {
		statuses = append(statuses, status)
	}
	return statuses
}

// SourceCount returns how many sources are configured, including
// keyless providers currently skipped.
func (a *Aggregator) SourceCount() int {
	return len(a.feeds) + 4 // ReliefWeb, GNews, NewsAPI, Eventbrite
}

func (a *Aggregator) feedTasks(sourceType string) []fetchTask {
	var tasks []fetchTask
	for _, feed := range a.feeds {
		if !feed.Enabled || feed.SourceType != sourceType {
			continue
		}
		f := feed
		tasks = append(tasks, fetchTask{
			source:     f.Name,
			sourceType: f.SourceType,
			run: func(ctx context.Context) ([]news.Article, error) {
				return a.fetchFeed(ctx, f)
			},
		})
	}
	return tasks
}

// fanOut runs all tasks concurrently, bounded by the configured
// concurrency. Results keep task order so merge precedence is
// deterministic. An error is returned only when every task failed.
func (a *Aggregator) fanOut(ctx context.Context, tasks []fetchTask) ([]news.Article, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	results := make([][]news.Article, len(tasks))
	errs := make([]error, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			started := a.now()
			articles, err := task.run(gctx)
			a.record(task, articles, err, a.now().Sub(started))

			if err != nil {
				slog.Warn("Source fetch failed", "source", task.source, "error", err)
				errs[i] = err
				return nil
			}

			results[i] = articles
			return nil
		})
	}

	// Workers only report via the slices, never an error.
	_ = g.Wait()

	failed := 0
	var lastErr error
	merged := make([]news.Article, 0)
	for i := range tasks {
		if errs[i] != nil {
			failed++
			lastErr = errs[i]
			continue
		}
		merged = append(merged, results[i]...)
	}

	if failed == len(tasks) {
		return nil, lastErr
	}

	return merged, nil
}

func (a *Aggregator) record(task fetchTask, articles []news.Article, err error, duration time.Duration) {
	status := SourceStatus{
		Source:     task.source,
		SourceType: task.sourceType,
		OK:         err == nil,
		ItemCount:  len(articles),
		DurationMs: duration.Milliseconds(),
		FetchedAt:  a.now(),
	}
	if err != nil {
		status.Error = err.Error()
	}

	a.mu.Lock()
	a.lastStatus[task.source] = status
	a.mu.Unlock()

	if a.recorder != nil {
		if recErr := a.recorder.RecordFetch(task.source, task.sourceType, status.OK, status.ItemCount, duration, status.Error); recErr != nil {
			slog.Warn("Failed to record fetch metrics", "source", task.source, "error", recErr)
		}
	}
}
