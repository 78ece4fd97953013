package api

import (
	"context"
	"time"

	"github.com/climawatch/news-service/app/cache"
	"github.com/climawatch/news-service/app/database"
	"github.com/climawatch/news-service/app/news"
	"github.com/climawatch/news-service/app/pipeline"
	"github.com/climawatch/news-service/app/sources"
)

// NewsProvider serves the processed article and event sets.
type NewsProvider interface {
	Articles(ctx context.Context) ([]news.Article, error)
	Events(ctx context.Context) ([]news.Article, error)
	Prewarm(ctx context.Context) error
}

var _ NewsProvider = (*pipeline.Pipeline)(nil)

// SourceStatusProvider exposes per-source fetch diagnostics.
type SourceStatusProvider interface {
	LastStatuses() []sources.SourceStatus
	SourceCount() int
}

var _ SourceStatusProvider = (*sources.Aggregator)(nil)

type Handler struct {
	pipeline    NewsProvider
	caches      *cache.Manager
	aggregator  SourceStatusProvider
	metricsRepo database.SourceMetricsRepository
	db          *database.DB
	startedAt   time.Time
}

// RefreshRequest is the body of POST /api/news/cache/refresh.
type RefreshRequest struct {
	Source  string `json:"source"`
	Prewarm bool   `json:"prewarm"`
}
