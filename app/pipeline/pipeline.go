package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/climawatch/news-service/app/cache"
	"github.com/climawatch/news-service/app/news"
	"github.com/climawatch/news-service/app/sources"
)

// Pipeline composes the source aggregator with the cache layer.
// Articles flow one way: fetch, normalize, merge, dedupe, score-sort,
// cache. Nothing feeds back except explicit invalidation.
type Pipeline struct {
	aggregator *sources.Aggregator
	caches     *cache.Manager
}

func New(aggregator *sources.Aggregator, caches *cache.Manager) *Pipeline {
	return &Pipeline{
		aggregator: aggregator,
		caches:     caches,
	}
}

// Articles returns the fully processed article set: both source tiers
// merged, deduped by (title, source) and by URL, sorted by relevance.
// Each layer is served from its cache when valid. A single failed tier
// degrades to the other; the error surfaces only when both fail.
func (p *Pipeline) Articles(ctx context.Context) ([]news.Article, error) {
	return p.caches.GetOrFetch(ctx, cache.Processed, func(ctx context.Context) ([]news.Article, error) {
		primary, primaryErr := p.caches.GetOrFetch(ctx, cache.Primary, p.aggregator.FetchPrimary)
		if primaryErr != nil {
			slog.Warn("Primary tier fetch failed", "error", primaryErr)
		}

		secondary, secondaryErr := p.caches.GetOrFetch(ctx, cache.Secondary, p.aggregator.FetchSecondary)
		if secondaryErr != nil {
			slog.Warn("Secondary tier fetch failed", "error", secondaryErr)
		}

		if primaryErr != nil && secondaryErr != nil {
			return nil, primaryErr
		}

		// Primary results come first so they win dedup ties.
		merged := make([]news.Article, 0, len(primary)+len(secondary))
		merged = append(merged, primary...)
		merged = append(merged, secondary...)

		merged = news.Deduplicate(merged)
		merged = news.DeduplicateByURL(merged)
		news.SortByRelevance(merged)

		return merged, nil
	})
}

// Events returns the cached event set, soonest first.
func (p *Pipeline) Events(ctx context.Context) ([]news.Article, error) {
	return p.caches.GetOrFetch(ctx, cache.Events, func(ctx context.Context) ([]news.Article, error) {
		events, err := p.aggregator.FetchEvents(ctx)
		if err != nil {
			return nil, err
		}
		news.SortByStartTime(events)
		return events, nil
	})
}

// Prewarm refreshes the article and event caches concurrently,
// re-fetching whatever is invalid.
func (p *Pipeline) Prewarm(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, err := p.Articles(gctx)
		return err
	})
	g.Go(func() error {
		_, err := p.Events(gctx)
		return err
	})

	return g.Wait()
}
