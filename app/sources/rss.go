package sources

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/climawatch/news-service/app/news"
)

// fetchFeed downloads and parses one RSS/Atom feed. The download goes
// through the shared retry helper like every other provider.
func (a *Aggregator) fetchFeed(ctx context.Context, feed FeedConfig) ([]news.Article, error) {
	data, err := a.client.Get(ctx, feed.URL)
	if err != nil {
		return nil, err
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	articles := make([]news.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		articles = append(articles, normalizeFeedItem(item, feed, a.now()))
	}

	return articles, nil
}

func normalizeFeedItem(item *gofeed.Item, feed FeedConfig, now time.Time) news.Article {
	publishedAt := now
	if item.PublishedParsed != nil {
		publishedAt = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		publishedAt = *item.UpdatedParsed
	}

	a := news.Article{
		ID:          cmp.Or(item.GUID, item.Link),
		Title:       item.Title,
		Description: item.Description,
		Content:     item.Content,
		URL:         item.Link,
		PublishedAt: publishedAt,
		Source:      feed.Name,
		SourceType:  feed.SourceType,
	}

	a.Region = news.ResolveRegion(news.RegionInput{
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
	})
	a.RelevanceScore = news.RelevanceScore(a)

	return a
}
