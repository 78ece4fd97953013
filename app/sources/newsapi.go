package sources

import (
	"context"
	"net/url"
	"time"

	"github.com/climawatch/news-service/app/news"
)

const newsAPIBaseURL = "https://newsapi.org/v2/everything"

type newsAPIResponse struct {
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Content     string        `json:"content"`
	URL         string        `json:"url"`
	PublishedAt string        `json:"publishedAt"`
	Source      newsAPISource `json:"source"`
}

type newsAPISource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (a *Aggregator) fetchNewsAPI(ctx context.Context) ([]news.Article, error) {
	params := url.Values{}
	params.Set("q", "climate")
	params.Set("apiKey", a.newsAPIKey)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", "20")

	var resp newsAPIResponse
	if err := a.client.GetJSON(ctx, newsAPIBaseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	articles := make([]news.Article, 0, len(resp.Articles))
	for _, article := range resp.Articles {
		articles = append(articles, normalizeNewsAPIArticle(article, a.now()))
	}

	return articles, nil
}

// NewsAPI carries no country information, so region resolution relies
// entirely on the keyword scan.
func normalizeNewsAPIArticle(article newsAPIArticle, now time.Time) news.Article {
	publishedAt := now
	if article.PublishedAt != "" {
		if t, err := time.Parse(time.RFC3339, article.PublishedAt); err == nil {
			publishedAt = t
		}
	}

	source := article.Source.Name
	if source == "" {
		source = "NewsAPI"
	}

	a := news.Article{
		ID:          article.URL,
		Title:       article.Title,
		Description: article.Description,
		Content:     article.Content,
		URL:         article.URL,
		PublishedAt: publishedAt,
		Source:      source,
		SourceType:  news.SourceTypeSecondary,
	}

	a.Region = news.ResolveRegion(news.RegionInput{
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
	})
	a.RelevanceScore = news.RelevanceScore(a)

	return a
}
