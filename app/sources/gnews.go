package sources

import (
	"context"
	"net/url"
	"time"

	"github.com/climawatch/news-service/app/news"
)

const gnewsBaseURL = "https://gnews.io/api/v4/search"

type gnewsResponse struct {
	Articles []gnewsArticle `json:"articles"`
}

type gnewsArticle struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Content     string      `json:"content"`
	URL         string      `json:"url"`
	PublishedAt string      `json:"publishedAt"`
	Source      gnewsSource `json:"source"`
}

type gnewsSource struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Country string `json:"country"`
}

func (a *Aggregator) fetchGNews(ctx context.Context) ([]news.Article, error) {
	params := url.Values{}
	params.Set("q", "climate")
	params.Set("token", a.gnewsKey)
	params.Set("lang", "en")
	params.Set("max", "20")

	var resp gnewsResponse
	if err := a.client.GetJSON(ctx, gnewsBaseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	articles := make([]news.Article, 0, len(resp.Articles))
	for _, article := range resp.Articles {
		articles = append(articles, normalizeGNewsArticle(article, a.now()))
	}

	return articles, nil
}

func normalizeGNewsArticle(article gnewsArticle, now time.Time) news.Article {
	publishedAt := now
	if article.PublishedAt != "" {
		if t, err := time.Parse(time.RFC3339, article.PublishedAt); err == nil {
			publishedAt = t
		}
	}

	source := article.Source.Name
	if source == "" {
		source = "GNews"
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
		Country:     article.Source.Country,
	}

	a.Region = news.ResolveRegion(news.RegionInput{
		Country:     a.Country,
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
	})
	a.RelevanceScore = news.RelevanceScore(a)

	return a
}
