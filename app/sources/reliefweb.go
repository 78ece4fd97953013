package sources

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/climawatch/news-service/app/news"
)

type reliefWebResponse struct {
	Data []reliefWebReport `json:"data"`
}

type reliefWebReport struct {
	ID     string          `json:"id"`
	Fields reliefWebFields `json:"fields"`
}

type reliefWebFields struct {
	Title   string             `json:"title"`
	Body    string             `json:"body"`
	URL     string             `json:"url"`
	Date    reliefWebDate      `json:"date"`
	Country []reliefWebCountry `json:"country"`
}

type reliefWebDate struct {
	Created string `json:"created"`
}

type reliefWebCountry struct {
	ISO3      string `json:"iso3"`
	Name      string `json:"name"`
	Shortname string `json:"shortname"`
}

// fetchReliefWeb pulls recent climate reports from the ReliefWeb API.
func (a *Aggregator) fetchReliefWeb(ctx context.Context) ([]news.Article, error) {
	params := url.Values{}
	params.Set("appname", "climawatch")
	params.Set("query[value]", "climate")
	params.Set("limit", "20")
	params.Add("sort[]", "date:desc")
	for _, field := range []string{"title", "body", "url", "date", "country"} {
		params.Add("fields[include][]", field)
	}

	var resp reliefWebResponse
	if err := a.client.GetJSON(ctx, a.reliefWebURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	articles := make([]news.Article, 0, len(resp.Data))
	for _, report := range resp.Data {
		articles = append(articles, normalizeReliefWebReport(report, a.now()))
	}

	return articles, nil
}

func normalizeReliefWebReport(report reliefWebReport, now time.Time) news.Article {
	f := report.Fields

	// ReliefWeb carries ISO3 codes, which the alpha-2 region table does
	// not resolve. The country names are folded into the keyword scan
	// instead; the code is still kept on the article.
	var country string
	var countryNames []string
	if len(f.Country) > 0 {
		country = strings.ToUpper(f.Country[0].ISO3)
		for _, c := range f.Country {
			if c.Shortname != "" {
				countryNames = append(countryNames, c.Shortname)
			} else if c.Name != "" {
				countryNames = append(countryNames, c.Name)
			}
		}
	}

	publishedAt := now
	if f.Date.Created != "" {
		if t, err := time.Parse(time.RFC3339, f.Date.Created); err == nil {
			publishedAt = t
		}
	}

	a := news.Article{
		ID:          report.ID,
		Title:       f.Title,
		Description: f.Body,
		URL:         f.URL,
		PublishedAt: publishedAt,
		Source:      "ReliefWeb",
		SourceType:  news.SourceTypePrimary,
		Country:     country,
	}

	a.Region = news.ResolveRegion(news.RegionInput{
		Title:       a.Title,
		Description: a.Description,
		Content:     strings.Join(countryNames, " "),
	})
	a.RelevanceScore = news.RelevanceScore(a)

	return a
}
