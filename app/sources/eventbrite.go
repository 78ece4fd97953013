package sources

import (
	"context"
	"net/url"
	"time"

	"github.com/climawatch/news-service/app/news"
)

const eventbriteBaseURL = "https://www.eventbriteapi.com/v3/events/search/"

type eventbriteResponse struct {
	Events []eventbriteEvent `json:"events"`
}

type eventbriteEvent struct {
	ID          string          `json:"id"`
	Name        eventbriteText  `json:"name"`
	Description eventbriteText  `json:"description"`
	URL         string          `json:"url"`
	Start       eventbriteTime  `json:"start"`
	End         eventbriteTime  `json:"end"`
	Venue       eventbriteVenue `json:"venue"`
}

type eventbriteText struct {
	Text string `json:"text"`
}

type eventbriteTime struct {
	Local string `json:"local"`
}

type eventbriteVenue struct {
	Name    string            `json:"name"`
	Address eventbriteAddress `json:"address"`
}

type eventbriteAddress struct {
	CountryCode string `json:"country_code"`
}

func (a *Aggregator) fetchEventbrite(ctx context.Context) ([]news.Article, error) {
	now := a.now()
	params := url.Values{}
	params.Set("q", "climate")
	params.Set("token", a.eventbriteKey)
	params.Set("sort_by", "date")
	params.Set("expand", "venue")
	params.Set("page_size", "50")
	params.Set("start_date.range_start", now.AddDate(0, 0, -30).UTC().Format(time.RFC3339))
	params.Set("start_date.range_end", now.AddDate(0, 0, 30).UTC().Format(time.RFC3339))

	var resp eventbriteResponse
	if err := a.client.GetJSON(ctx, eventbriteBaseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	events := make([]news.Article, 0, len(resp.Events))
	for _, event := range resp.Events {
		events = append(events, normalizeEventbriteEvent(event, now))
	}

	return events, nil
}

// Eventbrite local times carry no zone offset.
const eventbriteTimeLayout = "2006-01-02T15:04:05"

func normalizeEventbriteEvent(event eventbriteEvent, now time.Time) news.Article {
	a := news.Article{
		ID:          event.ID,
		Title:       event.Name.Text,
		Description: event.Description.Text,
		URL:         event.URL,
		PublishedAt: now,
		Source:      "Eventbrite",
		SourceType:  news.SourceTypeEvent,
		Country:     event.Venue.Address.CountryCode,
	}

	if t, err := time.Parse(eventbriteTimeLayout, event.Start.Local); err == nil {
		a.StartAt = &t
		a.PublishedAt = t
	}
	if t, err := time.Parse(eventbriteTimeLayout, event.End.Local); err == nil {
		a.EndAt = &t
	}

	a.Region = news.ResolveRegion(news.RegionInput{
		Country:      a.Country,
		VenueCountry: event.Venue.Address.CountryCode,
		Title:        a.Title,
		Description:  a.Description,
	})
	a.RelevanceScore = news.RelevanceScore(a)

	return a
}
