package news

import (
	"testing"
	"time"
)

func TestFilterByRegion(t *testing.T) {
	articles := []Article{
		{Title: "A", Region: "africa"},
		{Title: "B", Region: "europe"},
		{Title: "C", Region: "africa"},
	}

	result := FilterByRegion(articles, "africa")
	if len(result) != 2 {
		t.Errorf("Expected 2 african articles, got %d", len(result))
	}

	result = FilterByRegion(articles, "")
	if len(result) != 3 {
		t.Errorf("Expected empty region to pass everything, got %d", len(result))
	}
}

func TestFilterByKeyword(t *testing.T) {
	articles := []Article{
		{Title: "Drought in the Sahel"},
		{Description: "A severe DROUGHT develops"},
		{Content: "Long-form piece about drought management"},
		{Title: "Unrelated story"},
	}

	result := FilterByKeyword(articles, "drought")
	if len(result) != 3 {
		t.Errorf("Expected 3 matches across title/description/content, got %d", len(result))
	}

	result = FilterByKeyword(articles, "")
	if len(result) != 4 {
		t.Errorf("Expected empty keyword to pass everything, got %d", len(result))
	}
}

func TestFilterByMinRelevance(t *testing.T) {
	articles := []Article{
		{Title: "A", RelevanceScore: 0},
		{Title: "B", RelevanceScore: 2},
		{Title: "C", RelevanceScore: 5},
	}

	result := FilterByMinRelevance(articles, 2)
	if len(result) != 2 {
		t.Errorf("Expected 2 articles at threshold 2, got %d", len(result))
	}

	result = FilterByMinRelevance(articles, 0)
	if len(result) != 3 {
		t.Errorf("Expected threshold 0 to pass everything, got %d", len(result))
	}
}

func TestSortByRelevance_StableDescending(t *testing.T) {
	articles := []Article{
		{Title: "low", RelevanceScore: 1},
		{Title: "high-first", RelevanceScore: 5},
		{Title: "high-second", RelevanceScore: 5},
	}

	SortByRelevance(articles)

	if articles[0].Title != "high-first" || articles[1].Title != "high-second" {
		t.Errorf("Expected stable descending order, got %s then %s", articles[0].Title, articles[1].Title)
	}
	if articles[2].RelevanceScore != 1 {
		t.Errorf("Expected lowest score last, got %d", articles[2].RelevanceScore)
	}
}

func TestSortByStartTime(t *testing.T) {
	earlier := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	later := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	events := []Article{
		{Title: "no-start"},
		{Title: "later", StartAt: &later},
		{Title: "earlier", StartAt: &earlier},
	}

	SortByStartTime(events)

	if events[0].Title != "earlier" || events[1].Title != "later" {
		t.Errorf("Expected soonest first, got %s then %s", events[0].Title, events[1].Title)
	}
	if events[2].Title != "no-start" {
		t.Errorf("Expected undated event last, got %s", events[2].Title)
	}
}
