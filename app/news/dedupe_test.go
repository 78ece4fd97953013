package news

import (
	"reflect"
	"testing"
)

func TestDeduplicate_FirstSeenWins(t *testing.T) {
	articles := []Article{
		{Title: "Drought worsens", Source: "ReliefWeb", SourceType: SourceTypePrimary},
		{Title: "  drought worsens  ", Source: "ReliefWeb", SourceType: SourceTypeSecondary},
		{Title: "Drought worsens", Source: "UNFCCC"},
	}

	result := Deduplicate(articles)

	if len(result) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(result))
	}

	// The primary-tier item came first, so it survives.
	if result[0].SourceType != SourceTypePrimary {
		t.Errorf("Expected first-seen item to survive, got sourceType '%s'", result[0].SourceType)
	}

	// Same title from a different source is not a duplicate.
	if result[1].Source != "UNFCCC" {
		t.Errorf("Expected UNFCCC item to survive, got '%s'", result[1].Source)
	}
}

func TestDeduplicate_Idempotent(t *testing.T) {
	articles := []Article{
		{Title: "A", Source: "X"},
		{Title: "A", Source: "X"},
		{Title: "B", Source: "X"},
		{Title: "A", Source: "Y"},
	}

	once := Deduplicate(articles)
	twice := Deduplicate(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Deduplicate is not idempotent: %v vs %v", once, twice)
	}
}

func TestDeduplicate_Empty(t *testing.T) {
	if result := Deduplicate(nil); len(result) != 0 {
		t.Errorf("Expected empty result, got %d items", len(result))
	}
}

func TestDeduplicateByURL(t *testing.T) {
	articles := []Article{
		{Title: "Story A", Source: "FeedOne", URL: "http://example.com/a"},
		{Title: "Story A again", Source: "FeedTwo", URL: "http://example.com/a"},
		{Title: "Story B", Source: "FeedOne", URL: "http://example.com/b"},
		{Title: "No link", Source: "FeedOne"},
	}

	result := DeduplicateByURL(articles)

	if len(result) != 3 {
		t.Fatalf("Expected 3 articles, got %d", len(result))
	}

	if result[0].Source != "FeedOne" {
		t.Errorf("Expected first occurrence to win, got '%s'", result[0].Source)
	}
}
