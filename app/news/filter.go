package news

import (
	"sort"
	"strings"
)

// FilterByRegion keeps articles whose resolved region matches exactly.
// An empty region returns the input unchanged.
func FilterByRegion(articles []Article, region string) []Article {
	if region == "" {
		return articles
	}

	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.Region == region {
			out = append(out, a)
		}
	}
	return out
}

// FilterByKeyword keeps articles whose title, description, or content
// contains the keyword, case-insensitive.
func FilterByKeyword(articles []Article, keyword string) []Article {
	if keyword == "" {
		return articles
	}

	needle := strings.ToLower(keyword)
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if strings.Contains(strings.ToLower(a.Title), needle) ||
			strings.Contains(strings.ToLower(a.Description), needle) ||
			strings.Contains(strings.ToLower(a.Content), needle) {
			out = append(out, a)
		}
	}
	return out
}

// FilterByMinRelevance drops articles scoring below the threshold.
func FilterByMinRelevance(articles []Article, minRelevance int) []Article {
	if minRelevance <= 0 {
		return articles
	}

	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.RelevanceScore >= minRelevance {
			out = append(out, a)
		}
	}
	return out
}

// SortByRelevance orders articles by relevance score descending. The
// sort is stable so fetch-merge order breaks ties.
func SortByRelevance(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].RelevanceScore > articles[j].RelevanceScore
	})
}

// SortByStartTime orders events by start time ascending, soonest first.
// Events without a start time sort last.
func SortByStartTime(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		if articles[i].StartAt == nil {
			return false
		}
		if articles[j].StartAt == nil {
			return true
		}
		return articles[i].StartAt.Before(*articles[j].StartAt)
	})
}
