package news

import (
	"strings"
)

// Deduplicate collapses articles sharing a normalized (title, source)
// key. First-seen wins, so callers control precedence through merge
// order. Duplicates of the same story from differently named sources
// survive this pass; DeduplicateByURL catches those.
func Deduplicate(articles []Article) []Article {
	seen := make(map[string]bool, len(articles))
	out := make([]Article, 0, len(articles))

	for _, a := range articles {
		key := strings.TrimSpace(strings.ToLower(a.Title)) + "|" + a.Source
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}

	return out
}

// DeduplicateByURL keeps the first article seen for each URL. Articles
// without a URL are passed through untouched.
func DeduplicateByURL(articles []Article) []Article {
	seen := make(map[string]bool, len(articles))
	out := make([]Article, 0, len(articles))

	for _, a := range articles {
		if a.URL != "" {
			if seen[a.URL] {
				continue
			}
			seen[a.URL] = true
		}
		out = append(out, a)
	}

	return out
}
