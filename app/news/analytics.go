package news

import (
	"sort"
	"strings"
	"time"
)

// KeywordCount is one entry of the top-keywords ranking.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// TopicCount is one entry of the trending-topics ranking.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "are": true, "from": true, "has": true, "have": true,
}

var climateKeywordSet = func() map[string]bool {
	m := make(map[string]bool, len(ClimateKeywords))
	for _, k := range ClimateKeywords {
		m[k] = true
	}
	return m
}()

// TopKeywords counts how many articles mention each climate keyword in
// title or description and returns the topN most frequent.
func TopKeywords(articles []Article, topN int) []KeywordCount {
	freq := make(map[string]int)
	for _, a := range articles {
		text := strings.ToLower(a.Title + " " + a.Description)
		for _, keyword := range ClimateKeywords {
			if strings.Contains(text, keyword) {
				freq[keyword]++
			}
		}
	}

	counts := make([]KeywordCount, 0, len(freq))
	for keyword, count := range freq {
		counts = append(counts, KeywordCount{Keyword: keyword, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Keyword < counts[j].Keyword
	})

	if len(counts) > topN {
		counts = counts[:topN]
	}
	return counts
}

// TrendingTopics extracts frequent title words longer than four
// characters, skipping stop words and the climate keywords themselves.
func TrendingTopics(articles []Article, topN int) []TopicCount {
	freq := make(map[string]int)
	for _, a := range articles {
		if a.Title == "" {
			continue
		}
		for _, word := range splitWords(strings.ToLower(a.Title)) {
			if len(word) <= 4 || stopWords[word] || climateKeywordSet[word] {
				continue
			}
			freq[word]++
		}
	}

	counts := make([]TopicCount, 0, len(freq))
	for topic, count := range freq {
		counts = append(counts, TopicCount{Topic: topic, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Topic < counts[j].Topic
	})

	if len(counts) > topN {
		counts = counts[:topN]
	}
	return counts
}

// DailyVolume counts articles per calendar day (UTC) over the last
// days days, zero-filling days with no articles. Events count on their
// start date when they have one.
func DailyVolume(articles []Article, days int, now time.Time) map[string]int {
	daily := make(map[string]int, days)
	for i := days - 1; i >= 0; i-- {
		daily[now.AddDate(0, 0, -i).UTC().Format("2006-01-02")] = 0
	}

	for _, a := range articles {
		at := a.PublishedAt
		if a.StartAt != nil {
			at = *a.StartAt
		}
		if at.IsZero() {
			at = now
		}
		key := at.UTC().Format("2006-01-02")
		if _, ok := daily[key]; ok {
			daily[key]++
		}
	}

	return daily
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}
