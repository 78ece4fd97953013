package news

import (
	"strings"
)

// ClimateKeywords drives both relevance scoring and the keyword
// analytics. Matching is plain substring containment, not tokenized;
// that approximation is accepted for this data.
var ClimateKeywords = []string{
	"climate", "weather", "rain", "drought", "flood", "storm", "heatwave", "cyclone", "hurricane", "typhoon",
	"wildfire", "temperature", "precipitation", "greenhouse", "carbon", "emissions", "global warming", "sea level",
	"adaptation", "mitigation", "resilience", "disaster", "environment", "sustainability", "renewable", "solar", "wind",
}

// DefaultMinRelevance is the score threshold applied when the caller
// does not supply one.
const DefaultMinRelevance = 2

// RelevanceScore counts climate keyword hits in the article text and
// adds bonuses for a resolved region, a known country, and primary-tier
// sources. Scores are recomputed on every fetch, never persisted.
func RelevanceScore(a Article) int {
	score := 0

	text := strings.ToLower(a.Title + " " + a.Description + " " + a.Content)
	for _, keyword := range ClimateKeywords {
		if strings.Contains(text, keyword) {
			score++
		}
	}

	if a.Region != "" && a.Region != RegionGlobal {
		score += 2
	}
	if a.Country != "" {
		score++
	}
	if a.SourceType == SourceTypePrimary {
		score += 2
	}

	return score
}
