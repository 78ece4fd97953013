package news

import (
	"time"
)

// Source tiers. Used as a relevance-scoring input and for metrics
// grouping only.
const (
	SourceTypePrimary   = "primary"
	SourceTypeSecondary = "secondary"
	SourceTypeEvent     = "event"
)

// Article is the common shape every provider record is normalized into.
// Articles are created fresh on every fetch cycle and never persisted.
type Article struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Content        string     `json:"content,omitempty"`
	URL            string     `json:"url"`
	PublishedAt    time.Time  `json:"publishedAt"`
	StartAt        *time.Time `json:"startAt,omitempty"` // events only
	EndAt          *time.Time `json:"endAt,omitempty"`   // events only
	Source         string     `json:"source"`
	SourceType     string     `json:"sourceType"`
	Country        string     `json:"country,omitempty"` // ISO 3166-1 alpha-2 when known
	Region         string     `json:"region"`
	RelevanceScore int        `json:"relevanceScore"`
}
