package database

import (
	"time"
)

// SourceStats aggregates fetch outcomes for one source over a window.
type SourceStats struct {
	Source        string     `json:"source"`
	SourceType    string     `json:"sourceType"`
	TotalFetches  int        `json:"totalFetches"`
	Successes     int        `json:"successes"`
	SuccessRate   float64    `json:"successRate"`
	AvgItems      float64    `json:"avgItems"`
	AvgDurationMs float64    `json:"avgDurationMs"`
	LastFetchedAt *time.Time `json:"lastFetchedAt,omitempty"`
	LastOK        bool       `json:"lastOk"`
}
