package database

import (
	"time"
)

// SourceMetricsRepository stores and aggregates source fetch outcomes.
type SourceMetricsRepository interface {
	RecordFetch(source, sourceType string, ok bool, itemCount int, duration time.Duration, fetchErr string) error
	GetSourceStats(days int) ([]SourceStats, error)
	PruneOlderThan(days int) (int64, error)
}
