package database

import (
	"fmt"
	"sort"
	"time"
)

var _ SourceMetricsRepository = (*SourceMetricsRepo)(nil)

// SourceMetricsRepo handles database operations for source fetch
// metrics.
type SourceMetricsRepo struct {
	db *DB
}

func NewSourceMetricsRepo(db *DB) *SourceMetricsRepo {
	return &SourceMetricsRepo{db: db}
}

// RecordFetch appends one fetch outcome.
func (r *SourceMetricsRepo) RecordFetch(source, sourceType string, ok bool, itemCount int, duration time.Duration, fetchErr string) error {
	okInt := 0
	if ok {
		okInt = 1
	}

	_, err := r.db.Exec(`
		INSERT INTO source_fetches (source, source_type, ok, item_count, duration_ms, error, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, source, sourceType, okInt, itemCount, duration.Milliseconds(), fetchErr, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record fetch: %w", err)
	}

	return nil
}

// GetSourceStats aggregates fetch outcomes per source over the last
// days days, ranked by success rate then average item volume.
func (r *SourceMetricsRepo) GetSourceStats(days int) ([]SourceStats, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	rows, err := r.db.Query(`
		SELECT source, source_type, COUNT(*), SUM(ok), AVG(item_count), AVG(duration_ms)
		FROM source_fetches
		WHERE fetched_at >= ?
		GROUP BY source, source_type
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query source stats: %w", err)
	}
	defer rows.Close()

	var stats []SourceStats
	for rows.Next() {
		var s SourceStats
		if err := rows.Scan(&s.Source, &s.SourceType, &s.TotalFetches, &s.Successes, &s.AvgItems, &s.AvgDurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan source stats: %w", err)
		}
		if s.TotalFetches > 0 {
			s.SuccessRate = float64(s.Successes) / float64(s.TotalFetches)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate source stats: %w", err)
	}

	for i := range stats {
		lastAt, lastOK, err := r.lastFetch(stats[i].Source)
		if err != nil {
			return nil, err
		}
		stats[i].LastFetchedAt = lastAt
		stats[i].LastOK = lastOK
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].SuccessRate != stats[j].SuccessRate {
			return stats[i].SuccessRate > stats[j].SuccessRate
		}
		return stats[i].AvgItems > stats[j].AvgItems
	})

	return stats, nil
}

// PruneOlderThan deletes fetch records older than days days and returns
// how many were removed.
func (r *SourceMetricsRepo) PruneOlderThan(days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	result, err := r.db.Exec(`DELETE FROM source_fetches WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune fetch records: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned records: %w", err)
	}

	return deleted, nil
}

func (r *SourceMetricsRepo) lastFetch(source string) (*time.Time, bool, error) {
	var fetchedAt time.Time
	var ok int

	err := r.db.QueryRow(`
		SELECT fetched_at, ok
		FROM source_fetches
		WHERE source = ?
		ORDER BY fetched_at DESC
		LIMIT 1
	`, source).Scan(&fetchedAt, &ok)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query last fetch for %s: %w", source, err)
	}

	return &fetchedAt, ok == 1, nil
}
