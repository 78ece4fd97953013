package database

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *SourceMetricsRepo {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return NewSourceMetricsRepo(db)
}

func TestRecordFetchAndStats(t *testing.T) {
	repo := newTestRepo(t)

	fetches := []struct {
		source string
		ok     bool
		items  int
	}{
		{"ReliefWeb", true, 20},
		{"ReliefWeb", true, 18},
		{"ReliefWeb", false, 0},
		{"wire", true, 10},
	}
	for _, f := range fetches {
		if err := repo.RecordFetch(f.source, "primary", f.ok, f.items, 150*time.Millisecond, ""); err != nil {
			t.Fatalf("Failed to record fetch: %v", err)
		}
	}

	stats, err := repo.GetSourceStats(7)
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(stats))
	}

	// Ranked by success rate: wire (1.0) before ReliefWeb (0.67).
	if stats[0].Source != "wire" || stats[1].Source != "ReliefWeb" {
		t.Errorf("Unexpected ranking: %+v", stats)
	}

	rw := stats[1]
	if rw.TotalFetches != 3 || rw.Successes != 2 {
		t.Errorf("Unexpected ReliefWeb counts: %+v", rw)
	}
	if rw.SuccessRate < 0.66 || rw.SuccessRate > 0.67 {
		t.Errorf("Unexpected success rate: %f", rw.SuccessRate)
	}
	if rw.LastFetchedAt == nil {
		t.Error("Expected last fetch timestamp")
	}
	// The most recent ReliefWeb fetch failed.
	if rw.LastOK {
		t.Errorf("Expected last fetch marked failed: %+v", rw)
	}
}

func TestGetSourceStats_Empty(t *testing.T) {
	repo := newTestRepo(t)

	stats, err := repo.GetSourceStats(7)
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("Expected no stats, got %+v", stats)
	}
}

func TestPruneOlderThan(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.RecordFetch("wire", "secondary", true, 5, time.Millisecond, ""); err != nil {
		t.Fatalf("Failed to record fetch: %v", err)
	}

	deleted, err := repo.PruneOlderThan(30)
	if err != nil {
		t.Fatalf("Failed to prune: %v", err)
	}
	if deleted != 0 {
		t.Errorf("Expected nothing pruned, got %d", deleted)
	}

	// Backdate the record, then prune it.
	if _, err := repo.db.Exec(`UPDATE source_fetches SET fetched_at = ?`, time.Now().UTC().AddDate(0, 0, -60)); err != nil {
		t.Fatalf("Failed to backdate record: %v", err)
	}

	deleted, err = repo.PruneOlderThan(30)
	if err != nil {
		t.Fatalf("Failed to prune: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 record pruned, got %d", deleted)
	}

	stats, err := repo.GetSourceStats(90)
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("Expected empty stats after prune, got %+v", stats)
	}
}
