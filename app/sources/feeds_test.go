package sources

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFeedFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write feed file: %v", err)
	}
}

func TestLoadFeeds(t *testing.T) {
	dir := t.TempDir()
	writeFeedFile(t, dir, "alpha.yml", "name: Alpha Wire\nurl: https://alpha.example.com/rss\nsource_type: primary\nenabled: true\n")
	writeFeedFile(t, dir, "beta.yml", "url: https://beta.example.com/rss\n")
	writeFeedFile(t, dir, "notes.txt", "not a feed")

	feeds, err := LoadFeeds(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(feeds) != 2 {
		t.Fatalf("Expected 2 feeds, got %d", len(feeds))
	}

	if feeds[0].Name != "Alpha Wire" || feeds[0].SourceType != "primary" || !feeds[0].Enabled {
		t.Errorf("Unexpected first feed: %+v", feeds[0])
	}

	// Missing fields fall back: name from filename, secondary tier,
	// enabled.
	if feeds[1].Name != "beta" || feeds[1].SourceType != "secondary" || !feeds[1].Enabled {
		t.Errorf("Unexpected second feed: %+v", feeds[1])
	}
}

func TestLoadFeeds_MissingDir(t *testing.T) {
	feeds, err := LoadFeeds(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Errorf("Expected missing directory to be tolerated, got %v", err)
	}
	if len(feeds) != 0 {
		t.Errorf("Expected no feeds, got %d", len(feeds))
	}
}

func TestLoadFeeds_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing url", "name: broken\n"},
		{"bad source type", "url: https://x.example.com/rss\nsource_type: tertiary\n"},
		{"bad yaml", "url: [unclosed\n"},
	}
	for _, tc := range cases {
		dir := t.TempDir()
		writeFeedFile(t, dir, "feed.yml", tc.content)

		if _, err := LoadFeeds(dir); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestLoadFeeds_DisabledPreserved(t *testing.T) {
	dir := t.TempDir()
	writeFeedFile(t, dir, "off.yml", "url: https://off.example.com/rss\nenabled: false\n")

	feeds, err := LoadFeeds(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(feeds) != 1 || feeds[0].Enabled {
		t.Errorf("Expected disabled feed loaded but flagged off, got %+v", feeds)
	}
}
