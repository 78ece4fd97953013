package sources

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/climawatch/news-service/app/news"
)

// FeedConfig describes one RSS/Atom source, loaded from a .yml file in
// the feeds directory. The file name (without extension) is the
// fallback source name.
type FeedConfig struct {
	Name       string `yaml:"name"`
	URL        string `yaml:"url"`
	SourceType string `yaml:"source_type"`
	Enabled    bool   `yaml:"enabled"`
}

// LoadFeeds reads all feed configuration files from dir. A missing
// directory yields an empty list, not an error.
func LoadFeeds(dir string) ([]FeedConfig, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}

	feeds := make([]FeedConfig, 0, len(files))
	for _, file := range files {
		feed, err := parseFeedConfig(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}
		feeds = append(feeds, feed)
	}

	return feeds, nil
}

func parseFeedConfig(file string) (FeedConfig, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return FeedConfig{}, fmt.Errorf("failed to read file: %w", err)
	}

	feed := FeedConfig{Enabled: true}
	if err := yaml.Unmarshal(data, &feed); err != nil {
		return FeedConfig{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if feed.URL == "" {
		return FeedConfig{}, fmt.Errorf("missing feed URL")
	}

	if feed.Name == "" {
		feed.Name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}

	if feed.SourceType == "" {
		feed.SourceType = news.SourceTypeSecondary
	}
	if feed.SourceType != news.SourceTypePrimary && feed.SourceType != news.SourceTypeSecondary {
		return FeedConfig{}, fmt.Errorf("invalid source_type %q", feed.SourceType)
	}

	return feed, nil
}
