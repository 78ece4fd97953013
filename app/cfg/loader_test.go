package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestConfigFields(t *testing.T) {
	// Create a config instance to test field access
	cfg := &Cfg{
		Port:              "8080",
		APIAccessKey:      "test-key",
		GNewsAPIKey:       "gnews-token",
		NewsAPIKey:        "newsapi-token",
		EventbriteAPIKey:  "eventbrite-token",
		ReliefWebURL:      "https://api.reliefweb.int/v1/reports",
		FeedsDir:          "./feeds",
		FetchTimeout:      5,
		FetchRetries:      3,
		FetchConcurrency:  4,
		PrimaryCacheTTL:   15,
		SecondaryCacheTTL: 10,
		ProcessedCacheTTL: 5,
		EventsCacheTTL:    30,
		DBPath:            "./data/news.db",
		MetricsRetention:  30,
		WorkerCount:       3,
		SchedulerInterval: 60,
		PrewarmOnStart:    true,
		UserAgent:         "Test Agent",
		Timezone:          "UTC",
		Debug:             true,
		Version:           "test-version",
	}

	// Test direct field access
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.APIAccessKey != "test-key" {
		t.Errorf("Expected API key 'test-key', got '%s'", cfg.APIAccessKey)
	}
	if cfg.GNewsAPIKey != "gnews-token" {
		t.Errorf("Expected GNews key 'gnews-token', got '%s'", cfg.GNewsAPIKey)
	}
	if cfg.EventbriteAPIKey != "eventbrite-token" {
		t.Errorf("Expected Eventbrite key 'eventbrite-token', got '%s'", cfg.EventbriteAPIKey)
	}
	if cfg.NewsAPIKey != "newsapi-token" {
		t.Errorf("Expected NewsAPI key 'newsapi-token', got '%s'", cfg.NewsAPIKey)
	}
	if cfg.ReliefWebURL != "https://api.reliefweb.int/v1/reports" {
		t.Errorf("Expected ReliefWeb URL, got '%s'", cfg.ReliefWebURL)
	}
	if cfg.FeedsDir != "./feeds" {
		t.Errorf("Expected feeds dir './feeds', got '%s'", cfg.FeedsDir)
	}
	if cfg.FetchTimeout != 5 {
		t.Errorf("Expected fetch timeout 5, got %d", cfg.FetchTimeout)
	}
	if cfg.FetchRetries != 3 {
		t.Errorf("Expected fetch retries 3, got %d", cfg.FetchRetries)
	}
	if cfg.FetchConcurrency != 4 {
		t.Errorf("Expected fetch concurrency 4, got %d", cfg.FetchConcurrency)
	}
	if cfg.PrimaryCacheTTL != 15 {
		t.Errorf("Expected primary cache TTL 15, got %d", cfg.PrimaryCacheTTL)
	}
	if cfg.SecondaryCacheTTL != 10 {
		t.Errorf("Expected secondary cache TTL 10, got %d", cfg.SecondaryCacheTTL)
	}
	if cfg.ProcessedCacheTTL != 5 {
		t.Errorf("Expected processed cache TTL 5, got %d", cfg.ProcessedCacheTTL)
	}
	if cfg.EventsCacheTTL != 30 {
		t.Errorf("Expected events cache TTL 30, got %d", cfg.EventsCacheTTL)
	}
	if cfg.DBPath != "./data/news.db" {
		t.Errorf("Expected DB path './data/news.db', got '%s'", cfg.DBPath)
	}
	if cfg.MetricsRetention != 30 {
		t.Errorf("Expected metrics retention 30, got %d", cfg.MetricsRetention)
	}
	if cfg.WorkerCount != 3 {
		t.Errorf("Expected worker count 3, got %d", cfg.WorkerCount)
	}
	if cfg.SchedulerInterval != 60 {
		t.Errorf("Expected scheduler interval 60, got %d", cfg.SchedulerInterval)
	}
	if !cfg.PrewarmOnStart {
		t.Error("Expected prewarm to be enabled")
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Expected timezone 'UTC', got '%s'", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
}

func TestApplyTimezone(t *testing.T) {
	if err := applyTimezone("UTC"); err != nil {
		t.Errorf("Expected UTC to be accepted, got %v", err)
	}
	if err := applyTimezone("Not/AZone"); err == nil {
		t.Error("Expected invalid timezone to be rejected")
	}
	if err := applyTimezone(""); err != nil {
		t.Errorf("Expected empty timezone to be a no-op, got %v", err)
	}
}
