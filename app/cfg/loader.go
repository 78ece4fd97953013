package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP server
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key protecting admin endpoints (optional)"`

	// Provider credentials
	GNewsAPIKey      string `long:"gnews-api-key" env:"GNEWS_API_KEY" description:"GNews API token (GNews skipped when empty)"`
	NewsAPIKey       string `long:"newsapi-key" env:"NEWS_API_KEY" description:"NewsAPI token (NewsAPI skipped when empty)"`
	EventbriteAPIKey string `long:"eventbrite-api-key" env:"EVENTBRITE_API_KEY" description:"Eventbrite API token (Eventbrite skipped when empty)"`

	// Source configuration
	ReliefWebURL     string `long:"reliefweb-url" env:"RELIEFWEB_URL" default:"https://api.reliefweb.int/v1/reports" description:"ReliefWeb reports API endpoint"`
	FeedsDir         string `long:"feeds-dir" env:"FEEDS_DIR" default:"./feeds" description:"Directory containing RSS feed configuration files"`
	FetchTimeout     int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"5" description:"Per-request HTTP timeout in seconds"`
	FetchRetries     int    `long:"fetch-retries" env:"FETCH_RETRIES" default:"3" description:"HTTP fetch attempts per source"`
	FetchConcurrency int    `long:"fetch-concurrency" env:"FETCH_CONCURRENCY" default:"4" description:"Maximum concurrent source fetches"`

	// Cache TTLs
	PrimaryCacheTTL   int `long:"primary-cache-ttl" env:"PRIMARY_CACHE_TTL" default:"15" description:"Primary sources cache TTL in minutes"`
	SecondaryCacheTTL int `long:"secondary-cache-ttl" env:"SECONDARY_CACHE_TTL" default:"10" description:"Secondary sources cache TTL in minutes"`
	ProcessedCacheTTL int `long:"processed-cache-ttl" env:"PROCESSED_CACHE_TTL" default:"5" description:"Processed articles cache TTL in minutes"`
	EventsCacheTTL    int `long:"events-cache-ttl" env:"EVENTS_CACHE_TTL" default:"30" description:"Events cache TTL in minutes"`

	// Storage
	DBPath           string `long:"db-path" env:"DB_PATH" default:"./data/news.db" description:"SQLite database path for source metrics"`
	MetricsRetention int    `long:"metrics-retention" env:"METRICS_RETENTION" default:"30" description:"Days of source fetch metrics to retain"`

	// Background processing
	WorkerCount       int  `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers"`
	SchedulerInterval int  `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"60" description:"Scheduler interval in seconds"`
	PrewarmOnStart    bool `long:"prewarm" env:"PREWARM_ON_START" description:"Fetch all sources once at startup"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"ClimaWatch News/1.0" description:"User agent string for outbound HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Africa/Nairobi)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:              raw.Port,
		APIAccessKey:      raw.APIAccessKey,
		GNewsAPIKey:       raw.GNewsAPIKey,
		NewsAPIKey:        raw.NewsAPIKey,
		EventbriteAPIKey:  raw.EventbriteAPIKey,
		ReliefWebURL:      raw.ReliefWebURL,
		FeedsDir:          raw.FeedsDir,
		FetchTimeout:      raw.FetchTimeout,
		FetchRetries:      raw.FetchRetries,
		FetchConcurrency:  raw.FetchConcurrency,
		PrimaryCacheTTL:   raw.PrimaryCacheTTL,
		SecondaryCacheTTL: raw.SecondaryCacheTTL,
		ProcessedCacheTTL: raw.ProcessedCacheTTL,
		EventsCacheTTL:    raw.EventsCacheTTL,
		DBPath:            raw.DBPath,
		MetricsRetention:  raw.MetricsRetention,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		PrewarmOnStart:    raw.PrewarmOnStart,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// SetForTesting installs a configuration without going through flag
// parsing. Tests only.
func SetForTesting(c *Cfg) {
	globalCfg = c
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
