package cfg

type Cfg struct {
	// HTTP server
	Port         string
	APIAccessKey string

	// Provider credentials (providers with an empty key are skipped)
	GNewsAPIKey      string
	NewsAPIKey       string
	EventbriteAPIKey string

	// Source configuration
	ReliefWebURL     string
	FeedsDir         string
	FetchTimeout     int // seconds, per HTTP call
	FetchRetries     int
	FetchConcurrency int

	// Cache TTLs in minutes
	PrimaryCacheTTL   int
	SecondaryCacheTTL int
	ProcessedCacheTTL int
	EventsCacheTTL    int

	// Storage
	DBPath           string
	MetricsRetention int // days

	// Background processing
	WorkerCount       int
	SchedulerInterval int // seconds
	PrewarmOnStart    bool

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
