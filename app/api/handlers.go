package api

import (
	"log/slog"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/climawatch/news-service/app/cache"
	"github.com/climawatch/news-service/app/cfg"
	"github.com/climawatch/news-service/app/database"
	"github.com/climawatch/news-service/app/news"
)

func NewHandler(p NewsProvider, caches *cache.Manager, aggregator SourceStatusProvider,
	metricsRepo database.SourceMetricsRepository, db *database.DB) *Handler {
	return &Handler{
		pipeline:    p,
		caches:      caches,
		aggregator:  aggregator,
		metricsRepo: metricsRepo,
		db:          db,
		startedAt:   time.Now(),
	}
}

// GetNews serves the paginated, filtered article or event list.
// Malformed page/limit/minRelevance values are clamped to safe
// defaults, never rejected.
func (h *Handler) GetNews(c *gin.Context) {
	page := parseIntDefault(c.Query("page"), 1)
	if page < 1 {
		page = 1
	}

	limit := parseIntDefault(c.Query("limit"), 20)
	limit = clamp(limit, 1, 100)

	minRelevance := parseIntDefault(c.Query("minRelevance"), news.DefaultMinRelevance)
	if minRelevance < 0 {
		minRelevance = 0
	}

	region := c.Query("region")
	keyword := c.Query("keyword")

	newsType := c.DefaultQuery("type", "news")
	cacheName := cache.Processed

	var items []news.Article
	var err error
	if newsType == "events" {
		cacheName = cache.Events
		items, err = h.pipeline.Events(c.Request.Context())
	} else {
		newsType = "news"
		items, err = h.pipeline.Articles(c.Request.Context())
	}
	if err != nil {
		slog.Error("Failed to fetch articles", "type", newsType, "error", err)
		errorResponse(c, "Failed to fetch news", err)
		return
	}

	items = news.FilterByRegion(items, region)
	items = news.FilterByKeyword(items, keyword)
	items = news.FilterByMinRelevance(items, minRelevance)

	result := news.PaginateAdvanced(items, page, limit)

	c.JSON(http.StatusOK, gin.H{
		"items":      result.Items,
		"total":      result.Total,
		"page":       result.Page,
		"limit":      result.Limit,
		"totalPages": result.TotalPages,
		"hasNext":    result.HasNext,
		"hasPrev":    result.HasPrev,
		"hasMore":    result.HasMore,
		"metadata": gin.H{
			"cache": h.caches.Status()[cacheName],
			"sources": gin.H{
				"configured": h.aggregator.SourceCount(),
				"reporting":  len(h.aggregator.LastStatuses()),
			},
			"filters": gin.H{
				"region":       region,
				"keyword":      keyword,
				"minRelevance": minRelevance,
			},
			"generatedAt": time.Now().UTC().Format(time.RFC3339),
		},
		"type": newsType,
	})
}

// GetDebug exposes per-source fetch status and cache ages.
func (h *Handler) GetDebug(c *gin.Context) {
	appCfg := cfg.Get()

	c.JSON(http.StatusOK, gin.H{
		"sources": h.aggregator.LastStatuses(),
		"caches":  h.caches.Status(),
		"config": gin.H{
			"configured_sources": h.aggregator.SourceCount(),
			"fetch_concurrency":  appCfg.FetchConcurrency,
			"fetch_timeout":      (time.Duration(appCfg.FetchTimeout) * time.Second).String(),
			"fetch_retries":      appCfg.FetchRetries,
			"gnews_enabled":      appCfg.GNewsAPIKey != "",
			"newsapi_enabled":    appCfg.NewsAPIKey != "",
			"eventbrite_enabled": appCfg.EventbriteAPIKey != "",
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// RefreshCache invalidates the selected cache (or all) and optionally
// re-fetches everything before responding.
func (h *Handler) RefreshCache(c *gin.Context) {
	var req RefreshRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}
	}

	if req.Source == "" {
		req.Source = "all"
	}

	if req.Source == "all" {
		h.caches.InvalidateAll()
	} else {
		if !h.caches.Has(req.Source) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Unknown cache source",
				"details": "source must be one of: all, " + strings.Join(cache.Names, ", "),
			})
			return
		}
		h.caches.Invalidate(req.Source)
	}

	if req.Prewarm {
		if err := h.pipeline.Prewarm(c.Request.Context()); err != nil {
			slog.Error("Cache prewarm failed", "error", err)
			errorResponse(c, "Cache prewarm failed", err)
			return
		}
	}

	slog.Info("Cache refreshed", "source", req.Source, "prewarmed", req.Prewarm)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Cache " + req.Source + " refreshed",
		"prewarmed": req.Prewarm,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GetSuggestions completes partial region or keyword input.
func (h *Handler) GetSuggestions(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	suggestionType := c.DefaultQuery("type", "regions")

	var candidates []string
	if suggestionType == "keywords" {
		candidates = news.ClimateKeywords
	} else {
		suggestionType = "regions"
		candidates = append(news.Regions(), news.RegionGlobal)
	}

	suggestions := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if query == "" || strings.Contains(candidate, query) {
			suggestions = append(suggestions, candidate)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"type":        suggestionType,
	})
}

// GetSources serves ranked per-source quality metrics over the last
// seven days.
func (h *Handler) GetSources(c *gin.Context) {
	const days = 7

	stats, err := h.metricsRepo.GetSourceStats(days)
	if err != nil {
		slog.Error("Failed to load source stats", "error", err)
		errorResponse(c, "Failed to load source metrics", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sources": stats,
		"days":    days,
		"total":   len(stats),
	})
}

// GetAnalytics serves aggregate counts, top keywords, trending topics,
// and daily volume over the processed article set.
func (h *Handler) GetAnalytics(c *gin.Context) {
	region := c.Query("region")
	days := clamp(parseIntDefault(c.Query("days"), 7), 1, 30)

	articles, err := h.pipeline.Articles(c.Request.Context())
	if err != nil {
		slog.Error("Failed to fetch articles for analytics", "error", err)
		errorResponse(c, "Failed to compute analytics", err)
		return
	}

	articles = news.FilterByRegion(articles, region)

	byType := make(map[string]int)
	for _, a := range articles {
		byType[a.SourceType]++
	}

	c.JSON(http.StatusOK, gin.H{
		"region":         region,
		"days":           days,
		"total":          len(articles),
		"byType":         byType,
		"topKeywords":    news.TopKeywords(articles, 10),
		"trendingTopics": news.TrendingTopics(articles, 5),
		"dailyVolume":    news.DailyVolume(articles, days, time.Now()),
	})
}

// GetRegions serves the static region taxonomy.
func (h *Handler) GetRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"regions":  news.RegionCountries,
		"keywords": news.RegionKeywords,
		"default":  news.RegionGlobal,
	})
}

// GetHealth reports liveness, cache status, and process stats.
func (h *Handler) GetHealth(c *gin.Context) {
	dbStatus := "ok"
	if err := h.db.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
		"memory_mb": mem.Alloc / 1024 / 1024,
		"caches":    h.caches.Status(),
		"database":  dbStatus,
		"version":   cfg.Get().Version,
	})
}

func errorResponse(c *gin.Context, message string, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":     message,
		"details":   err.Error(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
