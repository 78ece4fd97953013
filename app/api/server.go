package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Routes
	setupRoutes(r, handler, apiAccessKey)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	api := r.Group("/api/news")
	{
		api.GET("", handler.GetNews)
		api.GET("/debug", handler.GetDebug)
		api.GET("/suggestions", handler.GetSuggestions)
		api.GET("/sources", handler.GetSources)
		api.GET("/analytics", handler.GetAnalytics)
		api.GET("/regions", handler.GetRegions)
		api.GET("/health", handler.GetHealth)
	}

	// Cache administration (authenticated when an API key is set)
	admin := api.Group("/cache")
	if apiAccessKey != "" {
		admin.Use(authMiddleware(apiAccessKey))
		log.Printf("Cache refresh endpoint enabled with authentication")
	} else {
		log.Printf("Cache refresh endpoint enabled without authentication (API_ACCESS_KEY not set)")
	}
	admin.POST("/refresh", handler.RefreshCache)

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "ClimaWatch News",
			"description": "Climate news and events aggregator with multi-source normalization, relevance scoring, and caching",
			"endpoints": map[string]string{
				"news":        "/api/news?page=&limit=&keyword=&region=&type=&minRelevance=",
				"debug":       "/api/news/debug",
				"refresh":     "/api/news/cache/refresh (POST)",
				"suggestions": "/api/news/suggestions?query=&type=",
				"sources":     "/api/news/sources",
				"analytics":   "/api/news/analytics?region=&days=",
				"regions":     "/api/news/regions",
				"health":      "/api/news/health",
			},
			"api_status": map[string]interface{}{
				"auth_required": apiAccessKey != "",
				"header":        "X-API-Key",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware creates authentication middleware for admin endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get API key from X-API-Key header
		providedKey := c.GetHeader("X-API-Key")

		// Also check Authorization header with Bearer prefix
		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
