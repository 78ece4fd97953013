package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/climawatch/news-service/app/api"
	"github.com/climawatch/news-service/app/cache"
	"github.com/climawatch/news-service/app/cfg"
	"github.com/climawatch/news-service/app/database"
	"github.com/climawatch/news-service/app/pipeline"
	"github.com/climawatch/news-service/app/sources"
	"github.com/climawatch/news-service/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting ClimaWatch News server", "version", appCfg.Version)

	// Database connection and migrations
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	// Feed configurations
	feeds, err := sources.LoadFeeds(appCfg.FeedsDir)
	if err != nil {
		log.Fatal("Failed to load feed configurations: ", err)
	}
	slog.Info("Feed configurations loaded", "dir", appCfg.FeedsDir, "count", len(feeds))

	// Core components
	metricsRepo := database.NewSourceMetricsRepo(db)
	client := sources.NewClient()
	aggregator := sources.NewAggregator(client, feeds, metricsRepo)

	caches := cache.NewManager(map[string]time.Duration{
		cache.Primary:   time.Duration(appCfg.PrimaryCacheTTL) * time.Minute,
		cache.Secondary: time.Duration(appCfg.SecondaryCacheTTL) * time.Minute,
		cache.Processed: time.Duration(appCfg.ProcessedCacheTTL) * time.Minute,
		cache.Events:    time.Duration(appCfg.EventsCacheTTL) * time.Minute,
	})

	newsPipeline := pipeline.New(aggregator, caches)

	// Background scheduler
	scheduler := tasks.NewScheduler(newsPipeline, metricsRepo)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Background scheduler started", "workers", appCfg.WorkerCount, "interval", appCfg.SchedulerInterval)

	// HTTP server
	apiHandler := api.NewHandler(newsPipeline, caches, aggregator, metricsRepo, db)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	// Graceful shutdown
	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
