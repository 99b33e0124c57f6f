package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/armchairgm/season-sim/internal/acquisition"
	"github.com/armchairgm/season-sim/internal/api"
	"github.com/armchairgm/season-sim/internal/season"
	"github.com/armchairgm/season-sim/internal/services"
	"github.com/armchairgm/season-sim/pkg/config"
	"github.com/armchairgm/season-sim/pkg/database"
	"github.com/armchairgm/season-sim/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	log := logger.InitLogger("info", cfg.IsDevelopment())
	log.WithField("env", cfg.Env).Info("Starting season simulation service")

	// Storage is optional: without it every session falls back to synthetic
	// schedules and reference records.
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.WithError(err).Warn("Database unavailable, running on synthetic data")
		db = nil
	} else if err := db.Migrate(); err != nil {
		log.WithError(err).Error("Database migration failed")
	}

	var redisClient *redis.Client
	var cache *services.CacheService
	if opts, err := redis.ParseURL(cfg.RedisURL); err != nil {
		log.WithError(err).Warn("Invalid Redis URL, caching disabled")
	} else {
		redisClient = redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.WithError(err).Warn("Redis unavailable, caching disabled")
			redisClient = nil
		} else {
			cache = services.NewCacheService(redisClient)
		}
		cancel()
	}

	loader := acquisition.NewService(db, cache, log, cfg.CircuitBreakerThreshold, cfg.StoreTimeout)
	orchestrator := season.NewOrchestrator(loader, log)

	var refresher *services.RecordRefresherService
	if cfg.EnableRecordRefresh && db != nil && cache != nil {
		interval, err := time.ParseDuration(cfg.RecordRefreshInterval)
		if err != nil {
			log.WithError(err).Warn("Invalid refresh interval, record refresher disabled")
		} else {
			refresher = services.NewRecordRefresherService(db, cache, log, interval, time.Duration(cfg.ReportCacheTTL)*time.Second)
			if err := refresher.Start(); err != nil {
				log.WithError(err).Error("Failed to start record refresher")
			}
		}
	}

	router := api.SetupRouter(cfg, log, db, redisClient, cache, orchestrator)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	if refresher != nil {
		refresher.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	log.Info("Server stopped")
}
