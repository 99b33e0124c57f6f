package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/armchairgm/season-sim/internal/api/handlers"
	"github.com/armchairgm/season-sim/internal/api/middleware"
	"github.com/armchairgm/season-sim/internal/services"
	"github.com/armchairgm/season-sim/pkg/config"
	"github.com/armchairgm/season-sim/pkg/database"
)

// SetupRouter wires middleware and routes. db, redisClient, and cache may be
// nil; simulations then run entirely on synthetic data.
func SetupRouter(cfg *config.Config, logger *logrus.Logger, db *database.DB, redisClient *redis.Client, cache *services.CacheService, runner handlers.Runner) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	health := handlers.NewHealthHandler(db, redisClient)
	router.GET("/health", health.Check)

	simulation := handlers.NewSimulationHandler(runner, cache, cfg, logger)
	leagues := handlers.NewLeagueHandler()

	v1 := router.Group("/api/v1")
	{
		v1.POST("/simulations", middleware.RateLimit(cfg.SimulationRateLimit, cfg.SimulationBurst), simulation.Simulate)
		v1.GET("/leagues/:sport", leagues.GetLeague)
		v1.GET("/leagues/:sport/teams/:code", leagues.GetTeam)
	}

	return router
}
