package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/armchairgm/season-sim/pkg/database"
	"github.com/armchairgm/season-sim/pkg/utils"
)

type HealthHandler struct {
	db    *database.DB
	redis *redis.Client
}

func NewHealthHandler(db *database.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Check reports liveness plus the state of each backing service. The engine
// itself has no external dependencies, so the endpoint stays 200 even when a
// backing store is down and simulations run on synthetic data.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{
		"status":   "ok",
		"database": h.checkDatabase(),
		"redis":    h.checkRedis(ctx),
	}
	utils.SendSuccess(c, status)
}

func (h *HealthHandler) checkDatabase() string {
	if h.db == nil {
		return "not configured"
	}
	sqlDB, err := h.db.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		return "unreachable"
	}
	return "ok"
}

func (h *HealthHandler) checkRedis(ctx context.Context) string {
	if h.redis == nil {
		return "not configured"
	}
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return "unreachable"
	}
	return "ok"
}
