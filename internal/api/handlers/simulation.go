package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/armchairgm/season-sim/internal/league"
	"github.com/armchairgm/season-sim/internal/models"
	"github.com/armchairgm/season-sim/internal/season"
	"github.com/armchairgm/season-sim/internal/services"
	"github.com/armchairgm/season-sim/pkg/config"
	"github.com/armchairgm/season-sim/pkg/utils"
)

// Runner produces a season report. Satisfied by season.Orchestrator.
type Runner interface {
	Run(ctx context.Context, in season.Input) *models.Report
}

type SimulationHandler struct {
	runner Runner
	cache  *services.CacheService // nil disables report caching
	cfg    *config.Config
	logger *logrus.Logger
}

func NewSimulationHandler(runner Runner, cache *services.CacheService, cfg *config.Config, logger *logrus.Logger) *SimulationHandler {
	return &SimulationHandler{runner: runner, cache: cache, cfg: cfg, logger: logger}
}

type simulationRequest struct {
	SessionID  string `json:"session_id" binding:"required"`
	Sport      string `json:"sport" binding:"required"`
	TeamCode   string `json:"team_code" binding:"required"`
	SeasonYear int    `json:"season_year"`
	Seed       int64  `json:"seed"`
}

// Simulate runs one full season projection for a session. Seeded requests
// are deterministic and cacheable; unseeded ones draw a fresh seed per run.
func (h *SimulationHandler) Simulate(c *gin.Context) {
	var req simulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid simulation request", err.Error())
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		utils.SendValidationError(c, "Invalid session id", err.Error())
		return
	}

	sportCode := strings.ToLower(req.Sport)
	if !h.cfg.SportSupported(sportCode) {
		utils.SendValidationError(c, "Unsupported sport", sportCode)
		return
	}
	sport, err := league.ParseSport(sportCode)
	if err != nil {
		utils.SendValidationError(c, "Unknown sport", sportCode)
		return
	}

	year := req.SeasonYear
	if year == 0 {
		year = time.Now().Year()
	}
	seed := req.Seed
	if seed == 0 {
		seed = h.cfg.DefaultSeed
	}

	team := strings.ToLower(req.TeamCode)

	// Seeded runs are pure functions of their input, so the report can be
	// served straight from cache.
	cacheKey := services.ReportCacheKey(sessionID, sportCode, team, year, seed)
	if seed != 0 && h.cache != nil {
		var cached models.Report
		if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
			utils.SendSuccess(c, &cached)
			return
		}
	}

	report := h.runner.Run(c.Request.Context(), season.Input{
		SessionID:  sessionID,
		Sport:      sport,
		TeamCode:   team,
		SeasonYear: year,
		Seed:       seed,
	})

	if !report.Success {
		utils.SendError(c, http.StatusUnprocessableEntity, utils.NewAppError(utils.ErrCodeSimulation, report.FailureReason))
		return
	}

	if seed != 0 && h.cache != nil {
		ttl := time.Duration(h.cfg.ReportCacheTTL) * time.Second
		if err := h.cache.Set(c.Request.Context(), cacheKey, report, ttl); err != nil {
			h.logger.WithError(err).Warn("Failed to cache simulation report")
		}
	}
	utils.SendSuccess(c, report)
}
