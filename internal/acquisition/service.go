// Package acquisition fetches a session's schedule, current record, and
// accepted trades from the host datastore. Every fetch has a documented
// fallback, so a simulation always has inputs to run on.
package acquisition

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/armchairgm/season-sim/internal/league"
	"github.com/armchairgm/season-sim/internal/models"
	"github.com/armchairgm/season-sim/internal/services"
	"github.com/armchairgm/season-sim/pkg/database"
)

// errNoStore marks a deployment without a datastore; every fetch degrades
// straight to its fallback.
var errNoStore = errors.New("no datastore configured")

// SessionData is everything one simulation run needs from upstream.
type SessionData struct {
	Schedule          []models.ScheduledGame
	Record            models.TeamRecord
	Trades            []models.Trade
	ScheduleSynthetic bool
}

// Service reads the datastore through a cache and a circuit breaker per
// query family. An open breaker degrades straight to the fallback.
type Service struct {
	db       *database.DB
	cache    *services.CacheService
	breakers map[string]*gobreaker.CircuitBreaker
	logger   *logrus.Logger
	cacheTTL time.Duration
}

// NewService creates the acquisition service. cache may be nil (tests, or
// redis-less deployments); fetches then always hit the store.
func NewService(db *database.DB, cache *services.CacheService, logger *logrus.Logger, breakerThreshold int, breakerTimeout time.Duration) *Service {
	settings := gobreaker.Settings{
		Name:        "datastore",
		MaxRequests: uint32(breakerThreshold),
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"query":     name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	breakers := map[string]*gobreaker.CircuitBreaker{
		"schedule": gobreaker.NewCircuitBreaker(settings),
		"record":   gobreaker.NewCircuitBreaker(settings),
		"trades":   gobreaker.NewCircuitBreaker(settings),
	}

	return &Service{
		db:       db,
		cache:    cache,
		breakers: breakers,
		logger:   logger,
		cacheTTL: 30 * time.Minute,
	}
}

// FetchSchedule loads a team's season schedule in date order. A failed or
// empty fetch falls back to a synthetic round-robin schedule of the correct
// length; the simulation never aborts for a missing schedule.
func (s *Service) FetchSchedule(ctx context.Context, team string, sport league.Sport, year int) ([]models.ScheduledGame, bool) {
	cacheKey := services.ScheduleCacheKey(team, string(sport), year)
	if s.cache != nil {
		var cached []models.ScheduledGame
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil && len(cached) > 0 {
			return cached, false
		}
	}

	result, err := s.breakers["schedule"].Execute(func() (interface{}, error) {
		if s.db == nil {
			return nil, errNoStore
		}
		var games []models.ScheduledGame
		err := s.db.DB.WithContext(ctx).
			Where("team_code = ? AND sport = ? AND season_year = ?", team, string(sport), year).
			Order("game_date asc").
			Find(&games).Error
		return games, err
	})
	if err == nil {
		if games := result.([]models.ScheduledGame); len(games) > 0 {
			if s.cache != nil {
				if cerr := s.cache.Set(ctx, cacheKey, games, s.cacheTTL); cerr != nil {
					s.logger.Debugf("Schedule cache write failed: %v", cerr)
				}
			}
			return games, false
		}
	} else {
		s.logger.WithFields(logrus.Fields{
			"team": team, "sport": sport, "season": year,
		}).Warnf("Schedule fetch failed, generating synthetic schedule: %v", err)
	}

	return SyntheticSchedule(team, sport, year), true
}

// FetchRecord loads the team's real record. Failure degrades to a zero
// record, which downstream treats as "no signal" and uses the league
// reference percentage instead.
func (s *Service) FetchRecord(ctx context.Context, team string, sport league.Sport, year int) models.TeamRecord {
	cacheKey := services.RecordCacheKey(team, string(sport), year)
	if s.cache != nil {
		var cached models.TeamRecord
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil && cached.GamesPlayed() > 0 {
			return cached
		}
	}

	result, err := s.breakers["record"].Execute(func() (interface{}, error) {
		if s.db == nil {
			return models.TeamRecord{}, errNoStore
		}
		var record models.TeamRecord
		err := s.db.DB.WithContext(ctx).
			Where("team_code = ? AND sport = ? AND season_year = ?", team, string(sport), year).
			First(&record).Error
		return record, err
	})
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"team": team, "sport": sport, "season": year,
		}).Warnf("Record fetch failed, using zero record: %v", err)
		return models.TeamRecord{TeamCode: team, Sport: string(sport), SeasonYear: year}
	}

	record := result.(models.TeamRecord)
	if s.cache != nil {
		if cerr := s.cache.Set(ctx, cacheKey, record, s.cacheTTL); cerr != nil {
			s.logger.Debugf("Record cache write failed: %v", cerr)
		}
	}
	return record
}

// FetchAcceptedTrades loads the session's accepted trades. Failure or absence
// yields an empty list; zero trades is a valid baseline-equals-modified run.
func (s *Service) FetchAcceptedTrades(ctx context.Context, sessionID uuid.UUID) []models.Trade {
	result, err := s.breakers["trades"].Execute(func() (interface{}, error) {
		if s.db == nil {
			return nil, errNoStore
		}
		var trades []models.Trade
		err := s.db.DB.WithContext(ctx).
			Where("session_id = ? AND accepted = ?", sessionID, true).
			Order("created_at asc").
			Find(&trades).Error
		return trades, err
	})
	if err != nil {
		s.logger.WithField("session_id", sessionID).
			Warnf("Trade fetch failed, simulating without trades: %v", err)
		return nil
	}
	return result.([]models.Trade)
}

// LoadSession issues the three fetches concurrently and waits for all. The
// fetches are independent; each degrades on its own and LoadSession itself
// never fails.
func (s *Service) LoadSession(ctx context.Context, sessionID uuid.UUID, team string, sport league.Sport, year int) *SessionData {
	data := &SessionData{}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		data.Schedule, data.ScheduleSynthetic = s.FetchSchedule(ctx, team, sport, year)
	}()
	go func() {
		defer wg.Done()
		data.Record = s.FetchRecord(ctx, team, sport, year)
	}()
	go func() {
		defer wg.Done()
		data.Trades = s.FetchAcceptedTrades(ctx, sessionID)
	}()

	wg.Wait()
	return data
}
