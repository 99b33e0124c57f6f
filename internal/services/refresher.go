package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/armchairgm/season-sim/internal/models"
	"github.com/armchairgm/season-sim/pkg/database"
)

// RecordRefresherService keeps the record and schedule caches warm so the
// first simulation of a session doesn't pay the datastore round trip.
type RecordRefresherService struct {
	db              *database.DB
	cache           *CacheService
	logger          *logrus.Logger
	cron            *cron.Cron
	mu              sync.Mutex
	isRunning       bool
	refreshInterval time.Duration
	cacheTTL        time.Duration
}

// NewRecordRefresherService creates a new record refresher service
func NewRecordRefresherService(
	db *database.DB,
	cache *CacheService,
	logger *logrus.Logger,
	refreshInterval time.Duration,
	cacheTTL time.Duration,
) *RecordRefresherService {
	return &RecordRefresherService{
		db:              db,
		cache:           cache,
		logger:          logger,
		cron:            cron.New(),
		refreshInterval: refreshInterval,
		cacheTTL:        cacheTTL,
	}
}

// Start begins the scheduled cache refreshing
func (s *RecordRefresherService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("record refresher is already running")
	}

	schedule := fmt.Sprintf("@every %s", s.refreshInterval.String())
	_, err := s.cron.AddFunc(schedule, s.refreshAll)
	if err != nil {
		return fmt.Errorf("failed to schedule record refresher: %w", err)
	}

	// Daily cleanup of stale cache entries
	_, err = s.cron.AddFunc("0 3 * * *", s.cleanupStale)
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	// Warm the cache on startup
	go s.refreshAll()

	s.logger.Info("Record refresher service started")
	return nil
}

// Stop halts the scheduled refreshing
func (s *RecordRefresherService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.logger.Info("Record refresher service stopped")
}

// refreshAll re-primes the record cache for every team the store knows about.
func (s *RecordRefresherService) refreshAll() {
	s.logger.Info("Starting scheduled record cache refresh")

	var records []models.TeamRecord
	if err := s.db.DB.Find(&records).Error; err != nil {
		s.logger.Errorf("Failed to load team records: %v", err)
		return
	}

	ctx := context.Background()
	refreshed := 0
	for _, record := range records {
		key := RecordCacheKey(record.TeamCode, record.Sport, record.SeasonYear)
		if err := s.cache.Set(ctx, key, record, s.cacheTTL); err != nil {
			s.logger.Warnf("Failed to cache record for %s/%s: %v", record.Sport, record.TeamCode, err)
			continue
		}
		refreshed++
	}

	s.logger.Infof("Refreshed %d of %d team records", refreshed, len(records))
}

// cleanupStale drops records that haven't been updated by the host app in a
// week; their cache entries expire on their own.
func (s *RecordRefresherService) cleanupStale() {
	s.logger.Info("Starting daily cleanup of stale records")

	cutoff := time.Now().AddDate(0, 0, -7)
	result := s.db.DB.Where("last_data_update < ?", cutoff).Delete(&models.TeamRecord{})
	if result.Error != nil {
		s.logger.Errorf("Failed to cleanup stale records: %v", result.Error)
		return
	}

	s.logger.Infof("Cleaned up %d stale record rows", result.RowsAffected)
}

// GetStatus returns the current status of the refresher
func (s *RecordRefresherService) GetStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	nextRuns := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		nextRuns = append(nextRuns, entry.Next)
	}

	return map[string]interface{}{
		"is_running":       s.isRunning,
		"refresh_interval": s.refreshInterval.String(),
		"next_runs":        nextRuns,
		"cron_jobs":        len(entries),
	}
}
