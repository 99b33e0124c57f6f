package acquisition

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/armchairgm/season-sim/internal/league"
	"github.com/armchairgm/season-sim/internal/models"
	"github.com/armchairgm/season-sim/pkg/database"
)

func testService(t *testing.T) (*Service, *database.DB) {
	t.Helper()

	// A named in-memory database per test keeps them isolated while still
	// being shared across the pool's connections.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// the in-memory database lives only as long as one open connection
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db := database.Wrap(gdb)
	require.NoError(t, db.Migrate())

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return NewService(db, nil, logger, 5, 10*time.Second), db
}

func TestFetchSchedule_FromStore(t *testing.T) {
	svc, db := testService(t)

	stored := []models.ScheduledGame{
		{TeamCode: "bos", Sport: "nhl", SeasonYear: 2026, GameDate: time.Date(2026, 10, 12, 19, 0, 0, 0, time.UTC), OpponentCode: "mtl", OpponentName: "Montreal Canadiens", IsHome: true},
		{TeamCode: "bos", Sport: "nhl", SeasonYear: 2026, GameDate: time.Date(2026, 10, 14, 19, 0, 0, 0, time.UTC), OpponentCode: "tor", OpponentName: "Toronto Maple Leafs"},
	}
	require.NoError(t, db.DB.Create(&stored).Error)

	games, synthetic := svc.FetchSchedule(context.Background(), "bos", league.SportNHL, 2026)
	require.Len(t, games, 2)
	assert.False(t, synthetic)
	assert.Equal(t, "mtl", games[0].OpponentCode, "schedule comes back in date order")
	assert.Equal(t, "tor", games[1].OpponentCode)
}

func TestFetchSchedule_SyntheticFallback(t *testing.T) {
	svc, _ := testService(t)

	// Nothing in the store for this team: synthetic round-robin of full length
	games, synthetic := svc.FetchSchedule(context.Background(), "bos", league.SportNHL, 2026)
	assert.True(t, synthetic)
	require.Len(t, games, 82)

	for i, g := range games {
		assert.NotEqual(t, "bos", g.OpponentCode)
		assert.NotEmpty(t, g.OpponentName)
		if i > 0 {
			assert.True(t, g.GameDate.After(games[i-1].GameDate), "dates ascend")
		}
	}
}

func TestFetchSchedule_SyntheticNFLWeeks(t *testing.T) {
	games := SyntheticSchedule("kc", league.SportNFL, 2026)
	require.Len(t, games, 17)

	for i, g := range games {
		require.NotNil(t, g.Week)
		assert.Equal(t, i+1, *g.Week)
	}
	// Weekly cadence
	assert.Equal(t, 7*24*time.Hour, games[1].GameDate.Sub(games[0].GameDate))
}

func TestSyntheticSchedule_UnknownSport(t *testing.T) {
	assert.Nil(t, SyntheticSchedule("bos", league.Sport("cricket"), 2026))
}

func TestFetchRecord(t *testing.T) {
	svc, db := testService(t)

	require.NoError(t, db.DB.Create(&models.TeamRecord{
		TeamCode: "bos", Sport: "nhl", SeasonYear: 2026,
		Wins: 30, Losses: 40, OTLosses: 12,
	}).Error)

	record := svc.FetchRecord(context.Background(), "bos", league.SportNHL, 2026)
	assert.Equal(t, 30, record.Wins)
	assert.Equal(t, 82, record.GamesPlayed())

	// Missing record degrades to zeros, not an error
	missing := svc.FetchRecord(context.Background(), "sjs", league.SportNHL, 2026)
	assert.Zero(t, missing.GamesPlayed())
	assert.Equal(t, "sjs", missing.TeamCode)
}

func TestFetchAcceptedTrades(t *testing.T) {
	svc, db := testService(t)
	sessionID := uuid.New()

	accepted := models.Trade{
		SessionID: sessionID, Sport: "nhl", TeamCode: "bos", PartnerCode: "tor",
		Grade: 74, Accepted: true,
		PlayersReceived: datatypes.NewJSONType([]models.TradedPlayer{
			{Name: "Skater One", Position: "C", Age: 26, Stats: map[string]float64{"points": 70}},
		}),
	}
	pending := models.Trade{
		SessionID: sessionID, Sport: "nhl", TeamCode: "bos", PartnerCode: "mtl",
		Grade: 50, Accepted: false,
	}
	require.NoError(t, db.DB.Create(&accepted).Error)
	require.NoError(t, db.DB.Create(&pending).Error)

	trades := svc.FetchAcceptedTrades(context.Background(), sessionID)
	require.Len(t, trades, 1, "only accepted trades count")
	assert.Equal(t, "tor", trades[0].PartnerCode)

	players := trades[0].PlayersReceived.Data()
	require.Len(t, players, 1)
	assert.Equal(t, "Skater One", players[0].Name)

	// Unknown session: empty list, a valid baseline input
	assert.Empty(t, svc.FetchAcceptedTrades(context.Background(), uuid.New()))
}

func TestLoadSession_ConcurrentFetches(t *testing.T) {
	svc, db := testService(t)
	sessionID := uuid.New()

	require.NoError(t, db.DB.Create(&models.TeamRecord{
		TeamCode: "wpg", Sport: "nhl", SeasonYear: 2026, Wins: 20, Losses: 10,
	}).Error)

	data := svc.LoadSession(context.Background(), sessionID, "wpg", league.SportNHL, 2026)
	require.NotNil(t, data)

	// Schedule fell back, record came from the store, trades are empty
	assert.True(t, data.ScheduleSynthetic)
	assert.Len(t, data.Schedule, 82)
	assert.Equal(t, 20, data.Record.Wins)
	assert.Empty(t, data.Trades)
}
