package season

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/armchairgm/season-sim/internal/acquisition"
	"github.com/armchairgm/season-sim/internal/engine"
	"github.com/armchairgm/season-sim/internal/league"
	"github.com/armchairgm/season-sim/internal/models"
)

type stubLoader struct {
	data *acquisition.SessionData
}

func (s *stubLoader) LoadSession(_ context.Context, _ uuid.UUID, _ string, _ league.Sport, _ int) *acquisition.SessionData {
	return s.data
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func sessionFor(team string, sport league.Sport, record models.TeamRecord, trades []models.Trade) *stubLoader {
	return &stubLoader{data: &acquisition.SessionData{
		Schedule:          acquisition.SyntheticSchedule(team, sport, 2026),
		Record:            record,
		Trades:            trades,
		ScheduleSynthetic: true,
	}}
}

func runInput(sport league.Sport, team string, seed int64) Input {
	return Input{
		SessionID:  uuid.New(),
		Sport:      sport,
		TeamCode:   team,
		SeasonYear: 2026,
		Seed:       seed,
	}
}

func TestRunRejectsUnknownLeague(t *testing.T) {
	orch := NewOrchestrator(sessionFor("bos", league.SportNHL, models.TeamRecord{}, nil), quietLogger())
	report := orch.Run(context.Background(), runInput(league.Sport("cricket"), "bos", 1))

	assert.False(t, report.Success)
	assert.NotEmpty(t, report.FailureReason)
}

func TestRunRejectsUnknownTeam(t *testing.T) {
	orch := NewOrchestrator(sessionFor("bos", league.SportNHL, models.TeamRecord{}, nil), quietLogger())
	report := orch.Run(context.Background(), runInput(league.SportNHL, "zzz", 1))

	assert.False(t, report.Success)
	assert.Contains(t, report.FailureReason, "team")
}

func TestRunTradelessHockeySeason(t *testing.T) {
	record := models.TeamRecord{TeamCode: "bos", Sport: "nhl", Wins: 30, Losses: 40, OTLosses: 12}
	orch := NewOrchestrator(sessionFor("bos", league.SportNHL, record, nil), quietLogger())

	report := orch.Run(context.Background(), runInput(league.SportNHL, "bos", 42))
	require.True(t, report.Success)

	// With no trades the modified roster is the baseline roster.
	assert.Equal(t, report.BaselinePowerRating, report.ModifiedPowerRating)
	assert.Zero(t, report.Score.TradeQualityScore)
	assert.Zero(t, report.Score.WinImprovementScore)
	assert.Empty(t, report.PlayerImpacts)

	rec := report.ModifiedRecord
	assert.Equal(t, 82, rec.Wins+rec.Losses+rec.OTLosses)
	assert.Len(t, report.Games, 82)
	assert.Equal(t, report.BaselineRecord, rec)
}

func TestRunIsDeterministic(t *testing.T) {
	record := models.TeamRecord{Wins: 45, Losses: 30, OTLosses: 7}
	in := runInput(league.SportNHL, "tor", 777)

	a := NewOrchestrator(sessionFor("tor", league.SportNHL, record, nil), quietLogger()).Run(context.Background(), in)
	b := NewOrchestrator(sessionFor("tor", league.SportNHL, record, nil), quietLogger()).Run(context.Background(), in)

	// Everything except the per-run simulation id and timestamp must match.
	a.SimulationID = b.SimulationID
	a.GeneratedAt = b.GeneratedAt
	aJSON, err := json.Marshal(a)
	require.NoError(t, err)
	bJSON, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, string(aJSON), string(bJSON))
}

func TestRunDivergesAcrossSeeds(t *testing.T) {
	record := models.TeamRecord{Wins: 41, Losses: 41}
	base := sessionFor("dal", league.SportNHL, record, nil)

	a := NewOrchestrator(base, quietLogger()).Run(context.Background(), runInput(league.SportNHL, "dal", 1))
	b := NewOrchestrator(base, quietLogger()).Run(context.Background(), runInput(league.SportNHL, "dal", 2))

	assert.NotEqual(t, a.Games, b.Games)
}

func TestRunningRecordIsPrefixConsistent(t *testing.T) {
	orch := NewOrchestrator(sessionFor("nyy", league.SportMLB, models.TeamRecord{Wins: 90, Losses: 72}, nil), quietLogger())
	report := orch.Run(context.Background(), runInput(league.SportMLB, "nyy", 9))
	require.True(t, report.Success)
	require.Len(t, report.Games, 162)

	var running models.Record
	for i, g := range report.Games {
		switch g.Result {
		case models.ResultWin:
			running.Wins++
		case models.ResultOTLoss:
			running.OTLosses++
		case models.ResultTie:
			running.Ties++
		default:
			running.Losses++
		}
		assert.Equal(t, running, g.RecordAfter, "game %d", i)
		assert.Equal(t, i+1, g.RecordAfter.Games())
	}
	assert.Equal(t, report.ModifiedRecord, running)
}

func TestRunStandingsShape(t *testing.T) {
	orch := NewOrchestrator(sessionFor("bos", league.SportNHL, models.TeamRecord{Wins: 50, Losses: 25, OTLosses: 7}, nil), quietLogger())
	report := orch.Run(context.Background(), runInput(league.SportNHL, "bos", 11))
	require.True(t, report.Success)

	require.Len(t, report.Standings, 2)
	userSeen := 0
	for conf, standings := range report.Standings {
		assert.Len(t, standings, 16, conf)
		qualified := 0
		for i, s := range standings {
			assert.Equal(t, i+1, s.Rank)
			if i > 0 {
				assert.LessOrEqual(t, s.WinPct, standings[i-1].WinPct)
			}
			if s.InPlayoffs {
				qualified++
			}
			if s.IsUserTeam {
				userSeen++
				assert.Equal(t, "bos", s.TeamCode)
				// The standings line carries the simulated season, not the
				// real record the simulation started from.
				assert.Equal(t, report.ModifiedRecord.Wins, s.Wins)
				assert.Equal(t, report.ModifiedRecord.OTLosses, s.OTLosses)
			}
		}
		assert.Equal(t, 8, qualified, conf)
	}
	assert.Equal(t, 1, userSeen)
}

func TestRunPlayoffBracketHockey(t *testing.T) {
	orch := NewOrchestrator(sessionFor("col", league.SportNHL, models.TeamRecord{Wins: 52, Losses: 24, OTLosses: 6}, nil), quietLogger())
	report := orch.Run(context.Background(), runInput(league.SportNHL, "col", 3))
	require.True(t, report.Success)

	require.Len(t, report.Playoffs, 4)
	assert.Len(t, report.Playoffs[0].Matchups, 8)
	assert.Len(t, report.Playoffs[1].Matchups, 4)
	assert.Len(t, report.Playoffs[2].Matchups, 2)
	assert.Len(t, report.Playoffs[3].Matchups, 1)
	assert.Equal(t, "Stanley Cup Final", report.Playoffs[3].Name)

	for _, round := range report.Playoffs {
		for _, m := range round.Matchups {
			winnerWins := m.HigherWins
			if m.WinnerCode == m.Lower.TeamCode {
				winnerWins = m.LowerWins
			}
			assert.Equal(t, 4, winnerWins)
			assert.Less(t, maxInt(m.HigherWins, m.LowerWins, winnerWins), 5)
		}
	}

	require.NotNil(t, report.Championship)
	assert.Equal(t, report.Playoffs[3].Matchups[0].WinnerCode, report.Championship.WinnerCode)
	assert.Regexp(t, `^4-[0-3]$`, report.Championship.SeriesScore)
}

func TestRunPlayoffByesFootball(t *testing.T) {
	orch := NewOrchestrator(sessionFor("kc", league.SportNFL, models.TeamRecord{Wins: 13, Losses: 4}, nil), quietLogger())
	report := orch.Run(context.Background(), runInput(league.SportNFL, "kc", 5))
	require.True(t, report.Success)

	// Six qualifiers per conference pad to an eight slot bracket: the top
	// two seeds sit out the first round.
	require.Len(t, report.Playoffs, 4)
	assert.Len(t, report.Playoffs[0].Matchups, 4)
	assert.Len(t, report.Playoffs[1].Matchups, 4)

	for _, m := range report.Playoffs[0].Matchups {
		assert.NotContains(t, []int{1, 2}, m.Higher.Seed)
		assert.Equal(t, 1, m.HigherWins+m.LowerWins)
	}

	// Only qualifiers may appear anywhere in the bracket.
	qualified := make(map[string]bool)
	for _, standings := range report.Standings {
		for _, s := range standings {
			if s.InPlayoffs {
				qualified[s.TeamCode] = true
			}
		}
	}
	for _, round := range report.Playoffs {
		for _, m := range round.Matchups {
			assert.LessOrEqual(t, m.Higher.Seed, 6)
			assert.LessOrEqual(t, m.Lower.Seed, 6)
			assert.True(t, qualified[m.Higher.TeamCode], "%s did not qualify", m.Higher.TeamCode)
			assert.True(t, qualified[m.Lower.TeamCode], "%s did not qualify", m.Lower.TeamCode)
		}
	}
}

func TestPlayoffGamesNeverTie(t *testing.T) {
	prof := league.GetProfile(league.SportNFL)
	require.NotNil(t, prof)

	eng := engine.New(99, prof)
	higher := bracketTeam{seed: models.PlayoffSeed{TeamCode: "kc", TeamName: "Kansas City Chiefs", Seed: 1}, rating: 70}
	lower := bracketTeam{seed: models.PlayoffSeed{TeamCode: "buf", TeamName: "Buffalo Bills", Seed: 4}, rating: 68}

	// Evenly matched football teams tie in regulation often enough that an
	// unguarded draw would surface one in a sample this size.
	for i := 0; i < 5000; i++ {
		res := playSeriesGame(eng, higher, lower, i%2 == 0)
		require.NotEqual(t, models.ResultTie, res.Result, "draw %d", i)
	}
}

func TestRunScoreBounds(t *testing.T) {
	trades := []models.Trade{lopsidedTrade("buf")}
	orch := NewOrchestrator(sessionFor("kc", league.SportNFL, models.TeamRecord{Wins: 11, Losses: 6}, trades), quietLogger())
	report := orch.Run(context.Background(), runInput(league.SportNFL, "kc", 21))
	require.True(t, report.Success)

	s := report.Score
	assert.GreaterOrEqual(t, s.TradeQualityScore, 0.0)
	assert.LessOrEqual(t, s.TradeQualityScore, 30.0)
	assert.GreaterOrEqual(t, s.WinImprovementScore, 0.0)
	assert.LessOrEqual(t, s.WinImprovementScore, 30.0)
	assert.GreaterOrEqual(t, s.PlayoffAchievementScore, 0.0)
	assert.LessOrEqual(t, s.PlayoffAchievementScore, 20.0)
	assert.Contains(t, []float64{0, 15}, s.ChampionshipBonus)
	assert.InDelta(t, s.TradeQualityScore+s.WinImprovementScore+s.PlayoffAchievementScore+s.ChampionshipBonus, s.Total, 1e-9)
	assert.NotEmpty(t, s.LetterGrade)
}

func TestRunTradeShiftsRatingsAndPartners(t *testing.T) {
	trades := []models.Trade{lopsidedTrade("buf")}
	orch := NewOrchestrator(sessionFor("kc", league.SportNFL, models.TeamRecord{Wins: 11, Losses: 6}, trades), quietLogger())
	report := orch.Run(context.Background(), runInput(league.SportNFL, "kc", 8))
	require.True(t, report.Success)

	assert.Greater(t, report.ModifiedPowerRating, report.BaselinePowerRating)
	require.Contains(t, report.PartnerDeltas, "buf")
	assert.Negative(t, report.PartnerDeltas["buf"])
	require.NotEmpty(t, report.Summary.Partners)
	assert.Equal(t, "buf", report.Summary.Partners[0].TeamCode)

	partnerFlagged := false
	for _, standings := range report.Standings {
		for _, s := range standings {
			if s.TeamCode == "buf" {
				partnerFlagged = s.IsPartner
			}
		}
	}
	assert.True(t, partnerFlagged)
}

func TestRunSummaryAndSegments(t *testing.T) {
	orch := NewOrchestrator(sessionFor("bos", league.SportNHL, models.TeamRecord{Wins: 44, Losses: 30, OTLosses: 8}, nil), quietLogger())
	report := orch.Run(context.Background(), runInput(league.SportNHL, "bos", 14))
	require.True(t, report.Success)

	assert.NotEmpty(t, report.Summary.Headline)
	assert.NotEmpty(t, report.Summary.Narrative)
	assert.NotEmpty(t, report.Summary.TradeImpact)
	assert.NotEmpty(t, report.Summary.KeyMoments)

	require.Len(t, report.Segments, 4)
	total := models.Record{}
	for _, seg := range report.Segments {
		total.Wins += seg.Wins
		total.Losses += seg.Losses
		total.OTLosses += seg.OTLosses
		total.Ties += seg.Ties
	}
	assert.Equal(t, report.ModifiedRecord, total)
}

func TestBracketOrder(t *testing.T) {
	assert.Equal(t, []int{1, 8, 4, 5, 2, 7, 3, 6}, bracketOrder(8))
	assert.Equal(t, []int{1, 4, 2, 3}, bracketOrder(4))
}

func TestTieBreakChainOrder(t *testing.T) {
	a := &teamSeason{Standing: models.Standing{TeamCode: "aaa", PointDiff: 10}, divWins: 8, divGames: 16}
	b := &teamSeason{Standing: models.Standing{TeamCode: "bbb", PointDiff: 40}, divWins: 12, divGames: 16}

	// Division record outranks point differential.
	assert.Equal(t, 1, divisionRecordBreaker(a, b))

	// With no head to head data the first breaker defers.
	assert.Equal(t, 0, headToHeadBreaker(a, b))

	// Head to head, when present, settles it before division record.
	a.h2hWins, a.h2hGames = 2, 2
	b.h2hWins, b.h2hGames = 0, 2
	assert.Equal(t, -1, headToHeadBreaker(a, b))

	assert.Equal(t, -1, pointDiffBreaker(b, a))
}

func lopsidedTrade(partner string) models.Trade {
	received := []models.TradedPlayer{{
		Name:     "Franchise Quarterback",
		Position: "QB",
		Age:      27,
		Stats:    map[string]float64{"pass_yards": 4800, "pass_tds": 38},
	}}
	sent := []models.TradedPlayer{{
		Name:     "Depth Lineman",
		Position: "OL",
		Age:      31,
		Stats:    map[string]float64{},
		OrgRank:  40,
	}}
	return models.Trade{
		SessionID:       uuid.New(),
		PartnerCode:     partner,
		Accepted:        true,
		Grade:           92,
		PlayersReceived: datatypes.NewJSONType(received),
		PlayersSent:     datatypes.NewJSONType(sent),
	}
}

func maxInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
