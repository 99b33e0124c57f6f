package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armchairgm/season-sim/internal/league"
	"github.com/armchairgm/season-sim/internal/models"
)

func TestWinProbability_Properties(t *testing.T) {
	e := New(1, league.GetProfile(league.SportNHL))

	// Even matchup at home is better than even matchup on the road
	home := e.WinProbability(60, 60, true, 0)
	away := e.WinProbability(60, 60, false, 0)
	assert.Greater(t, home, 0.5)
	assert.Less(t, away, 0.5)

	// Monotonic in the rating gap
	assert.Greater(t, e.WinProbability(80, 60, true, 0), e.WinProbability(65, 60, true, 0))

	// Momentum shifts the needle
	assert.Greater(t, e.WinProbability(60, 60, true, 5), home)
	assert.Less(t, e.WinProbability(60, 60, true, -5), home)

	// Never certain, even at the rating extremes
	for _, gap := range []float64{-100, -70, 0, 70, 100} {
		p := e.WinProbability(60+gap, 60, true, 5)
		assert.Greater(t, p, 0.0)
		assert.Less(t, p, 1.0)
		assert.GreaterOrEqual(t, p, 0.02)
		assert.LessOrEqual(t, p, 0.98)
	}
}

func TestSimulateGame_ScoreConsistency(t *testing.T) {
	for _, sport := range []league.Sport{league.SportNHL, league.SportNFL, league.SportNBA, league.SportMLB} {
		prof := league.GetProfile(sport)
		e := New(42, prof)

		for i := 0; i < 500; i++ {
			g := e.SimulateGame(70, 55, i%2 == 0, 0, "Test Opponent", false)

			switch g.Result {
			case models.ResultWin:
				assert.Greater(t, g.TeamScore, g.OpponentScore, "%s: win must outscore", sport)
			case models.ResultLoss, models.ResultOTLoss:
				assert.Greater(t, g.OpponentScore, g.TeamScore, "%s: loss must be outscored", sport)
			case models.ResultTie:
				assert.Equal(t, g.TeamScore, g.OpponentScore, "%s: tie scores equal", sport)
				assert.True(t, g.Overtime)
			default:
				t.Fatalf("%s: unexpected result code %q", sport, g.Result)
			}

			assert.GreaterOrEqual(t, g.TeamScore, 0)
			assert.GreaterOrEqual(t, g.OpponentScore, 0)

			if g.Result == models.ResultOTLoss {
				assert.Equal(t, league.SportNHL, sport, "OT loss code is hockey only")
				assert.True(t, g.Overtime)
			}
			if g.Result == models.ResultTie {
				assert.Equal(t, league.SportNFL, sport, "only football ties")
			}

			margin := g.TeamScore - g.OpponentScore
			if margin < 0 {
				margin = -margin
			}
			if !g.Overtime && g.Result != models.ResultTie {
				assert.GreaterOrEqual(t, margin, prof.MinMargin, "%s margin", sport)
			}
		}
	}
}

func TestSimulateGame_Deterministic(t *testing.T) {
	prof := league.GetProfile(league.SportNBA)

	run := func() []GameResult {
		e := New(777, prof)
		games := make([]GameResult, 50)
		for i := range games {
			games[i] = e.SimulateGame(65, 58, i%2 == 0, float64(i%5)-2, "Rival City", i%7 == 0)
		}
		return games
	}

	assert.Equal(t, run(), run(), "same seed, same season")

	// Different seed should diverge somewhere across 50 games
	other := New(778, prof)
	diverged := false
	first := run()
	for i := range first {
		g := other.SimulateGame(65, 58, i%2 == 0, float64(i%5)-2, "Rival City", i%7 == 0)
		if g != first[i] {
			diverged = true
			break
		}
	}
	assert.True(t, diverged)
}

func TestSimulateGame_GridironScores(t *testing.T) {
	e := New(9, league.GetProfile(league.SportNFL))

	for i := 0; i < 300; i++ {
		g := e.SimulateGame(60, 60, true, 0, "Opponent", false)
		for _, s := range []int{g.TeamScore, g.OpponentScore} {
			assert.NotContains(t, []int{1, 2, 4, 5, 8, 11}, s, "unreachable football score %d", s)
		}
	}
}

func TestSnapGridiron(t *testing.T) {
	assert.Equal(t, 3, snapGridiron(2))
	assert.Equal(t, 7, snapGridiron(8))
	assert.Equal(t, 10, snapGridiron(11))
	assert.Equal(t, 0, snapGridiron(0))
	assert.Equal(t, 24, snapGridiron(24))
}

func TestUpdateMomentum(t *testing.T) {
	w, l, otl := models.ResultWin, models.ResultLoss, models.ResultOTLoss

	assert.Zero(t, UpdateMomentum(nil))

	// Streaks hit the caps
	assert.Equal(t, 5.0, UpdateMomentum([]string{w, w, w, w, w}))
	assert.Equal(t, -5.0, UpdateMomentum([]string{l, l, l, l, l}))
	assert.Equal(t, -5.0, UpdateMomentum([]string{l, l, otl, l, l}), "OT losses extend a skid")

	// Mixed recent form is a nudge, not a cap
	m := UpdateMomentum([]string{w, l, w, w, l})
	assert.Greater(t, m, -5.0)
	assert.Less(t, m, 5.0)
	assert.Equal(t, 1.0, m)

	// A long-ago streak doesn't count if recent form broke it
	assert.Less(t, UpdateMomentum([]string{w, w, w, w, w, l}), 5.0)

	// Bounded even for odd inputs
	for _, h := range [][]string{{w}, {l}, {otl}, {w, w}, {l, otl}} {
		m := UpdateMomentum(h)
		assert.GreaterOrEqual(t, m, -5.0)
		assert.LessOrEqual(t, m, 5.0)
	}
}

func TestHighlights_CosmeticOnly(t *testing.T) {
	prof := league.GetProfile(league.SportNHL)
	e := New(3, prof)

	seen := 0
	for i := 0; i < 400; i++ {
		g := e.SimulateGame(75, 50, true, 2, "Bitter Rival", true)
		if g.Highlight != "" {
			seen++
			assert.Contains(t, g.Highlight, "Bitter Rival")
		}
	}
	// Capped probability: some games get one, most don't
	require.Greater(t, seen, 0)
	assert.Less(t, seen, 200)
}
