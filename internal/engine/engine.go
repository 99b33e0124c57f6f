// Package engine is the seeded pseudo-random game model: win probability,
// plausible scorelines, overtime handling, and momentum. All randomness flows
// through an explicit rand.Rand so concurrent simulations never interfere and
// a fixed seed reproduces a season exactly.
package engine

import (
	"math"
	"math/rand"

	"github.com/armchairgm/season-sim/internal/league"
	"github.com/armchairgm/season-sim/internal/models"
)

// logisticScale converts a rating gap into win-probability steepness. A 12
// point gap is roughly a 73% favorite.
const logisticScale = 12.0

// Probabilities are clamped away from certainty; any team can win any game.
const (
	minWinProb = 0.02
	maxWinProb = 0.98
)

// GameResult is the outcome of one simulated game, before the orchestrator
// attaches date, opponent, and running record.
type GameResult struct {
	TeamScore     int
	OpponentScore int
	Result        string // models.ResultWin etc.
	Overtime      bool
	Highlight     string
}

// Engine simulates games for one run. Not safe for concurrent use; each
// simulation owns its own Engine.
type Engine struct {
	rng     *rand.Rand
	profile *league.Profile
}

// New creates an engine from a seed and a sport profile.
func New(seed int64, profile *league.Profile) *Engine {
	return &Engine{
		rng:     rand.New(rand.NewSource(seed)),
		profile: profile,
	}
}

// WinProbability is a logistic function of the home/momentum-adjusted rating
// gap, clamped to (minWinProb, maxWinProb).
func (e *Engine) WinProbability(teamRating, oppRating float64, isHome bool, momentum float64) float64 {
	gap := teamRating - oppRating + momentum
	if isHome {
		gap += e.profile.HomeAdvantage
	} else {
		gap -= e.profile.HomeAdvantage
	}

	p := 1.0 / (1.0 + math.Exp(-gap/logisticScale))
	return math.Min(maxWinProb, math.Max(minWinProb, p))
}

// SimulateGame decides a winner from the win probability, draws a scoreline
// consistent with that result, and occasionally attaches a highlight.
// rivalry marks a same-division opponent and only affects highlight flavor.
func (e *Engine) SimulateGame(teamRating, oppRating float64, isHome bool, momentum float64, opponentName string, rivalry bool) GameResult {
	prof := e.profile

	p := e.WinProbability(teamRating, oppRating, isHome, momentum)
	teamWins := e.rng.Float64() < p
	overtime := e.rng.Float64() < prof.OvertimeProb

	// Ties only exist where the sport allows them, and only out of overtime.
	if overtime && prof.TieProb > 0 && e.rng.Float64() < prof.TieProb {
		score := e.drawScore(0)
		if prof.GridironScore {
			score = snapGridiron(score)
		}
		result := GameResult{TeamScore: score, OpponentScore: score, Result: models.ResultTie, Overtime: true}
		result.Highlight = e.maybeHighlight(result, opponentName, rivalry)
		return result
	}

	gap := teamRating - oppRating
	teamScore := e.drawScore(gap)
	oppScore := e.drawScore(-gap)

	// The winner was already drawn; the scoreline must agree with it.
	if teamWins && teamScore <= oppScore {
		teamScore, oppScore = oppScore, teamScore
	} else if !teamWins && oppScore <= teamScore {
		teamScore, oppScore = oppScore, teamScore
	}

	winner, loser := &teamScore, &oppScore
	if !teamWins {
		winner, loser = &oppScore, &teamScore
	}

	if overtime {
		// Overtime games finish by the slimmest sport-plausible margin.
		*winner = *loser + e.overtimeMargin()
	} else if *winner-*loser < prof.MinMargin {
		*winner = *loser + prof.MinMargin
	}

	if prof.GridironScore {
		*winner = snapGridiron(*winner)
		*loser = snapGridiron(*loser)
		if *winner <= *loser {
			*winner = *loser + prof.MinMargin
		}
	}

	result := GameResult{
		TeamScore:     teamScore,
		OpponentScore: oppScore,
		Overtime:      overtime,
	}
	switch {
	case teamWins:
		result.Result = models.ResultWin
	case overtime && prof.HasOTLoss:
		result.Result = models.ResultOTLoss
	default:
		result.Result = models.ResultLoss
	}

	result.Highlight = e.maybeHighlight(result, opponentName, rivalry)
	return result
}

// drawScore samples a score from the sport's distribution, its center shifted
// by the rating gap.
func (e *Engine) drawScore(gap float64) int {
	prof := e.profile
	mean := prof.AvgScore + gap*prof.GapScoreScale
	score := int(math.Round(e.rng.NormFloat64()*prof.ScoreStdDev + mean))
	if score < prof.MinLosingScore {
		score = prof.MinLosingScore
	}
	if score < 0 {
		score = 0
	}
	return score
}

func (e *Engine) overtimeMargin() int {
	if e.profile.GridironScore {
		return 3 // overtime field goal
	}
	return 1
}

// impossibleGridiron maps scores unreachable from field goals and touchdowns
// to the nearest common football score.
var impossibleGridiron = map[int]int{
	1: 3, 2: 3, 4: 3, 5: 6, 8: 7, 11: 10,
}

func snapGridiron(score int) int {
	if snapped, ok := impossibleGridiron[score]; ok {
		return snapped
	}
	return score
}

// UpdateMomentum maps recent results onto a [-5, 5] adjustment: a five-game
// win streak earns the maximum, a five-game skid the minimum, anything else
// is a nudge from the last five results.
func UpdateMomentum(history []string) float64 {
	if len(history) == 0 {
		return 0
	}

	streak := trailingStreak(history)
	last := history[len(history)-1]
	if streak >= 5 {
		if last == models.ResultWin {
			return 5
		}
		if last == models.ResultLoss || last == models.ResultOTLoss {
			return -5
		}
	}

	start := len(history) - 5
	if start < 0 {
		start = 0
	}
	var nudge float64
	for _, r := range history[start:] {
		switch r {
		case models.ResultWin:
			nudge++
		case models.ResultLoss:
			nudge--
		case models.ResultOTLoss:
			nudge -= 0.5
		}
	}
	return math.Min(5, math.Max(-5, nudge))
}

func trailingStreak(history []string) int {
	last := history[len(history)-1]
	streak := 0
	for i := len(history) - 1; i >= 0; i-- {
		r := history[i]
		// OT losses extend a losing streak
		if r == models.ResultOTLoss {
			r = models.ResultLoss
		}
		cmp := last
		if cmp == models.ResultOTLoss {
			cmp = models.ResultLoss
		}
		if r != cmp {
			break
		}
		streak++
	}
	return streak
}
