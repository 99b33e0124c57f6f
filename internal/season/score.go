package season

import (
	"github.com/armchairgm/season-sim/internal/league"
	"github.com/armchairgm/season-sim/internal/models"
	"github.com/armchairgm/season-sim/internal/valuation"
)

const (
	maxTradeQuality  = 30.0
	maxWinImprove    = 30.0
	maxPlayoffPoints = 20.0
	championshipPts  = 15.0
)

// gradeScore converts the session into a GM report card. Trade components
// are zero when no trades were made; win improvement compares the modified
// season against the no-trade projection of the same seed, so a tradeless
// session scores exactly zero there too.
func gradeScore(prof *league.Profile, impact valuation.Impact, tradeCount int, baseline, modified models.Record, playoffs playoffResult) models.GMScore {
	var score models.GMScore

	if tradeCount > 0 {
		score.TradeQualityScore = clampComponent(impact.AvgGrade*0.3, maxTradeQuality)

		// A season is "meaningfully improved" at roughly 12% more wins.
		games := float64(prof.Config.GamesPerSeason)
		perWin := maxWinImprove / (games * 0.12)
		score.WinImprovementScore = clampComponent(float64(modified.Wins-baseline.Wins)*perWin, maxWinImprove)
	}

	if playoffs.UserReached > 0 && playoffs.TotalRounds > 0 {
		score.PlayoffAchievementScore = clampComponent(
			maxPlayoffPoints*float64(playoffs.UserReached)/float64(playoffs.TotalRounds), maxPlayoffPoints)
	}
	if playoffs.UserChampion {
		score.ChampionshipBonus = championshipPts
	}

	score.Total = score.TradeQualityScore + score.WinImprovementScore +
		score.PlayoffAchievementScore + score.ChampionshipBonus
	score.LetterGrade = letterGrade(score.Total)
	return score
}

func clampComponent(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func letterGrade(total float64) string {
	switch {
	case total >= 85:
		return "A+"
	case total >= 70:
		return "A"
	case total >= 55:
		return "B"
	case total >= 40:
		return "C"
	case total >= 25:
		return "D"
	default:
		return "F"
	}
}
