package engine

import "fmt"

// Highlight attachment is capped; most games pass without one.
const highlightProb = 0.15

var blowoutLines = []string{
	"Complete domination from the opening minutes against %s.",
	"A statement win that left %s searching for answers.",
	"The rout was on early and %s never recovered.",
	"Everything clicked in a laugher over %s.",
}

var nailBiterLines = []string{
	"A heart-stopper against %s decided in the final moments.",
	"Neither side blinked until the very end against %s.",
	"The kind of game against %s that ages a fanbase.",
	"Survived a furious late push from %s.",
}

var overtimeLines = []string{
	"Bonus time turned into instant heartbreak or heroics against %s.",
	"It took extra time to settle things with %s.",
	"An overtime classic against %s that nobody in the building will forget.",
	"Regulation wasn't enough to separate these teams, %s pushing it to the limit.",
}

var rivalryLines = []string{
	"Another chapter in the rivalry with %s, and this one got chippy.",
	"Division games against %s are never just another game.",
	"Bragging rights against %s settled, for now.",
	"The rivalry with %s delivered again.",
}

// maybeHighlight picks a thematic line from the pool matching the scoreline.
// Cosmetic only: the result and score are already final when this runs.
func (e *Engine) maybeHighlight(result GameResult, opponentName string, rivalry bool) string {
	if e.rng.Float64() >= highlightProb {
		return ""
	}

	margin := result.TeamScore - result.OpponentScore
	if margin < 0 {
		margin = -margin
	}

	var pool []string
	switch {
	case result.Overtime:
		pool = overtimeLines
	case margin >= e.profile.BlowoutMargin:
		pool = blowoutLines
	case rivalry:
		pool = rivalryLines
	case margin <= e.profile.MinMargin+1:
		pool = nailBiterLines
	default:
		return ""
	}

	return fmt.Sprintf(pool[e.rng.Intn(len(pool))], opponentName)
}
