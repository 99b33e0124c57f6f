package season

import (
	"fmt"
	"math/bits"

	"github.com/armchairgm/season-sim/internal/engine"
	"github.com/armchairgm/season-sim/internal/league"
	"github.com/armchairgm/season-sim/internal/models"
)

// seriesHomeGames marks which games of a best-of-7 the higher seed hosts
// (2-2-1-1-1 alternation). Single-game rounds always go to the higher seed.
var seriesHomeGames = map[int]bool{0: true, 1: true, 4: true, 6: true}

// playoffResult carries the resolved bracket plus what the user's run was
// worth for scoring.
type playoffResult struct {
	Rounds       []models.PlayoffRound
	Championship *models.Championship
	UserReached  int // deepest round the user played, 0 if they missed
	TotalRounds  int
	UserChampion bool
}

type bracketTeam struct {
	seed   models.PlayoffSeed
	rating float64
}

// resolvePlayoffs seeds each conference from the standings, plays out the
// rounds with the shared engine, then crosses the two champions in the
// finals. Ratings come from final win percentage so a team that overachieved
// in the regular season carries that form into the bracket.
func resolvePlayoffs(eng *engine.Engine, prof *league.Profile, standings map[string][]models.Standing, userCode string, userRating float64, partnerDeltas map[string]float64) playoffResult {
	cfg := prof.Config

	ratingFor := func(s models.Standing) float64 {
		if s.TeamCode == userCode {
			return userRating
		}
		r := league.WinPctToPowerRating(s.WinPct, prof.Sport)
		if delta, ok := partnerDeltas[s.TeamCode]; ok {
			r = league.ClampRating(r + delta)
		}
		return r
	}

	size := bracketSize(cfg.PlayoffQualifiers)
	confRounds := bits.TrailingZeros(uint(size)) // log2
	totalRounds := confRounds + 1

	res := playoffResult{TotalRounds: totalRounds}
	rounds := make([]models.PlayoffRound, totalRounds)
	for i := range rounds {
		rounds[i] = models.PlayoffRound{Round: i + 1, Name: roundName(cfg, totalRounds, i)}
	}

	var finalists []bracketTeam
	for _, conf := range cfg.Conferences {
		// Only the top N qualify; padding slots beyond them are byes.
		field := standings[conf]
		if len(field) > cfg.PlayoffQualifiers {
			field = field[:cfg.PlayoffQualifiers]
		}
		alive := seedBracket(field, ratingFor, size)
		for round := 0; round < confRounds; round++ {
			var next []bracketTeam
			for i := 0; i < len(alive); i += 2 {
				higher, lower := alive[i], alive[i+1]
				if lower.seed.TeamCode == "" { // bye
					next = append(next, higher)
					continue
				}
				// After an upset the surviving worse seed can land in the
				// first slot; home advantage still follows seeding.
				if lower.seed.Seed < higher.seed.Seed {
					higher, lower = lower, higher
				}
				m := playSeries(eng, prof, higher, lower)
				m.Round = round + 1
				m.RoundName = rounds[round].Name
				m.Conference = conf
				rounds[round].Matchups = append(rounds[round].Matchups, m)
				next = append(next, winnerOf(m, higher, lower))
				res.UserReached = trackUser(res.UserReached, round+1, userCode, higher, lower)
			}
			alive = next
		}
		finalists = append(finalists, alive[0])
	}

	// Home ice in the finals goes to the stronger regular season.
	higher, lower := finalists[0], finalists[1]
	if finalsPct(standings, lower.seed.TeamCode) > finalsPct(standings, higher.seed.TeamCode) {
		higher, lower = lower, higher
	}
	final := playSeries(eng, prof, higher, lower)
	final.Round = totalRounds
	final.RoundName = rounds[totalRounds-1].Name
	rounds[totalRounds-1].Matchups = append(rounds[totalRounds-1].Matchups, final)
	res.UserReached = trackUser(res.UserReached, totalRounds, userCode, higher, lower)

	champ := winnerOf(final, higher, lower)
	runnerUp := higher
	if champ.seed.TeamCode == higher.seed.TeamCode {
		runnerUp = lower
	}
	res.Championship = &models.Championship{
		WinnerCode:  champ.seed.TeamCode,
		WinnerName:  champ.seed.TeamName,
		RunnerUp:    runnerUp.seed.TeamName,
		SeriesScore: seriesScore(final),
		UserWon:     champ.seed.TeamCode == userCode,
	}
	res.UserChampion = res.Championship.UserWon
	res.Rounds = rounds
	return res
}

// bracketSize pads the qualifier count up to a power of two; the unfilled
// slots become first-round byes for the top seeds.
func bracketSize(qualifiers int) int {
	size := 1
	for size < qualifiers {
		size *= 2
	}
	return size
}

// seedBracket lays the qualifiers into standard single-elimination order, so
// the top seed meets the weakest survivor each round. Seed numbers past the
// qualifier list stay empty and read as byes.
func seedBracket(qualifiers []models.Standing, ratingFor func(models.Standing) float64, size int) []bracketTeam {
	order := bracketOrder(size)
	out := make([]bracketTeam, size)
	for i, seedNum := range order {
		if seedNum > len(qualifiers) {
			continue // bye slot
		}
		s := qualifiers[seedNum-1]
		out[i] = bracketTeam{
			seed:   models.PlayoffSeed{TeamCode: s.TeamCode, TeamName: s.TeamName, Seed: seedNum},
			rating: ratingFor(s),
		}
	}
	return out
}

// bracketOrder returns seed numbers in bracket position order, e.g. for 8:
// 1,8,4,5,2,7,3,6.
func bracketOrder(size int) []int {
	order := []int{1}
	for len(order) < size {
		doubled := make([]int, 0, len(order)*2)
		for _, s := range order {
			doubled = append(doubled, s, len(order)*2+1-s)
		}
		order = doubled
	}
	return order
}

// playSeries runs a best-of-N (or single game) from the higher seed's
// perspective. Momentum resets between playoff series.
func playSeries(eng *engine.Engine, prof *league.Profile, higher, lower bracketTeam) models.PlayoffMatchup {
	need := prof.Config.SeriesLength/2 + 1
	m := models.PlayoffMatchup{Higher: higher.seed, Lower: lower.seed}
	for game := 0; m.HigherWins < need && m.LowerWins < need; game++ {
		home := prof.Config.SeriesLength == 1 || seriesHomeGames[game]
		res := playSeriesGame(eng, higher, lower, home)
		if res.Result == models.ResultWin {
			m.HigherWins++
		} else {
			m.LowerWins++
		}
	}
	if m.HigherWins >= need {
		m.WinnerCode = higher.seed.TeamCode
	} else {
		m.WinnerCode = lower.seed.TeamCode
	}
	return m
}

// playSeriesGame draws one series game. Postseason games cannot end tied, so
// a drawn regulation result is replayed until someone wins.
func playSeriesGame(eng *engine.Engine, higher, lower bracketTeam, home bool) engine.GameResult {
	res := eng.SimulateGame(higher.rating, lower.rating, home, 0, lower.seed.TeamName, false)
	for res.Result == models.ResultTie {
		res = eng.SimulateGame(higher.rating, lower.rating, home, 0, lower.seed.TeamName, false)
	}
	return res
}

// seriesScore renders a series result winner-first, e.g. "4-2".
func seriesScore(m models.PlayoffMatchup) string {
	if m.WinnerCode == m.Higher.TeamCode {
		return fmt.Sprintf("%d-%d", m.HigherWins, m.LowerWins)
	}
	return fmt.Sprintf("%d-%d", m.LowerWins, m.HigherWins)
}

func winnerOf(m models.PlayoffMatchup, higher, lower bracketTeam) bracketTeam {
	if m.WinnerCode == higher.seed.TeamCode {
		return higher
	}
	return lower
}

func trackUser(current, round int, userCode string, higher, lower bracketTeam) int {
	if higher.seed.TeamCode == userCode || lower.seed.TeamCode == userCode {
		if round > current {
			return round
		}
	}
	return current
}

func finalsPct(standings map[string][]models.Standing, code string) float64 {
	for _, conf := range standings {
		for _, s := range conf {
			if s.TeamCode == code {
				return s.WinPct
			}
		}
	}
	return 0
}

// roundName maps bracket rounds onto the league's round names, aligning the
// last conference round and finals with the tail of the list.
func roundName(cfg *league.Config, totalRounds, idx int) string {
	offset := len(cfg.RoundNames) - totalRounds
	nameIdx := idx + offset
	if nameIdx < 0 || nameIdx >= len(cfg.RoundNames) {
		return "Playoff Round"
	}
	return cfg.RoundNames[nameIdx]
}
