package season

import (
	"math/rand"
	"sort"

	"github.com/armchairgm/season-sim/internal/league"
	"github.com/armchairgm/season-sim/internal/models"
)

// teamSeason is a standing plus the extra tallies the tie-break chain needs.
type teamSeason struct {
	models.Standing
	divWins  float64
	divGames float64
	h2hWins  int // wins against the user's team, when they met
	h2hGames int
}

// TieBreaker orders two tied teams: negative means a ranks ahead of b, zero
// defers to the next breaker in the chain.
type TieBreaker func(a, b *teamSeason) int

// tieBreakChain is applied in order after win percentage. Kept as data so the
// policy can be swapped without touching the sort.
var tieBreakChain = []TieBreaker{
	headToHeadBreaker,
	divisionRecordBreaker,
	pointDiffBreaker,
}

func headToHeadBreaker(a, b *teamSeason) int {
	// The user's simulated games are the only real results available, so
	// head to head reduces to each team's record against the user as a
	// common opponent.
	aPct, aOK := h2hPct(a)
	bPct, bOK := h2hPct(b)
	if !aOK || !bOK {
		return 0
	}
	switch {
	case aPct > bPct:
		return -1
	case aPct < bPct:
		return 1
	}
	return 0
}

func h2hPct(t *teamSeason) (float64, bool) {
	if t.h2hGames == 0 {
		return 0, false
	}
	return float64(t.h2hWins) / float64(t.h2hGames), true
}

func divisionRecordBreaker(a, b *teamSeason) int {
	aPct := divPct(a)
	bPct := divPct(b)
	switch {
	case aPct > bPct:
		return -1
	case aPct < bPct:
		return 1
	}
	return 0
}

func divPct(t *teamSeason) float64 {
	if t.divGames == 0 {
		return 0
	}
	return t.divWins / t.divGames
}

func pointDiffBreaker(a, b *teamSeason) int {
	switch {
	case a.PointDiff > b.PointDiff:
		return -1
	case a.PointDiff < b.PointDiff:
		return 1
	}
	return 0
}

// standingsInput carries the user's simulated season into the league-wide
// standings build.
type standingsInput struct {
	userCode      string
	userStanding  teamSeason
	partnerDeltas map[string]float64
	h2hWins       map[string]int // user's wins per opponent
	h2hGames      map[string]int
	rng           *rand.Rand
}

// buildStandings projects final standings for both conferences. The user's
// line comes from the simulated season; every other team is synthesized from
// its reference win percentage (trade partners shifted by their deltas), with
// mild noise so leagues don't finish in lockstep every year.
func buildStandings(prof *league.Profile, in standingsInput) map[string][]models.Standing {
	cfg := prof.Config
	result := make(map[string][]models.Standing, 2)

	for _, conf := range cfg.Conferences {
		var teams []*teamSeason
		for _, div := range cfg.DivisionsByConf[conf] {
			for _, code := range cfg.Divisions[div] {
				if code == in.userCode {
					ts := in.userStanding
					ts.Conference = conf
					ts.Division = div
					teams = append(teams, &ts)
					continue
				}
				teams = append(teams, synthesizeTeam(prof, code, conf, div, in))
			}
		}

		sort.SliceStable(teams, func(i, j int) bool {
			a, b := teams[i], teams[j]
			if a.WinPct != b.WinPct {
				return a.WinPct > b.WinPct
			}
			for _, breaker := range tieBreakChain {
				if cmp := breaker(a, b); cmp != 0 {
					return cmp < 0
				}
			}
			return false // stable order breaks remaining ties
		})

		standings := make([]models.Standing, len(teams))
		leader := teams[0]
		for i, t := range teams {
			t.Rank = i + 1
			t.InPlayoffs = i < cfg.PlayoffQualifiers
			t.GamesBack = float64((leader.Wins-t.Wins)+(t.Losses-leader.Losses)) / 2
			standings[i] = t.Standing
		}
		result[conf] = standings
	}
	return result
}

// synthesizeTeam projects a non-user team's final line from its reference win
// percentage, shifted by any trade-partner delta.
func synthesizeTeam(prof *league.Profile, code, conf, div string, in standingsInput) *teamSeason {
	cfg := prof.Config
	games := cfg.GamesPerSeason

	pct := league.ApproxWinPct(code, prof.Sport)
	if delta, ok := in.partnerDeltas[code]; ok {
		pct += delta / prof.RatingSpread
	}

	// Mild season-to-season noise, bounded so a bad team can't luck into a title run
	pct += (in.rng.Float64() - 0.5) * 0.08
	if pct < 0.05 {
		pct = 0.05
	}
	if pct > 0.95 {
		pct = 0.95
	}

	wins := int(pct*float64(games) + 0.5)
	if wins > games {
		wins = games
	}
	losses := games - wins
	otLosses := 0
	if prof.HasOTLoss && losses > 0 {
		// a slice of losses come in overtime
		otLosses = losses / 7
		losses -= otLosses
	}

	diff := int((pct - 0.5) * float64(games) * prof.AvgScore * 0.4)

	divGames := float64(games) / 4
	ts := &teamSeason{
		Standing: models.Standing{
			TeamCode:   code,
			TeamName:   league.TeamInfo(code, prof.Sport).Name,
			Conference: conf,
			Division:   div,
			Wins:       wins,
			Losses:     losses,
			OTLosses:   otLosses,
			WinPct:     float64(wins) / float64(games),
			PointDiff:  diff,
		},
		divWins:  pct * divGames,
		divGames: divGames,
		h2hWins:  in.h2hGames[code] - in.h2hWins[code],
		h2hGames: in.h2hGames[code],
	}
	if _, ok := in.partnerDeltas[code]; ok {
		ts.IsPartner = true
	}
	return ts
}
