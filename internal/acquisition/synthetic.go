package acquisition

import (
	"time"

	"github.com/armchairgm/season-sim/internal/league"
	"github.com/armchairgm/season-sim/internal/models"
)

// SyntheticSchedule builds a deterministic round-robin schedule of the
// configured season length against the rest of the league. It stands in when
// the datastore has no schedule for the team.
func SyntheticSchedule(team string, sport league.Sport, year int) []models.ScheduledGame {
	cfg := league.GetConfig(sport)
	if cfg == nil {
		return nil
	}

	var opponents []string
	for _, conf := range cfg.Conferences {
		for _, code := range cfg.ConferenceTeams(conf) {
			if code != team {
				opponents = append(opponents, code)
			}
		}
	}
	if len(opponents) == 0 {
		return nil
	}

	start := seasonStart(sport, year)
	games := make([]models.ScheduledGame, 0, cfg.GamesPerSeason)
	date := start
	for i := 0; i < cfg.GamesPerSeason; i++ {
		opp := opponents[i%len(opponents)]
		game := models.ScheduledGame{
			TeamCode:     team,
			Sport:        string(sport),
			SeasonYear:   year,
			GameDate:     date,
			OpponentCode: opp,
			OpponentName: league.TeamInfo(opp, sport).Name,
			IsHome:       i%2 == 0,
		}
		if sport == league.SportNFL {
			week := i + 1
			game.Week = &week
			date = date.AddDate(0, 0, 7)
		} else {
			// games every two or three days, alternating
			if i%2 == 0 {
				date = date.AddDate(0, 0, 2)
			} else {
				date = date.AddDate(0, 0, 3)
			}
		}
		games = append(games, game)
	}
	return games
}

// seasonStart anchors synthetic schedules to each sport's usual opening
// stretch. Placeholder dates only; real schedules come from the store.
func seasonStart(sport league.Sport, year int) time.Time {
	switch sport {
	case league.SportNFL:
		return time.Date(year, time.September, 7, 13, 0, 0, 0, time.UTC)
	case league.SportMLB:
		return time.Date(year, time.April, 1, 19, 0, 0, 0, time.UTC)
	default: // nhl, nba
		return time.Date(year, time.October, 10, 19, 0, 0, 0, time.UTC)
	}
}
