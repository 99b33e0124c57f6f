package season

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/armchairgm/season-sim/internal/acquisition"
	"github.com/armchairgm/season-sim/internal/engine"
	"github.com/armchairgm/season-sim/internal/league"
	"github.com/armchairgm/season-sim/internal/models"
	"github.com/armchairgm/season-sim/internal/valuation"
)

// SessionLoader supplies a session's schedule, record, and trades. Satisfied
// by acquisition.Service; tests substitute a stub.
type SessionLoader interface {
	LoadSession(ctx context.Context, sessionID uuid.UUID, team string, sport league.Sport, year int) *acquisition.SessionData
}

// Input identifies one simulation run. A zero Seed draws from the wall clock.
type Input struct {
	SessionID  uuid.UUID
	Sport      league.Sport
	TeamCode   string
	SeasonYear int
	Seed       int64
}

// Orchestrator runs a full season projection: load the session, value the
// trades, play the schedule, settle the standings and playoffs, grade the GM.
type Orchestrator struct {
	data   SessionLoader
	logger *logrus.Logger
}

func NewOrchestrator(data SessionLoader, logger *logrus.Logger) *Orchestrator {
	return &Orchestrator{data: data, logger: logger}
}

// Run produces a complete report. Invalid league or team inputs yield a
// failed report rather than an error; the report is the API's only currency.
func (o *Orchestrator) Run(ctx context.Context, in Input) *models.Report {
	team := strings.ToLower(in.TeamCode)

	prof := league.GetProfile(in.Sport)
	if prof == nil {
		return models.FailedReport(in.SessionID, string(in.Sport), team, in.SeasonYear, "unsupported league")
	}
	cfg := prof.Config
	if !cfg.HasTeam(team) {
		return models.FailedReport(in.SessionID, string(in.Sport), team, in.SeasonYear, "unknown team code")
	}

	seed := in.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	log := o.logger.WithFields(logrus.Fields{
		"session_id": in.SessionID,
		"sport":      in.Sport,
		"team":       team,
		"seed":       seed,
	})

	data := o.data.LoadSession(ctx, in.SessionID, team, in.Sport, in.SeasonYear)

	baselinePct := league.ApproxWinPct(team, in.Sport)
	if data.Record.GamesPlayed() > 0 {
		baselinePct = data.Record.WinPct()
	}
	baselineRating := league.WinPctToPowerRating(baselinePct, in.Sport)

	impact := valuation.TradeImpact(data.Trades, prof)
	modifiedRating := league.ClampRating(baselineRating + impact.PowerRatingDelta)

	schedule := data.Schedule
	if len(schedule) > cfg.GamesPerSeason {
		schedule = schedule[:cfg.GamesPerSeason]
	}

	// Two passes off the same seed: the baseline season answers "what would
	// this roster have done without the trades", so win improvement is an
	// honest differential and a tradeless session improves by exactly zero.
	baseline := simulateSeason(seed, prof, team, baselineRating, nil, schedule)
	modified := simulateSeason(seed, prof, team, modifiedRating, impact.PartnerDeltas, schedule)

	info := league.TeamInfo(team, in.Sport)
	userStanding := modified.toStanding(team, info.Name)

	standingsRng := rand.New(rand.NewSource(seed + 1))
	standings := buildStandings(prof, standingsInput{
		userCode:      team,
		userStanding:  userStanding,
		partnerDeltas: impact.PartnerDeltas,
		h2hWins:       modified.h2hWins,
		h2hGames:      modified.h2hGames,
		rng:           standingsRng,
	})

	playoffEngine := engine.New(seed+2, prof)
	playoffs := resolvePlayoffs(playoffEngine, prof, standings, team, modifiedRating, impact.PartnerDeltas)

	score := gradeScore(prof, impact, len(data.Trades), baseline.record, modified.record, playoffs)

	summary := buildSummary(summaryInput{
		teamName:      info.Name,
		record:        modified.record,
		madePlayoffs:  playoffs.UserReached > 0,
		userChampion:  playoffs.UserChampion,
		tradeCount:    len(data.Trades),
		ratingDelta:   impact.PowerRatingDelta,
		games:         modified.games,
		partnerDeltas: impact.PartnerDeltas,
		sport:         in.Sport,
	})

	log.WithFields(logrus.Fields{
		"record":    formatRecord(modified.record),
		"synthetic": data.ScheduleSynthetic,
		"trades":    len(data.Trades),
	}).Info("Season simulation complete")

	return &models.Report{
		SimulationID:        uuid.New(),
		SessionID:           in.SessionID,
		Sport:               string(in.Sport),
		TeamCode:            team,
		TeamName:            info.Name,
		SeasonYear:          in.SeasonYear,
		Seed:                seed,
		Success:             true,
		BaselineRecord:      baseline.record,
		ModifiedRecord:      modified.record,
		BaselinePowerRating: baselineRating,
		ModifiedPowerRating: modifiedRating,
		Score:               score,
		Standings:           standings,
		Playoffs:            playoffs.Rounds,
		Championship:        playoffs.Championship,
		Summary:             summary,
		Games:               modified.games,
		Segments:            buildSegments(modified.games),
		PlayerImpacts:       impact.PlayerImpacts,
		PartnerDeltas:       impact.PartnerDeltas,
		GeneratedAt:         time.Now().UTC(),
	}
}

// seasonSim accumulates one pass through the schedule.
type seasonSim struct {
	games         []models.SimulatedGame
	record        models.Record
	pointsFor     int
	pointsAgainst int
	h2hWins       map[string]int
	h2hGames      map[string]int
	divWins       float64
	divGames      float64
}

// simulateSeason plays the schedule in order with a fresh engine. Momentum
// carries game to game; the running record is snapshotted after each result.
func simulateSeason(seed int64, prof *league.Profile, team string, rating float64, partnerDeltas map[string]float64, schedule []models.ScheduledGame) seasonSim {
	cfg := prof.Config
	eng := engine.New(seed, prof)
	sim := seasonSim{
		games:    make([]models.SimulatedGame, 0, len(schedule)),
		h2hWins:  make(map[string]int),
		h2hGames: make(map[string]int),
	}

	userDiv := cfg.DivisionOf(team)
	var momentum float64
	var history []string

	for i, g := range schedule {
		opp := strings.ToLower(g.OpponentCode)
		oppName := g.OpponentName
		if oppName == "" {
			oppName = league.TeamInfo(opp, prof.Sport).Name
		}

		oppRating := league.WinPctToPowerRating(league.ApproxWinPct(opp, prof.Sport), prof.Sport)
		if delta, ok := partnerDeltas[opp]; ok {
			oppRating = league.ClampRating(oppRating + delta)
		}

		rivalry := userDiv != "" && cfg.DivisionOf(opp) == userDiv
		res := eng.SimulateGame(rating, oppRating, g.IsHome, momentum, oppName, rivalry)

		switch res.Result {
		case models.ResultWin:
			sim.record.Wins++
			sim.h2hWins[opp]++
			if rivalry {
				sim.divWins++
			}
		case models.ResultOTLoss:
			sim.record.OTLosses++
		case models.ResultTie:
			sim.record.Ties++
		default:
			sim.record.Losses++
		}
		sim.h2hGames[opp]++
		if rivalry {
			sim.divGames++
		}
		sim.pointsFor += res.TeamScore
		sim.pointsAgainst += res.OpponentScore

		history = append(history, res.Result)
		momentum = engine.UpdateMomentum(history)

		sim.games = append(sim.games, models.SimulatedGame{
			GameDate:      g.GameDate,
			OpponentCode:  opp,
			OpponentName:  oppName,
			IsHome:        g.IsHome,
			Week:          g.Week,
			TeamScore:     res.TeamScore,
			OpponentScore: res.OpponentScore,
			Result:        res.Result,
			Overtime:      res.Overtime,
			Highlight:     res.Highlight,
			RecordAfter:   sim.record,
			Segment:       segmentLabel(i, len(schedule)),
		})
	}
	return sim
}

// toStanding converts the simulated season into the user's standings line.
func (s seasonSim) toStanding(code, name string) teamSeason {
	games := s.record.Games()
	pct := 0.0
	if games > 0 {
		pct = (float64(s.record.Wins) + 0.5*float64(s.record.Ties)) / float64(games)
	}
	ts := teamSeason{
		Standing: models.Standing{
			TeamCode:   code,
			TeamName:   name,
			Wins:       s.record.Wins,
			Losses:     s.record.Losses,
			OTLosses:   s.record.OTLosses,
			Ties:       s.record.Ties,
			WinPct:     pct,
			PointDiff:  s.pointsFor - s.pointsAgainst,
			IsUserTeam: true,
		},
		divWins:  s.divWins,
		divGames: s.divGames,
	}
	return ts
}
