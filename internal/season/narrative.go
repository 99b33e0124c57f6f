package season

import (
	"fmt"
	"sort"
	"strings"

	"github.com/armchairgm/season-sim/internal/league"
	"github.com/armchairgm/season-sim/internal/models"
)

var segmentLabels = [4]string{"Opening Stretch", "Early Season", "Second Half", "Stretch Run"}

const maxKeyMoments = 5

// buildSegments splits the simulated schedule into quarters and tallies each.
func buildSegments(games []models.SimulatedGame) []models.SeasonSegment {
	if len(games) == 0 {
		return nil
	}
	segments := make([]models.SeasonSegment, 0, len(segmentLabels))
	for q := 0; q < len(segmentLabels); q++ {
		start := q * len(games) / len(segmentLabels)
		end := (q + 1) * len(games) / len(segmentLabels)
		if start == end {
			continue
		}
		seg := models.SeasonSegment{Label: segmentLabels[q]}
		for _, g := range games[start:end] {
			switch g.Result {
			case models.ResultWin:
				seg.Wins++
			case models.ResultOTLoss:
				seg.OTLosses++
			case models.ResultTie:
				seg.Ties++
			default:
				seg.Losses++
			}
		}
		segments = append(segments, seg)
	}
	return segments
}

// segmentLabel names the quarter of the season game i of n falls in.
func segmentLabel(i, n int) string {
	if n == 0 {
		return segmentLabels[0]
	}
	q := i * len(segmentLabels) / n
	if q >= len(segmentLabels) {
		q = len(segmentLabels) - 1
	}
	return segmentLabels[q]
}

type summaryInput struct {
	teamName      string
	record        models.Record
	madePlayoffs  bool
	userChampion  bool
	tradeCount    int
	ratingDelta   float64
	games         []models.SimulatedGame
	partnerDeltas map[string]float64
	sport         league.Sport
}

// buildSummary writes the narrative block from the resolved season.
func buildSummary(in summaryInput) models.Summary {
	return models.Summary{
		Headline:    headline(in),
		Narrative:   narrative(in),
		TradeImpact: tradeImpact(in),
		KeyMoments:  keyMoments(in.games),
		Partners:    partnerOutcomes(in),
	}
}

func headline(in summaryInput) string {
	switch {
	case in.userChampion:
		return fmt.Sprintf("%s Win It All", in.teamName)
	case in.madePlayoffs:
		return fmt.Sprintf("%s Punch Their Playoff Ticket", in.teamName)
	default:
		return fmt.Sprintf("%s Fall Short of the Postseason", in.teamName)
	}
}

func narrative(in summaryInput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "The %s finished the projected season %s.", in.teamName, formatRecord(in.record))

	switch {
	case in.userChampion:
		sb.WriteString(" They ran through the bracket and lifted the trophy.")
	case in.madePlayoffs:
		sb.WriteString(" The run ended in the playoffs, but the qualification alone validates the season's direction.")
	case in.record.Wins > in.record.Losses:
		sb.WriteString(" A winning record wasn't enough in a crowded conference race.")
	default:
		sb.WriteString(" A rebuilding year, with the lottery looking likelier than the bracket.")
	}

	if late, early := halfWins(in.games); late > early+2 {
		sb.WriteString(" The club found its form late, closing the year far stronger than it opened.")
	} else if early > late+2 {
		sb.WriteString(" A hot start faded down the stretch.")
	}
	return sb.String()
}

func tradeImpact(in summaryInput) string {
	if in.tradeCount == 0 {
		return "No trades were made, so the roster projects at its current level."
	}
	noun := "trade"
	if in.tradeCount > 1 {
		noun = fmt.Sprintf("%d trades", in.tradeCount)
	}
	switch {
	case in.ratingDelta > 1.5:
		return fmt.Sprintf("The %s moved the needle, adding %.1f points of power rating before puck drop.", noun, in.ratingDelta)
	case in.ratingDelta < -1.5:
		return fmt.Sprintf("The %s backfired, costing the roster %.1f points of power rating.", noun, -in.ratingDelta)
	default:
		return fmt.Sprintf("The %s came out roughly even on value.", noun)
	}
}

// keyMoments picks highlighted games, falling back to the largest margins
// when the season produced no highlights.
func keyMoments(games []models.SimulatedGame) []string {
	var moments []string
	for _, g := range games {
		if g.Highlight == "" {
			continue
		}
		moments = append(moments, formatMoment(g))
		if len(moments) == maxKeyMoments {
			return moments
		}
	}
	if len(moments) > 0 {
		return moments
	}

	byMargin := make([]models.SimulatedGame, len(games))
	copy(byMargin, games)
	sort.SliceStable(byMargin, func(i, j int) bool {
		return margin(byMargin[i]) > margin(byMargin[j])
	})
	for i := 0; i < len(byMargin) && i < 3; i++ {
		moments = append(moments, formatMoment(byMargin[i]))
	}
	return moments
}

func margin(g models.SimulatedGame) int {
	m := g.TeamScore - g.OpponentScore
	if m < 0 {
		return -m
	}
	return m
}

func formatMoment(g models.SimulatedGame) string {
	venue := "vs"
	if !g.IsHome {
		venue = "at"
	}
	s := fmt.Sprintf("%s %s %s: %d-%d %s", g.GameDate.Format("Jan 2"), venue, g.OpponentName, g.TeamScore, g.OpponentScore, g.Result)
	if g.Highlight != "" {
		s += " - " + g.Highlight
	}
	return s
}

func partnerOutcomes(in summaryInput) []models.PartnerOutcome {
	if len(in.partnerDeltas) == 0 {
		return nil
	}
	codes := make([]string, 0, len(in.partnerDeltas))
	for code := range in.partnerDeltas {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	outcomes := make([]models.PartnerOutcome, 0, len(codes))
	for _, code := range codes {
		delta := in.partnerDeltas[code]
		name := league.TeamInfo(code, in.sport).Name
		var text string
		switch {
		case delta > 0.5:
			text = fmt.Sprintf("The %s got the better of the deal and project stronger for it.", name)
		case delta < -0.5:
			text = fmt.Sprintf("The %s gave up more than they got back.", name)
		default:
			text = fmt.Sprintf("The %s broke about even.", name)
		}
		outcomes = append(outcomes, models.PartnerOutcome{
			TeamCode:    code,
			TeamName:    name,
			RatingDelta: delta,
			Summary:     text,
		})
	}
	return outcomes
}

func formatRecord(r models.Record) string {
	if r.OTLosses > 0 {
		return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.OTLosses)
	}
	if r.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.Ties)
	}
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// halfWins splits the season in two and returns second-half and first-half
// win counts, for the narrative's trajectory note.
func halfWins(games []models.SimulatedGame) (late, early int) {
	mid := len(games) / 2
	for i, g := range games {
		if g.Result != models.ResultWin {
			continue
		}
		if i < mid {
			early++
		} else {
			late++
		}
	}
	return late, early
}
