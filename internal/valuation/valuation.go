// Package valuation converts heterogeneous player statistics across the four
// supported sports into a single comparable rating, nets accepted trades, and
// produces the power-rating delta fed into the season simulation.
package valuation

import (
	"math"

	"github.com/armchairgm/season-sim/internal/league"
	"github.com/armchairgm/season-sim/internal/models"
)

// Impact is the net effect of a session's accepted trades.
type Impact struct {
	PowerRatingDelta float64
	PlayerImpacts    []models.PlayerImpact
	AvgGrade         float64
	PartnerDeltas    map[string]float64
}

// PlayerImpactRating scores one traded player on a [0, 15] scale. Players
// with usable stats go through the sport's weighted stat formula; everyone
// else is valued as a prospect.
func PlayerImpactRating(p models.TradedPlayer, prof *league.Profile) float64 {
	if rating, ok := statRating(p, prof); ok {
		return rating
	}
	return prospectRating(p, prof)
}

// statRating normalizes each recognized per-season stat against the sport's
// great-season denominator. The second return is false when none of the
// player's stats are recognized, which routes the player to the prospect path.
func statRating(p models.TradedPlayer, prof *league.Profile) (float64, bool) {
	if !p.HasUsableStats() {
		return 0, false
	}

	var weighted, weightSum float64
	for stat, value := range p.Stats {
		norm, ok := prof.GreatSeason[stat]
		if !ok || norm.Denom == 0 {
			continue
		}
		ratio := math.Min(value/norm.Denom, statCap)
		if ratio < 0 {
			ratio = 0
		}
		weighted += ratio * norm.Weight
		weightSum += norm.Weight
	}
	if weightSum == 0 {
		return 0, false
	}

	rating := (weighted / weightSum) * statScale
	rating *= prof.PositionWeight(p.Position)
	rating *= prof.AgeCurve.Factor(p.Age)

	return clampRating(rating), true
}

// prospectRating values a player without usable stats from a scouting grade
// or a trade-value proxy, with bonuses for top organizational rank and very
// young age, discounted by the sport's development horizon.
func prospectRating(p models.TradedPlayer, prof *league.Profile) float64 {
	var base float64
	switch {
	case p.ProspectGrade > 0:
		base = math.Min(p.ProspectGrade, 100) / 100 * prospectGradeScale
	case p.TradeValue > 0:
		base = math.Min(p.TradeValue, 100) / 100 * tradeValueScale
	default:
		return 0
	}

	switch {
	case p.OrgRank == 1:
		base += 2.5
	case p.OrgRank > 1 && p.OrgRank <= 5:
		base += 1.5
	case p.OrgRank > 5 && p.OrgRank <= 10:
		base += 0.75
	}

	if p.Age > 0 {
		if p.Age <= 19 {
			base += 1.0
		} else if p.Age <= 21 {
			base += 0.5
		}
	}

	return clampRating(base * prof.ProspectDiscount)
}

// TradeImpact nets every accepted trade into the user's power-rating delta
// and the compensating deltas for the trade partners.
func TradeImpact(trades []models.Trade, prof *league.Profile) Impact {
	impact := Impact{
		PartnerDeltas: make(map[string]float64),
	}
	if len(trades) == 0 {
		return impact
	}

	var gradeSum float64
	for _, trade := range trades {
		var gained, lost float64

		for _, p := range trade.PlayersReceived.Data() {
			rating := PlayerImpactRating(p, prof)
			gained += rating
			impact.PlayerImpacts = append(impact.PlayerImpacts, models.PlayerImpact{
				Name:     p.Name,
				Position: p.Position,
				Age:      p.Age,
				Rating:   rating,
				Received: true,
			})
		}
		for _, p := range trade.PlayersSent.Data() {
			rating := PlayerImpactRating(p, prof)
			lost += rating
			impact.PlayerImpacts = append(impact.PlayerImpacts, models.PlayerImpact{
				Name:     p.Name,
				Position: p.Position,
				Age:      p.Age,
				Rating:   rating,
				Received: false,
			})
		}

		for _, pick := range trade.PicksReceived.Data() {
			gained += PickValue(pick.Round)
		}
		for _, pick := range trade.PicksSent.Data() {
			lost += PickValue(pick.Round)
		}

		net := (gained - lost) * DampingFactor
		impact.PowerRatingDelta += net

		// The inverse of the user's gain lands on the partner side, split
		// evenly for three-team trades.
		partners := trade.Partners()
		if len(partners) > 0 {
			share := -net * PartnerMirror / float64(len(partners))
			for _, code := range partners {
				impact.PartnerDeltas[code] += share
			}
		}

		gradeSum += trade.Grade
	}

	impact.AvgGrade = gradeSum / float64(len(trades))
	impact.PowerRatingDelta = clampDelta(impact.PowerRatingDelta)
	for code, delta := range impact.PartnerDeltas {
		impact.PartnerDeltas[code] = clampDelta(delta)
	}

	return impact
}

func clampRating(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > maxPlayerRating {
		return maxPlayerRating
	}
	return r
}

func clampDelta(d float64) float64 {
	if d > MaxRatingDelta {
		return MaxRatingDelta
	}
	if d < -MaxRatingDelta {
		return -MaxRatingDelta
	}
	return d
}
