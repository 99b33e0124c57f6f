package models

import (
	"time"

	"github.com/google/uuid"
)

// Game result codes.
const (
	ResultWin    = "W"
	ResultLoss   = "L"
	ResultTie    = "T"
	ResultOTLoss = "OTL" // hockey: loss in overtime, worth a standings point
)

// Record is a win/loss tally. OTLosses is only populated for hockey.
type Record struct {
	Wins     int `json:"wins"`
	Losses   int `json:"losses"`
	OTLosses int `json:"ot_losses,omitempty"`
	Ties     int `json:"ties,omitempty"`
}

// Games is the total games in the record.
func (r Record) Games() int {
	return r.Wins + r.Losses + r.OTLosses + r.Ties
}

// SimulatedGame is one projected game. Games are appended in schedule order
// and never mutated afterwards.
type SimulatedGame struct {
	GameDate      time.Time `json:"game_date"`
	OpponentCode  string    `json:"opponent_code"`
	OpponentName  string    `json:"opponent_name"`
	IsHome        bool      `json:"is_home"`
	Week          *int      `json:"week,omitempty"`
	TeamScore     int       `json:"team_score"`
	OpponentScore int       `json:"opponent_score"`
	Result        string    `json:"result"` // W, L, T, OTL
	Overtime      bool      `json:"overtime"`
	Highlight     string    `json:"highlight,omitempty"`
	RecordAfter   Record    `json:"record_after"`
	Segment       string    `json:"segment"`
}

// Standing is one team's final conference placement.
type Standing struct {
	TeamCode   string  `json:"team_code"`
	TeamName   string  `json:"team_name"`
	Conference string  `json:"conference"`
	Division   string  `json:"division"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	OTLosses   int     `json:"ot_losses,omitempty"`
	Ties       int     `json:"ties,omitempty"`
	WinPct     float64 `json:"win_pct"`
	PointDiff  int     `json:"point_diff"`
	Rank       int     `json:"rank"`
	GamesBack  float64 `json:"games_back"`
	InPlayoffs bool    `json:"in_playoffs"`
	IsUserTeam bool    `json:"is_user_team,omitempty"`
	IsPartner  bool    `json:"is_partner,omitempty"`
}

// PlayoffSeed identifies one bracket participant.
type PlayoffSeed struct {
	TeamCode string `json:"team_code"`
	TeamName string `json:"team_name"`
	Seed     int    `json:"seed"`
}

// PlayoffMatchup is one series in the bracket.
type PlayoffMatchup struct {
	Round      int         `json:"round"`
	RoundName  string      `json:"round_name"`
	Conference string      `json:"conference"` // empty for the finals
	Higher     PlayoffSeed `json:"higher"`
	Lower      PlayoffSeed `json:"lower"`
	HigherWins int         `json:"higher_wins"`
	LowerWins  int         `json:"lower_wins"`
	WinnerCode string      `json:"winner_code"`
}

// PlayoffRound groups the matchups of one bracket round.
type PlayoffRound struct {
	Round    int              `json:"round"`
	Name     string           `json:"name"`
	Matchups []PlayoffMatchup `json:"matchups"`
}

// Championship is the finals outcome, present once the bracket resolves.
type Championship struct {
	WinnerCode  string `json:"winner_code"`
	WinnerName  string `json:"winner_name"`
	RunnerUp    string `json:"runner_up"`
	SeriesScore string `json:"series_score"`
	UserWon     bool   `json:"user_won"`
}

// GMScore grades the session's trades and their season-long effect. Each
// component is clamped to its own maximum; Total to the sum of maxima.
type GMScore struct {
	TradeQualityScore       float64 `json:"trade_quality_score"`       // max 30
	WinImprovementScore     float64 `json:"win_improvement_score"`     // max 30
	PlayoffAchievementScore float64 `json:"playoff_achievement_score"` // max 20
	ChampionshipBonus       float64 `json:"championship_bonus"`        // max 15
	Total                   float64 `json:"total"`                     // max 95
	LetterGrade             string  `json:"letter_grade"`
}

// PlayerImpact is the valuation of one traded player.
type PlayerImpact struct {
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Age      int     `json:"age"`
	Rating   float64 `json:"rating"`
	Received bool    `json:"received"` // true if the user acquired the player
}

// PartnerOutcome summarizes a trade partner's projected season.
type PartnerOutcome struct {
	TeamCode    string  `json:"team_code"`
	TeamName    string  `json:"team_name"`
	RatingDelta float64 `json:"rating_delta"`
	Summary     string  `json:"summary"`
}

// SeasonSegment is a contiguous slice of the schedule with its tallies.
type SeasonSegment struct {
	Label    string `json:"label"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	OTLosses int    `json:"ot_losses,omitempty"`
	Ties     int    `json:"ties,omitempty"`
}

// Summary is the narrative portion of the report.
type Summary struct {
	Headline    string           `json:"headline"`
	Narrative   string           `json:"narrative"`
	TradeImpact string           `json:"trade_impact"`
	KeyMoments  []string         `json:"key_moments"`
	Partners    []PartnerOutcome `json:"partners,omitempty"`
}

// Report is the complete result of one simulation run. The core persists
// nothing; callers own storage of the report.
type Report struct {
	SimulationID        uuid.UUID             `json:"simulation_id"`
	SessionID           uuid.UUID             `json:"session_id"`
	Sport               string                `json:"sport"`
	TeamCode            string                `json:"team_code"`
	TeamName            string                `json:"team_name"`
	SeasonYear          int                   `json:"season_year"`
	Seed                int64                 `json:"seed"`
	Success             bool                  `json:"success"`
	FailureReason       string                `json:"failure_reason,omitempty"`
	BaselineRecord      Record                `json:"baseline_record"`
	ModifiedRecord      Record                `json:"modified_record"`
	BaselinePowerRating float64               `json:"baseline_power_rating"`
	ModifiedPowerRating float64               `json:"modified_power_rating"`
	Score               GMScore               `json:"score"`
	Standings           map[string][]Standing `json:"standings"` // conference -> ordered standings
	Playoffs            []PlayoffRound        `json:"playoffs"`
	Championship        *Championship         `json:"championship,omitempty"`
	Summary             Summary               `json:"summary"`
	Games               []SimulatedGame       `json:"games"`
	Segments            []SeasonSegment       `json:"segments"`
	PlayerImpacts       []PlayerImpact        `json:"player_impacts"`
	PartnerDeltas       map[string]float64    `json:"partner_deltas,omitempty"`
	GeneratedAt         time.Time             `json:"generated_at"`
}

// FailedReport builds the zeroed, success=false report used when the league
// configuration cannot be resolved. Callers can render it gracefully.
func FailedReport(sessionID uuid.UUID, sport, team string, year int, reason string) *Report {
	return &Report{
		SimulationID:  uuid.New(),
		SessionID:     sessionID,
		Sport:         sport,
		TeamCode:      team,
		SeasonYear:    year,
		Success:       false,
		FailureReason: reason,
		Standings:     map[string][]Standing{},
		GeneratedAt:   time.Now().UTC(),
	}
}
