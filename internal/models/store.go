package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ScheduledGame is one entry in a team's season schedule as the host app
// stores it. The simulator reads these in date order.
type ScheduledGame struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TeamCode     string    `gorm:"index:idx_sched_team;not null" json:"team_code"`
	Sport        string    `gorm:"index:idx_sched_team;not null" json:"sport"`
	SeasonYear   int       `gorm:"index:idx_sched_team;not null" json:"season_year"`
	GameDate     time.Time `gorm:"not null" json:"game_date"`
	OpponentCode string    `gorm:"not null" json:"opponent_code"`
	OpponentName string    `json:"opponent_name"`
	IsHome       bool      `json:"is_home"`
	Week         *int      `json:"week,omitempty"` // football only
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (ScheduledGame) TableName() string {
	return "scheduled_games"
}

// TeamRecord is a team's real-world record at the time the session was
// created. Wins/losses seed the baseline power rating.
type TeamRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	TeamCode       string    `gorm:"index:idx_record_team;not null" json:"team_code"`
	Sport          string    `gorm:"index:idx_record_team;not null" json:"sport"`
	SeasonYear     int       `gorm:"index:idx_record_team;not null" json:"season_year"`
	Wins           int       `json:"wins"`
	Losses         int       `json:"losses"`
	OTLosses       int       `json:"ot_losses"` // hockey only
	PointsFor      int       `json:"points_for"`
	PointsAgainst  int       `json:"points_against"`
	LastDataUpdate time.Time `json:"last_data_update"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (TeamRecord) TableName() string {
	return "team_records"
}

// GamesPlayed is the total games reflected in the record.
func (r TeamRecord) GamesPlayed() int {
	return r.Wins + r.Losses + r.OTLosses
}

// WinPct treats an OT loss as a loss. Zero games means no signal; callers
// fall back to the league reference percentage.
func (r TeamRecord) WinPct() float64 {
	games := r.GamesPlayed()
	if games == 0 {
		return 0
	}
	return float64(r.Wins) / float64(games)
}

// TradedPlayer is one player inside a trade. Players with usable Stats are
// valued by the stat formula; everyone else goes through the prospect path.
type TradedPlayer struct {
	Name          string             `json:"name"`
	Position      string             `json:"position"`
	Age           int                `json:"age"`
	Stats         map[string]float64 `json:"stats,omitempty"`
	ProspectGrade float64            `json:"prospect_grade,omitempty"` // 0-100 scouting grade
	OrgRank       int                `json:"org_rank,omitempty"`       // rank within organization, 1 = top
	TradeValue    float64            `json:"trade_value,omitempty"`    // proxy when no grade available
}

// HasUsableStats reports whether the stat-based valuation path applies.
func (p TradedPlayer) HasUsableStats() bool {
	return len(p.Stats) > 0
}

// DraftPick is a pick included in a trade, valued by round.
type DraftPick struct {
	Round int `json:"round"`
	Year  int `json:"year"`
}

// Trade is one accepted hypothetical trade for a session. Immutable input to
// the simulator; the grade was computed when the trade was accepted.
type Trade struct {
	ID                uint                               `gorm:"primaryKey" json:"id"`
	SessionID         uuid.UUID                          `gorm:"type:uuid;index;not null" json:"session_id"`
	Sport             string                             `gorm:"not null" json:"sport"`
	TeamCode          string                             `gorm:"not null" json:"team_code"`
	PartnerCode       string                             `gorm:"not null" json:"partner_code"`
	SecondPartnerCode string                             `json:"second_partner_code,omitempty"`
	IsThreeTeam       bool                               `gorm:"default:false" json:"is_three_team"`
	Grade             float64                            `json:"grade"` // 0-100
	Accepted          bool                               `gorm:"default:false;index" json:"accepted"`
	PlayersReceived   datatypes.JSONType[[]TradedPlayer] `json:"players_received"`
	PlayersSent       datatypes.JSONType[[]TradedPlayer] `json:"players_sent"`
	PicksReceived     datatypes.JSONType[[]DraftPick]    `json:"picks_received"`
	PicksSent         datatypes.JSONType[[]DraftPick]    `json:"picks_sent"`
	CreatedAt         time.Time                          `json:"created_at"`
	UpdatedAt         time.Time                          `json:"updated_at"`
}

func (Trade) TableName() string {
	return "trades"
}

// Partners lists the other franchises in the trade.
func (t Trade) Partners() []string {
	partners := []string{t.PartnerCode}
	if t.IsThreeTeam && t.SecondPartnerCode != "" {
		partners = append(partners, t.SecondPartnerCode)
	}
	return partners
}
