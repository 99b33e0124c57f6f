package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/armchairgm/season-sim/internal/league"
	"github.com/armchairgm/season-sim/pkg/utils"
)

type LeagueHandler struct{}

func NewLeagueHandler() *LeagueHandler {
	return &LeagueHandler{}
}

type divisionView struct {
	Name  string     `json:"name"`
	Teams []teamView `json:"teams"`
}

type conferenceView struct {
	Name      string         `json:"name"`
	Divisions []divisionView `json:"divisions"`
}

type teamView struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	WinPct      float64 `json:"win_pct"`
	PowerRating float64 `json:"power_rating"`
}

type leagueView struct {
	Sport             string           `json:"sport"`
	Conferences       []conferenceView `json:"conferences"`
	GamesPerSeason    int              `json:"games_per_season"`
	PlayoffQualifiers int              `json:"playoff_qualifiers"`
	SeriesLength      int              `json:"series_length"`
	RoundNames        []string         `json:"round_names"`
}

// GetLeague returns the full topology of one league, teams included.
func (h *LeagueHandler) GetLeague(c *gin.Context) {
	sport, err := league.ParseSport(strings.ToLower(c.Param("sport")))
	if err != nil {
		utils.SendNotFound(c, "Unknown league")
		return
	}
	cfg := league.GetConfig(sport)

	view := leagueView{
		Sport:             string(sport),
		GamesPerSeason:    cfg.GamesPerSeason,
		PlayoffQualifiers: cfg.PlayoffQualifiers,
		SeriesLength:      cfg.SeriesLength,
		RoundNames:        cfg.RoundNames,
	}
	for _, confName := range cfg.Conferences {
		conf := conferenceView{Name: confName}
		for _, divName := range cfg.DivisionsByConf[confName] {
			div := divisionView{Name: divName}
			for _, code := range cfg.Divisions[divName] {
				div.Teams = append(div.Teams, buildTeamView(code, sport))
			}
			conf.Divisions = append(conf.Divisions, div)
		}
		view.Conferences = append(view.Conferences, conf)
	}
	utils.SendSuccess(c, view)
}

type teamDetailView struct {
	teamView
	Sport      string `json:"sport"`
	Conference string `json:"conference"`
	Division   string `json:"division"`
}

// GetTeam returns one team with its league placement.
func (h *LeagueHandler) GetTeam(c *gin.Context) {
	sport, err := league.ParseSport(strings.ToLower(c.Param("sport")))
	if err != nil {
		utils.SendNotFound(c, "Unknown league")
		return
	}
	cfg := league.GetConfig(sport)

	code := strings.ToLower(c.Param("code"))
	if !cfg.HasTeam(code) {
		utils.SendNotFound(c, "Unknown team code")
		return
	}

	utils.SendSuccess(c, teamDetailView{
		teamView:   buildTeamView(code, sport),
		Sport:      string(sport),
		Conference: cfg.ConferenceOf(code),
		Division:   cfg.DivisionOf(code),
	})
}

func buildTeamView(code string, sport league.Sport) teamView {
	info := league.TeamInfo(code, sport)
	pct := league.ApproxWinPct(code, sport)
	return teamView{
		Code:        code,
		Name:        info.Name,
		Color:       info.Color,
		WinPct:      pct,
		PowerRating: league.WinPctToPowerRating(pct, sport),
	}
}
