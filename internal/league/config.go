package league

import "fmt"

// Sport is the small fixed set of supported sport codes.
type Sport string

const (
	SportNHL Sport = "nhl"
	SportNFL Sport = "nfl"
	SportNBA Sport = "nba"
	SportMLB Sport = "mlb"
)

// ParseSport validates a sport code.
func ParseSport(code string) (Sport, error) {
	switch Sport(code) {
	case SportNHL, SportNFL, SportNBA, SportMLB:
		return Sport(code), nil
	}
	return "", fmt.Errorf("unknown sport code %q", code)
}

// Config is the immutable league topology for one sport.
type Config struct {
	Sport             Sport
	Conferences       [2]string
	Divisions         map[string][]string // division name -> team codes
	DivisionsByConf   map[string][]string // conference name -> division names
	PlayoffQualifiers int                 // per conference
	GamesPerSeason    int
	SeriesLength      int // best-of-N, 1 for single elimination
	RoundNames        []string
}

var configs = map[Sport]*Config{
	SportNHL: {
		Sport:       SportNHL,
		Conferences: [2]string{"Eastern", "Western"},
		Divisions: map[string][]string{
			"Atlantic":     {"bos", "buf", "det", "fla", "mtl", "ott", "tbl", "tor"},
			"Metropolitan": {"car", "cbj", "njd", "nyi", "nyr", "phi", "pit", "wsh"},
			"Central":      {"chi", "col", "dal", "min", "nsh", "stl", "uta", "wpg"},
			"Pacific":      {"ana", "cgy", "edm", "lak", "sjs", "sea", "van", "vgk"},
		},
		DivisionsByConf: map[string][]string{
			"Eastern": {"Atlantic", "Metropolitan"},
			"Western": {"Central", "Pacific"},
		},
		PlayoffQualifiers: 8,
		GamesPerSeason:    82,
		SeriesLength:      7,
		RoundNames:        []string{"First Round", "Second Round", "Conference Finals", "Stanley Cup Final"},
	},
	SportNFL: {
		Sport:       SportNFL,
		Conferences: [2]string{"AFC", "NFC"},
		Divisions: map[string][]string{
			"AFC East":  {"buf", "mia", "ne", "nyj"},
			"AFC North": {"bal", "cin", "cle", "pit"},
			"AFC South": {"hou", "ind", "jax", "ten"},
			"AFC West":  {"den", "kc", "lac", "lv"},
			"NFC East":  {"dal", "nyg", "phi", "wsh"},
			"NFC North": {"chi", "det", "gb", "min"},
			"NFC South": {"atl", "car", "no", "tb"},
			"NFC West":  {"ari", "lar", "sea", "sf"},
		},
		DivisionsByConf: map[string][]string{
			"AFC": {"AFC East", "AFC North", "AFC South", "AFC West"},
			"NFC": {"NFC East", "NFC North", "NFC South", "NFC West"},
		},
		PlayoffQualifiers: 6,
		GamesPerSeason:    17,
		SeriesLength:      1,
		RoundNames:        []string{"Wild Card", "Divisional Round", "Conference Championship", "League Championship"},
	},
	SportNBA: {
		Sport:       SportNBA,
		Conferences: [2]string{"Eastern", "Western"},
		Divisions: map[string][]string{
			"Atlantic":  {"bos", "bkn", "nyk", "phi", "tor"},
			"Central":   {"chi", "cle", "det", "ind", "mil"},
			"Southeast": {"atl", "cha", "mia", "orl", "was"},
			"Northwest": {"den", "min", "okc", "por", "uta"},
			"Pacific":   {"gsw", "lac", "lal", "phx", "sac"},
			"Southwest": {"dal", "hou", "mem", "no", "sas"},
		},
		DivisionsByConf: map[string][]string{
			"Eastern": {"Atlantic", "Central", "Southeast"},
			"Western": {"Northwest", "Pacific", "Southwest"},
		},
		PlayoffQualifiers: 8,
		GamesPerSeason:    82,
		SeriesLength:      7,
		RoundNames:        []string{"First Round", "Conference Semifinals", "Conference Finals", "Finals"},
	},
	SportMLB: {
		Sport:       SportMLB,
		Conferences: [2]string{"American League", "National League"},
		Divisions: map[string][]string{
			"AL East":    {"bal", "bos", "nyy", "tb", "tor"},
			"AL Central": {"cle", "cws", "det", "kc", "min"},
			"AL West":    {"ath", "hou", "laa", "sea", "tex"},
			"NL East":    {"atl", "mia", "nym", "phi", "wsn"},
			"NL Central": {"chc", "cin", "mil", "pit", "stl"},
			"NL West":    {"ari", "col", "lad", "sd", "sf"},
		},
		DivisionsByConf: map[string][]string{
			"American League": {"AL East", "AL Central", "AL West"},
			"National League": {"NL East", "NL Central", "NL West"},
		},
		PlayoffQualifiers: 6,
		GamesPerSeason:    162,
		SeriesLength:      7,
		RoundNames:        []string{"Wild Card Series", "Division Series", "Championship Series", "World Series"},
	},
}

// GetConfig returns the league topology for a sport, or nil when the sport is
// unknown. Callers treat nil as an unsuccessful simulation, not a panic.
func GetConfig(sport Sport) *Config {
	return configs[sport]
}

// ConferenceOf returns the conference a team plays in, or "" if the code is
// not part of the league.
func (c *Config) ConferenceOf(code string) string {
	div := c.DivisionOf(code)
	if div == "" {
		return ""
	}
	for conf, divs := range c.DivisionsByConf {
		for _, d := range divs {
			if d == div {
				return conf
			}
		}
	}
	return ""
}

// DivisionOf returns the division a team plays in, or "".
func (c *Config) DivisionOf(code string) string {
	for div, codes := range c.Divisions {
		for _, t := range codes {
			if t == code {
				return div
			}
		}
	}
	return ""
}

// ConferenceTeams lists every team code in a conference, division order.
func (c *Config) ConferenceTeams(conference string) []string {
	var teams []string
	for _, div := range c.DivisionsByConf[conference] {
		teams = append(teams, c.Divisions[div]...)
	}
	return teams
}

// HasTeam reports whether the code belongs to this league.
func (c *Config) HasTeam(code string) bool {
	return c.DivisionOf(code) != ""
}
