package league

import (
	"fmt"
	"strings"
)

// Team is the immutable reference entry for one franchise.
type Team struct {
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation"`
	Color        string  `json:"color"`
	Logo         string  `json:"logo"`
	WinPct       float64 `json:"win_pct"` // approximate recent winning percentage
}

type teamEntry struct {
	name   string
	color  string
	winPct float64
}

var nhlTeams = map[string]teamEntry{
	"ana": {"Anaheim Ducks", "#F47A38", 0.45},
	"bos": {"Boston Bruins", "#FFB81C", 0.48},
	"buf": {"Buffalo Sabres", "#003087", 0.46},
	"car": {"Carolina Hurricanes", "#CE1126", 0.62},
	"cbj": {"Columbus Blue Jackets", "#002654", 0.50},
	"cgy": {"Calgary Flames", "#D2001C", 0.49},
	"chi": {"Chicago Blackhawks", "#CF0A2C", 0.38},
	"col": {"Colorado Avalanche", "#6F263D", 0.60},
	"dal": {"Dallas Stars", "#006847", 0.61},
	"det": {"Detroit Red Wings", "#CE1126", 0.48},
	"edm": {"Edmonton Oilers", "#FF4C00", 0.59},
	"fla": {"Florida Panthers", "#C8102E", 0.60},
	"lak": {"Los Angeles Kings", "#111111", 0.58},
	"min": {"Minnesota Wild", "#154734", 0.54},
	"mtl": {"Montreal Canadiens", "#AF1E2D", 0.49},
	"njd": {"New Jersey Devils", "#CE1126", 0.55},
	"nsh": {"Nashville Predators", "#FFB81C", 0.42},
	"nyi": {"New York Islanders", "#00539B", 0.47},
	"nyr": {"New York Rangers", "#0038A8", 0.48},
	"ott": {"Ottawa Senators", "#DA1A32", 0.53},
	"phi": {"Philadelphia Flyers", "#F74902", 0.45},
	"pit": {"Pittsburgh Penguins", "#FCB514", 0.46},
	"sea": {"Seattle Kraken", "#99D9D9", 0.46},
	"sjs": {"San Jose Sharks", "#006D75", 0.35},
	"stl": {"St. Louis Blues", "#002F87", 0.52},
	"tbl": {"Tampa Bay Lightning", "#002868", 0.57},
	"tor": {"Toronto Maple Leafs", "#00205B", 0.58},
	"uta": {"Utah Mammoth", "#71AFE5", 0.49},
	"van": {"Vancouver Canucks", "#00205B", 0.50},
	"vgk": {"Vegas Golden Knights", "#B4975A", 0.61},
	"wpg": {"Winnipeg Jets", "#041E42", 0.64},
	"wsh": {"Washington Capitals", "#C8102E", 0.62},
}

var nflTeams = map[string]teamEntry{
	"ari": {"Arizona Cardinals", "#97233F", 0.47},
	"atl": {"Atlanta Falcons", "#A71930", 0.50},
	"bal": {"Baltimore Ravens", "#241773", 0.71},
	"buf": {"Buffalo Bills", "#00338D", 0.76},
	"car": {"Carolina Panthers", "#0085CA", 0.29},
	"chi": {"Chicago Bears", "#0B162A", 0.29},
	"cin": {"Cincinnati Bengals", "#FB4F14", 0.53},
	"cle": {"Cleveland Browns", "#311D00", 0.18},
	"dal": {"Dallas Cowboys", "#003594", 0.41},
	"den": {"Denver Broncos", "#FB4F14", 0.59},
	"det": {"Detroit Lions", "#0076B6", 0.88},
	"gb":  {"Green Bay Packers", "#203731", 0.65},
	"hou": {"Houston Texans", "#03202F", 0.59},
	"ind": {"Indianapolis Colts", "#002C5F", 0.47},
	"jax": {"Jacksonville Jaguars", "#101820", 0.24},
	"kc":  {"Kansas City Chiefs", "#E31837", 0.88},
	"lac": {"Los Angeles Chargers", "#0080C6", 0.65},
	"lar": {"Los Angeles Rams", "#003594", 0.59},
	"lv":  {"Las Vegas Raiders", "#000000", 0.24},
	"mia": {"Miami Dolphins", "#008E97", 0.47},
	"min": {"Minnesota Vikings", "#4F2683", 0.82},
	"ne":  {"New England Patriots", "#002244", 0.24},
	"no":  {"New Orleans Saints", "#D3BC8D", 0.29},
	"nyg": {"New York Giants", "#0B2265", 0.18},
	"nyj": {"New York Jets", "#125740", 0.29},
	"phi": {"Philadelphia Eagles", "#004C54", 0.82},
	"pit": {"Pittsburgh Steelers", "#FFB612", 0.59},
	"sea": {"Seattle Seahawks", "#002244", 0.59},
	"sf":  {"San Francisco 49ers", "#AA0000", 0.35},
	"tb":  {"Tampa Bay Buccaneers", "#D50A0A", 0.59},
	"ten": {"Tennessee Titans", "#0C2340", 0.18},
	"wsh": {"Washington Commanders", "#5A1414", 0.71},
}

var nbaTeams = map[string]teamEntry{
	"atl": {"Atlanta Hawks", "#E03A3E", 0.49},
	"bkn": {"Brooklyn Nets", "#000000", 0.32},
	"bos": {"Boston Celtics", "#007A33", 0.74},
	"cha": {"Charlotte Hornets", "#1D1160", 0.23},
	"chi": {"Chicago Bulls", "#CE1141", 0.48},
	"cle": {"Cleveland Cavaliers", "#860038", 0.78},
	"dal": {"Dallas Mavericks", "#00538C", 0.48},
	"den": {"Denver Nuggets", "#0E2240", 0.61},
	"det": {"Detroit Pistons", "#C8102E", 0.54},
	"gsw": {"Golden State Warriors", "#1D428A", 0.59},
	"hou": {"Houston Rockets", "#CE1141", 0.63},
	"ind": {"Indiana Pacers", "#002D62", 0.61},
	"lac": {"Los Angeles Clippers", "#C8102E", 0.61},
	"lal": {"Los Angeles Lakers", "#552583", 0.61},
	"mem": {"Memphis Grizzlies", "#5D76A9", 0.59},
	"mia": {"Miami Heat", "#98002E", 0.45},
	"mil": {"Milwaukee Bucks", "#00471B", 0.59},
	"min": {"Minnesota Timberwolves", "#0C2340", 0.60},
	"no":  {"New Orleans Pelicans", "#0C2340", 0.26},
	"nyk": {"New York Knicks", "#F58426", 0.62},
	"okc": {"Oklahoma City Thunder", "#007AC1", 0.83},
	"orl": {"Orlando Magic", "#0077C0", 0.50},
	"phi": {"Philadelphia 76ers", "#006BB6", 0.29},
	"phx": {"Phoenix Suns", "#1D1160", 0.44},
	"por": {"Portland Trail Blazers", "#E03A3E", 0.44},
	"sac": {"Sacramento Kings", "#5A2D81", 0.49},
	"sas": {"San Antonio Spurs", "#C4CED4", 0.41},
	"tor": {"Toronto Raptors", "#CE1141", 0.37},
	"uta": {"Utah Jazz", "#002B5C", 0.21},
	"was": {"Washington Wizards", "#002B5C", 0.22},
}

var mlbTeams = map[string]teamEntry{
	"ari": {"Arizona Diamondbacks", "#A71930", 0.51},
	"ath": {"Athletics", "#003831", 0.43},
	"atl": {"Atlanta Braves", "#CE1141", 0.55},
	"bal": {"Baltimore Orioles", "#DF4601", 0.56},
	"bos": {"Boston Red Sox", "#BD3039", 0.50},
	"chc": {"Chicago Cubs", "#0E3386", 0.51},
	"cin": {"Cincinnati Reds", "#C6011F", 0.48},
	"cle": {"Cleveland Guardians", "#00385D", 0.57},
	"col": {"Colorado Rockies", "#333366", 0.38},
	"cws": {"Chicago White Sox", "#27251F", 0.30},
	"det": {"Detroit Tigers", "#0C2340", 0.53},
	"hou": {"Houston Astros", "#EB6E1F", 0.55},
	"kc":  {"Kansas City Royals", "#004687", 0.53},
	"laa": {"Los Angeles Angels", "#BA0021", 0.39},
	"lad": {"Los Angeles Dodgers", "#005A9C", 0.60},
	"mia": {"Miami Marlins", "#00A3E0", 0.38},
	"mil": {"Milwaukee Brewers", "#FFC52F", 0.57},
	"min": {"Minnesota Twins", "#002B5C", 0.51},
	"nym": {"New York Mets", "#002D72", 0.55},
	"nyy": {"New York Yankees", "#003087", 0.58},
	"phi": {"Philadelphia Phillies", "#E81828", 0.58},
	"pit": {"Pittsburgh Pirates", "#27251F", 0.47},
	"sd":  {"San Diego Padres", "#2F241D", 0.57},
	"sea": {"Seattle Mariners", "#0C2C56", 0.52},
	"sf":  {"San Francisco Giants", "#FD5A1E", 0.49},
	"stl": {"St. Louis Cardinals", "#C41E3A", 0.51},
	"tb":  {"Tampa Bay Rays", "#092C5C", 0.49},
	"tex": {"Texas Rangers", "#003278", 0.48},
	"tor": {"Toronto Blue Jays", "#134A8E", 0.46},
	"wsn": {"Washington Nationals", "#AB0003", 0.44},
}

func tableFor(sport Sport) map[string]teamEntry {
	switch sport {
	case SportNHL:
		return nhlTeams
	case SportNFL:
		return nflTeams
	case SportNBA:
		return nbaTeams
	case SportMLB:
		return mlbTeams
	}
	return nil
}

// TeamInfo resolves a team code to its reference entry. Unknown codes degrade
// to a generic placeholder so simulation can continue.
func TeamInfo(code string, sport Sport) Team {
	code = strings.ToLower(code)
	if entry, ok := tableFor(sport)[code]; ok {
		return Team{
			Name:         entry.name,
			Abbreviation: strings.ToUpper(code),
			Color:        entry.color,
			Logo:         fmt.Sprintf("logos/%s/%s.svg", sport, code),
			WinPct:       entry.winPct,
		}
	}
	abbr := strings.ToUpper(code)
	if abbr == "" {
		abbr = "UNK"
	}
	return Team{
		Name:         fmt.Sprintf("Team %s", abbr),
		Abbreviation: abbr,
		Color:        "#888888",
		Logo:         "logos/placeholder.svg",
		WinPct:       0.5,
	}
}

// ApproxWinPct returns the reference winning percentage for a team. Unknown
// codes default to .500.
func ApproxWinPct(code string, sport Sport) float64 {
	if entry, ok := tableFor(sport)[strings.ToLower(code)]; ok {
		return entry.winPct
	}
	return 0.5
}
