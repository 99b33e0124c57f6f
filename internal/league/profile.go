package league

// Power ratings are bounded to keep the win-probability logistic sane.
const (
	RatingFloor   = 25.0
	RatingCeiling = 95.0
	ratingMid     = 60.0
)

// AgeCurve discounts player impact outside the peak band. Bands differ
// slightly by sport family (contact sports decline earlier).
type AgeCurve struct {
	PeakStart      int
	PeakEnd        int
	EarlyFactor    float64 // before PeakStart
	LateFactor     float64 // PeakEnd+1 through TwilightAge-1
	TwilightAge    int
	TwilightFactor float64 // TwilightAge and beyond
}

// Factor returns the age multiplier, peak years being 1.0.
func (a AgeCurve) Factor(age int) float64 {
	switch {
	case age <= 0:
		return 1.0 // missing age, neutral
	case age < a.PeakStart:
		return a.EarlyFactor
	case age <= a.PeakEnd:
		return 1.0
	case age < a.TwilightAge:
		return a.LateFactor
	default:
		return a.TwilightFactor
	}
}

// StatNorm normalizes one per-season stat against a "great season" value.
type StatNorm struct {
	Denom  float64
	Weight float64
}

// Profile carries every sport-specific constant a simulation run needs,
// selected once per run instead of re-dispatching on sport at call sites.
type Profile struct {
	Sport  Sport
	Config *Config

	// Scoreline distribution
	AvgScore       float64
	ScoreStdDev    float64
	MinLosingScore int
	MinMargin      int
	BlowoutMargin  int     // margin that reads as a rout in this sport
	GapScoreScale  float64 // score points per point of rating gap

	// Game model
	HomeAdvantage float64 // rating points
	OvertimeProb  float64
	TieProb       float64 // chance an overtime game stays tied (football)
	HasOTLoss     bool    // hockey records overtime losses separately
	GridironScore bool    // nudge scores toward field goal / touchdown sums

	// Ratings
	RatingSpread float64 // win pct deviation -> rating points

	// Valuation
	PositionWeights  map[string]float64
	AgeCurve         AgeCurve
	ProspectDiscount float64 // longer-development sports discount prospects more
	GreatSeason      map[string]StatNorm
}

var profiles = map[Sport]*Profile{
	SportNHL: {
		Sport:          SportNHL,
		AvgScore:       3.0,
		ScoreStdDev:    1.6,
		MinLosingScore: 0,
		MinMargin:      1,
		BlowoutMargin:  4,
		GapScoreScale:  0.035,
		HomeAdvantage:  3.0,
		OvertimeProb:   0.23,
		HasOTLoss:      true,
		RatingSpread:   70,
		PositionWeights: map[string]float64{
			"C": 1.2, "LW": 1.0, "RW": 1.0, "W": 1.0, "D": 1.05, "G": 1.15,
		},
		AgeCurve:         AgeCurve{PeakStart: 22, PeakEnd: 29, EarlyFactor: 0.9, LateFactor: 0.85, TwilightAge: 35, TwilightFactor: 0.65},
		ProspectDiscount: 0.85,
		GreatSeason: map[string]StatNorm{
			"goals":      {Denom: 50, Weight: 1.0},
			"assists":    {Denom: 60, Weight: 0.9},
			"points":     {Denom: 100, Weight: 1.2},
			"plus_minus": {Denom: 30, Weight: 0.4},
			"wins":       {Denom: 40, Weight: 1.2},
			"save_pct":   {Denom: 0.925, Weight: 1.0},
		},
	},
	SportNFL: {
		Sport:          SportNFL,
		AvgScore:       23,
		ScoreStdDev:    9,
		MinLosingScore: 0,
		MinMargin:      3,
		BlowoutMargin:  21,
		GapScoreScale:  0.32,
		HomeAdvantage:  2.5,
		OvertimeProb:   0.10,
		TieProb:        0.08,
		GridironScore:  true,
		RatingSpread:   80,
		PositionWeights: map[string]float64{
			"QB": 1.5, "RB": 1.05, "WR": 1.15, "TE": 0.95,
			"OT": 0.9, "OL": 0.85, "OG": 0.8, "C": 0.8,
			"EDGE": 1.15, "DE": 1.1, "DT": 0.95, "LB": 0.95,
			"CB": 1.05, "S": 0.9, "K": 0.6, "P": 0.5,
		},
		AgeCurve:         AgeCurve{PeakStart: 24, PeakEnd: 29, EarlyFactor: 0.9, LateFactor: 0.8, TwilightAge: 33, TwilightFactor: 0.55},
		ProspectDiscount: 0.9,
		GreatSeason: map[string]StatNorm{
			"pass_yards":    {Denom: 4500, Weight: 1.2},
			"pass_tds":      {Denom: 40, Weight: 1.2},
			"rush_yards":    {Denom: 1500, Weight: 1.0},
			"rush_tds":      {Denom: 15, Weight: 0.8},
			"rec_yards":     {Denom: 1400, Weight: 1.0},
			"receptions":    {Denom: 100, Weight: 0.7},
			"rec_tds":       {Denom: 12, Weight: 0.8},
			"sacks":         {Denom: 15, Weight: 1.0},
			"interceptions": {Denom: 6, Weight: 0.8},
			"tackles":       {Denom: 140, Weight: 0.6},
		},
	},
	SportNBA: {
		Sport:          SportNBA,
		AvgScore:       112,
		ScoreStdDev:    11,
		MinLosingScore: 85,
		MinMargin:      1,
		BlowoutMargin:  20,
		GapScoreScale:  0.5,
		HomeAdvantage:  3.5,
		OvertimeProb:   0.07,
		RatingSpread:   90,
		PositionWeights: map[string]float64{
			"PG": 1.1, "SG": 1.0, "SF": 1.05, "PF": 1.0, "C": 1.1, "G": 1.05, "F": 1.0,
		},
		AgeCurve:         AgeCurve{PeakStart: 24, PeakEnd: 30, EarlyFactor: 0.9, LateFactor: 0.85, TwilightAge: 35, TwilightFactor: 0.65},
		ProspectDiscount: 0.8,
		GreatSeason: map[string]StatNorm{
			"points_per_game":   {Denom: 30, Weight: 1.2},
			"rebounds_per_game": {Denom: 12, Weight: 0.9},
			"assists_per_game":  {Denom: 10, Weight: 1.0},
			"steals_per_game":   {Denom: 2, Weight: 0.5},
			"blocks_per_game":   {Denom: 2.5, Weight: 0.5},
		},
	},
	SportMLB: {
		Sport:          SportMLB,
		AvgScore:       4.5,
		ScoreStdDev:    2.8,
		MinLosingScore: 0,
		MinMargin:      1,
		BlowoutMargin:  6,
		GapScoreScale:  0.05,
		HomeAdvantage:  2.0,
		OvertimeProb:   0.09, // extra innings
		RatingSpread:   60,
		PositionWeights: map[string]float64{
			"SP": 1.3, "RP": 0.8, "P": 1.1, "C": 1.05,
			"1B": 0.95, "2B": 1.0, "3B": 1.0, "SS": 1.1,
			"LF": 0.95, "CF": 1.05, "RF": 0.95, "OF": 1.0, "DH": 0.9,
		},
		AgeCurve:         AgeCurve{PeakStart: 25, PeakEnd: 31, EarlyFactor: 0.88, LateFactor: 0.85, TwilightAge: 36, TwilightFactor: 0.7},
		ProspectDiscount: 0.75, // longest development path of the four
		GreatSeason: map[string]StatNorm{
			"home_runs":    {Denom: 45, Weight: 1.0},
			"rbi":          {Denom: 110, Weight: 0.8},
			"batting_avg":  {Denom: 0.310, Weight: 0.9},
			"stolen_bases": {Denom: 40, Weight: 0.5},
			"wins":         {Denom: 18, Weight: 1.0},
			"strikeouts":   {Denom: 250, Weight: 1.0},
		},
	},
}

// GetProfile returns the sport profile, or nil for an unknown sport.
func GetProfile(sport Sport) *Profile {
	p := profiles[sport]
	if p != nil && p.Config == nil {
		p.Config = GetConfig(sport)
	}
	return p
}

// WinPctToPowerRating maps a winning percentage onto the bounded power
// rating scale. The spread constant keeps per-sport rating gaps realistic.
func WinPctToPowerRating(pct float64, sport Sport) float64 {
	spread := 75.0
	if p := profiles[sport]; p != nil {
		spread = p.RatingSpread
	}
	return ClampRating(ratingMid + (pct-0.5)*spread)
}

// ClampRating bounds a rating to [RatingFloor, RatingCeiling].
func ClampRating(r float64) float64 {
	if r < RatingFloor {
		return RatingFloor
	}
	if r > RatingCeiling {
		return RatingCeiling
	}
	return r
}

// PositionWeight returns the positional multiplier; unknown or missing
// positions are neutral so a malformed record never erases a trade's impact.
func (p *Profile) PositionWeight(position string) float64 {
	if w, ok := p.PositionWeights[position]; ok {
		return w
	}
	return 1.0
}
