package valuation

// Tunable valuation constants. These are feel constants, kept as data so the
// formulas can be tested independently of the table contents.
var (
	// DampingFactor scales a trade's raw player/pick net into rating points.
	DampingFactor = 0.6

	// PartnerMirror is the fraction of the user's gain mirrored (inverted)
	// onto the trade partner. A lopsided trade measurably weakens the partner.
	PartnerMirror = 0.7

	// MaxRatingDelta bounds the total trade effect on any one team.
	MaxRatingDelta = 25.0
)

// Draft pick values by round. Rounds past the table fall to defaultPickValue.
var pickValueByRound = map[int]float64{
	1: 1.5,
	2: 0.8,
	3: 0.4,
}

const defaultPickValue = 0.3

// Player impact rating scale.
const (
	maxPlayerRating = 15.0
	statScale       = 12.0 // normalized stat score -> rating points
	statCap         = 1.25 // a historic season still counts as at most 125% of great
)

// Prospect path constants.
const (
	prospectGradeScale = 10.0 // grade 100 -> 10 rating points before bonuses
	tradeValueScale    = 8.0  // trade-value proxy is a weaker signal than a grade
)

// PickValue returns the rating contribution of one draft pick.
func PickValue(round int) float64 {
	if v, ok := pickValueByRound[round]; ok {
		return v
	}
	return defaultPickValue
}
