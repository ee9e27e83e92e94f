package matchup

import (
	"math"

	"github.com/okian/rivers/internal/domain/types"
)

// Fixed design parameters of the combiner. The sigmoid slope controls
// how fast a score gap turns into confidence; home field is worth 2.5
// raw points.
const (
	sigmoidSlope       = 0.12
	HomeFieldAdvantage = 2.5
)

// Side is one team's aggregated input to the combiner.
type Side struct {
	Team            types.TeamID
	RawScore        float64
	InjuryDeduction float64 // win-probability deduction in [0, 0.40]
}

// Outcome is the combined result for a matchup.
type Outcome struct {
	HomeScore  float64
	AwayScore  float64
	Winner     types.TeamID
	Confidence float64
	HomeWinPct float64
}

// Combine applies home-field advantage and injury deductions, then
// maps the score gap through the logistic curve. Ties go to the home
// side. Final scores are bounded to 0..100; the probability uses the
// unbounded gap.
func Combine(home, away Side) Outcome {
	homeScore := (home.RawScore + HomeFieldAdvantage) * (1 - home.InjuryDeduction)
	awayScore := away.RawScore * (1 - away.InjuryDeduction)

	diff := homeScore - awayScore
	pHome := 1 / (1 + math.Exp(-sigmoidSlope*diff))

	winner := home.Team
	if pHome < 0.5 {
		winner = away.Team
	}

	return Outcome{
		HomeScore:  math.Max(0, math.Min(100, homeScore)),
		AwayScore:  math.Max(0, math.Min(100, awayScore)),
		Winner:     winner,
		Confidence: math.Max(pHome, 1-pHome),
		HomeWinPct: pHome,
	}
}
