package scoring

import "github.com/okian/rivers/internal/domain/model"

// Aggregation coefficients. They sum to 1.03: the extra 0.03 is the
// matchup and weather bias, kept as-is rather than renormalised.
const (
	weightEPA      = 0.26
	weightSuccess  = 0.26
	weightYards    = 0.21
	weightTurnover = 0.21
	weightMatchup  = 0.08
	weightWeather  = 0.01

	// deltaCenter recentres the signed matchup delta onto the 0..100
	// scale the other components use.
	deltaCenter = 50.0
)

// Aggregate folds the four component scores, the matchup delta, and
// the weather score into the raw team score.
func Aggregate(c model.ComponentSet) float64 {
	return weightEPA*c.EPA.Score +
		weightSuccess*c.Success.Score +
		weightYards*c.Yards.Score +
		weightTurnover*c.Turnover.Score +
		weightMatchup*(deltaCenter+c.MatchupDelta) +
		weightWeather*c.WeatherScore
}
