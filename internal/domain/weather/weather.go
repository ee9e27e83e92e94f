// Package weather maps game-time conditions to a small score
// contribution. Harsh conditions depress the score; a dome or unknown
// conditions score neutrally.
package weather

import (
	"math"

	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
)

// Impact thresholds. Each condition past a threshold adds to an
// integer impact count that pulls the score below neutral.
const (
	freezingF = 32.0
	coldF     = 45.0
	hotF      = 85.0

	windHighMPH     = 15.0
	windModerateMPH = 10.0
	windLightMPH    = 5.0

	pointsPerImpact = 2.0
)

// Score maps a weather context to a 0..100 contribution. A nil
// context and a dome venue both return the neutral 50.
func Score(w *model.WeatherContext) float64 {
	if w == nil || w.Venue == types.VenueDome {
		return model.NeutralScore
	}

	impact := 0
	switch {
	case w.TemperatureF < freezingF:
		impact += 3
	case w.TemperatureF < coldF:
		impact += 2
	case w.TemperatureF > hotF:
		impact++
	}
	switch {
	case w.WindMPH > windHighMPH:
		impact += 3
	case w.WindMPH > windModerateMPH:
		impact += 2
	case w.WindMPH > windLightMPH:
		impact++
	}
	switch w.Precipitation {
	case types.PrecipRain:
		impact += 2
	case types.PrecipSnow:
		impact += 3
	}

	return math.Max(0, math.Min(100, model.NeutralScore-pointsPerImpact*float64(impact)))
}
