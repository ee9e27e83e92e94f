package model

import "github.com/okian/rivers/internal/domain/types"

// WeatherContext describes game-time conditions. A nil context means
// conditions are unknown and scores neutrally.
type WeatherContext struct {
	TemperatureF  float64
	WindMPH       float64
	Precipitation types.Precipitation
	Venue         types.Venue
}
