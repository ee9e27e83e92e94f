package scoring

import (
	"context"

	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
)

// SuccessScorer scores the share of scrimmage plays with positive EPA.
// The blended percentage is already on the 0..100 scale, so
// normalisation is the identity with clamping.
type SuccessScorer struct {
	src PlaySource
}

// NewSuccessScorer creates a success-rate scorer over the given play
// source.
func NewSuccessScorer(src PlaySource) *SuccessScorer {
	return &SuccessScorer{src: src}
}

// Score computes the team's success-rate component.
func (s *SuccessScorer) Score(
	ctx context.Context,
	team types.TeamID,
	weightsBySeason map[int]float64,
) (model.ComponentScore, model.SuccessBreakdown, error) {
	if err := checkCtx(ctx); err != nil {
		return model.ComponentScore{}, model.SuccessBreakdown{}, err
	}

	raw, hasData := blend(weightsBySeason, func(season int) (float64, bool) {
		var r rate
		for p := range s.src.OffensePlays(team, season) {
			if !p.Kind.Scrimmage() {
				continue
			}
			r.add(p.Success)
		}
		if r.count == 0 {
			return 0, false
		}
		return r.pct(), true
	})

	breakdown := s.breakdown(team, weightsBySeason)
	if err := checkFinite(
		breakdown.Offense, breakdown.DefensiveStopRate, breakdown.RedZone,
		breakdown.ThirdDown, breakdown.GoalLine, breakdown.TwoMinute,
	); err != nil {
		return model.ComponentScore{}, model.SuccessBreakdown{}, err
	}

	if !hasData {
		return model.ComponentScore{Score: model.NeutralScore, InsufficientData: true}, breakdown, nil
	}

	if err := checkFinite(raw); err != nil {
		return model.ComponentScore{}, model.SuccessBreakdown{}, err
	}

	return model.ComponentScore{Score: clamp(raw, 0, 100)}, breakdown, nil
}

func (s *SuccessScorer) breakdown(team types.TeamID, weightsBySeason map[int]float64) model.SuccessBreakdown {
	var offense, redZone, thirdDown, goalLine, twoMinute, stops rate

	for _, season := range sortedSeasons(weightsBySeason) {
		for p := range s.src.OffensePlays(team, season) {
			if !p.Kind.Scrimmage() {
				continue
			}
			offense.add(p.Success)
			if p.RedZone() {
				redZone.add(p.Success)
			}
			if p.ThirdDown() {
				thirdDown.add(p.Success)
			}
			if p.GoalLine() {
				goalLine.add(p.Success)
			}
			if p.TwoMinute() {
				twoMinute.add(p.Success)
			}
		}
		// A defensive stop is a defended scrimmage play finishing with
		// negative EPA for the offense.
		for p := range s.src.DefensePlays(team, season) {
			if !p.Kind.Scrimmage() || !p.HasEPA {
				continue
			}
			stops.add(p.EPA < 0)
		}
	}

	return model.SuccessBreakdown{
		Offense:           offense.pct(),
		DefensiveStopRate: stops.pct(),
		RedZone:           redZone.pct(),
		ThirdDown:         thirdDown.pct(),
		GoalLine:          goalLine.pct(),
		TwoMinute:         twoMinute.pct(),
	}
}
