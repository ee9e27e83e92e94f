package scoring

import (
	"context"

	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
)

// Grade-adjustment parameters for the EPA scorer. The multiplier
// ladder and position weights follow the grading provider's quality
// bands; the cap keeps roster quality from overwhelming observed play.
const (
	gradeAdjustmentScale  = 0.1
	gradeAdjustmentCap    = 0.05
	unknownPositionWeight = 0.5
)

// positionWeights scales the grade adjustment by how much a position
// drives expected points.
var positionWeights = map[types.Position]float64{
	types.QB: 1.0,
	types.RB: 0.8,
	types.WR: 0.7,
	types.TE: 0.6,
	types.OT: 0.5,
	types.OG: 0.4,
	types.C:  0.4,
	types.DE: 0.6,
	types.DT: 0.5,
	types.LB: 0.5,
	types.CB: 0.6,
	types.S:  0.5,
	types.K:  0.2,
	types.P:  0.1,
	types.LS: 0.1,
}

// gradeMultiplier maps an average position grade to an EPA multiplier.
func gradeMultiplier(grade float64) float64 {
	switch {
	case grade >= 85:
		return 1.20
	case grade >= 75:
		return 1.10
	case grade >= 65:
		return 1.00
	case grade >= 55:
		return 0.90
	default:
		return 0.80
	}
}

// EPAScorer normalises blended mean expected-points-added into a
// 0..100 score, optionally shaded by roster grades.
type EPAScorer struct {
	src PlaySource
}

// NewEPAScorer creates an EPA scorer over the given play source.
func NewEPAScorer(src PlaySource) *EPAScorer {
	return &EPAScorer{src: src}
}

// Score computes the team's EPA component. gradeAverages is the mean
// grade per graded position group; nil disables the grade adjustment.
func (s *EPAScorer) Score(
	ctx context.Context,
	team types.TeamID,
	weightsBySeason map[int]float64,
	gradeAverages map[types.Position]float64,
) (model.ComponentScore, model.EPABreakdown, error) {
	if err := checkCtx(ctx); err != nil {
		return model.ComponentScore{}, model.EPABreakdown{}, err
	}

	epaBlend, hasData := blend(weightsBySeason, func(season int) (float64, bool) {
		var m meanRatio
		for p := range s.src.OffensePlays(team, season) {
			if !p.Kind.Scrimmage() || !p.HasEPA {
				continue
			}
			m.add(p.EPA)
		}
		if m.count == 0 {
			return 0, false
		}
		return m.mean(), true
	})

	breakdown := s.breakdown(team, weightsBySeason)
	if err := checkFinite(
		breakdown.RedZone, breakdown.ThirdDown, breakdown.TwoMinute,
		breakdown.GoalLine, breakdown.Normal,
	); err != nil {
		return model.ComponentScore{}, model.EPABreakdown{}, err
	}

	if !hasData {
		return model.ComponentScore{Score: model.NeutralScore, InsufficientData: true}, breakdown, nil
	}

	epaBlend += gradeAdjustment(gradeAverages)

	if err := checkFinite(epaBlend); err != nil {
		return model.ComponentScore{}, model.EPABreakdown{}, err
	}

	score := clamp(50+100*epaBlend, 0, 100)
	return model.ComponentScore{Score: score}, breakdown, nil
}

// gradeAdjustment averages the per-position grade shading and caps it
// so it can nudge, not dominate, the blended EPA.
func gradeAdjustment(gradeAverages map[types.Position]float64) float64 {
	if len(gradeAverages) == 0 {
		return 0
	}
	total := 0.0
	for pos := types.Position(0); int(pos) < types.NumPositions; pos++ {
		avg, ok := gradeAverages[pos]
		if !ok {
			continue
		}
		weight, known := positionWeights[pos]
		if !known {
			weight = unknownPositionWeight
		}
		total += (gradeMultiplier(avg) - 1) * weight * gradeAdjustmentScale
	}
	adj := total / float64(len(gradeAverages))
	return clamp(adj, -gradeAdjustmentCap, gradeAdjustmentCap)
}

// breakdown pools the blend window's scrimmage plays into situational
// mean-EPA subsets.
func (s *EPAScorer) breakdown(team types.TeamID, weightsBySeason map[int]float64) model.EPABreakdown {
	var redZone, thirdDown, twoMinute, goalLine, normal meanRatio

	for _, season := range sortedSeasons(weightsBySeason) {
		for p := range s.src.OffensePlays(team, season) {
			if !p.Kind.Scrimmage() || !p.HasEPA {
				continue
			}
			situational := false
			if p.RedZone() {
				redZone.add(p.EPA)
				situational = true
			}
			if p.ThirdDown() {
				thirdDown.add(p.EPA)
				situational = true
			}
			if p.TwoMinute() {
				twoMinute.add(p.EPA)
				situational = true
			}
			if p.GoalLine() {
				goalLine.add(p.EPA)
				situational = true
			}
			if !situational {
				normal.add(p.EPA)
			}
		}
	}

	return model.EPABreakdown{
		RedZone:   redZone.mean(),
		ThirdDown: thirdDown.mean(),
		TwoMinute: twoMinute.mean(),
		GoalLine:  goalLine.mean(),
		Normal:    normal.mean(),
	}
}
