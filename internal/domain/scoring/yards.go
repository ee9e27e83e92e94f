package scoring

import (
	"context"

	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
)

// Yardage normalisation window: 3.0 yards per play maps to 0, 7.0 to
// 100. Values outside saturate. Explosive plays gain 20 or more.
const (
	yppFloor       = 3.0
	yppRange       = 4.0
	explosiveYards = 20
)

// YardsScorer scores yards gained per scrimmage play.
type YardsScorer struct {
	src PlaySource
}

// NewYardsScorer creates a yardage scorer over the given play source.
func NewYardsScorer(src PlaySource) *YardsScorer {
	return &YardsScorer{src: src}
}

// Score computes the team's yardage component.
func (s *YardsScorer) Score(
	ctx context.Context,
	team types.TeamID,
	weightsBySeason map[int]float64,
) (model.ComponentScore, model.YardsBreakdown, error) {
	if err := checkCtx(ctx); err != nil {
		return model.ComponentScore{}, model.YardsBreakdown{}, err
	}

	ypp, hasData := blend(weightsBySeason, func(season int) (float64, bool) {
		var m meanRatio
		for p := range s.src.OffensePlays(team, season) {
			if !p.Kind.Scrimmage() {
				continue
			}
			m.add(float64(p.YardsGained))
		}
		if m.count == 0 {
			return 0, false
		}
		return m.mean(), true
	})

	breakdown := s.breakdown(team, weightsBySeason)
	if err := checkFinite(
		breakdown.PerPlay, breakdown.AllowedPerPlay, breakdown.PerPassAttempt,
		breakdown.PerCarry, breakdown.AfterCatch, breakdown.ExplosiveRate,
	); err != nil {
		return model.ComponentScore{}, model.YardsBreakdown{}, err
	}

	if !hasData {
		return model.ComponentScore{Score: model.NeutralScore, InsufficientData: true}, breakdown, nil
	}

	if err := checkFinite(ypp); err != nil {
		return model.ComponentScore{}, model.YardsBreakdown{}, err
	}

	score := clamp((ypp-yppFloor)/yppRange*100, 0, 100)
	return model.ComponentScore{Score: score}, breakdown, nil
}

func (s *YardsScorer) breakdown(team types.TeamID, weightsBySeason map[int]float64) model.YardsBreakdown {
	var perPlay, allowed, perPass, perCarry, afterCatch meanRatio
	var explosive rate

	for _, season := range sortedSeasons(weightsBySeason) {
		for p := range s.src.OffensePlays(team, season) {
			if !p.Kind.Scrimmage() {
				continue
			}
			yards := float64(p.YardsGained)
			perPlay.add(yards)
			explosive.add(p.YardsGained >= explosiveYards)
			switch p.Kind {
			case types.PlayPass:
				perPass.add(yards)
			case types.PlayRun:
				perCarry.add(yards)
			}
			if p.HasYardsAfterCatch {
				afterCatch.add(p.YardsAfterCatch)
			}
		}
		for p := range s.src.DefensePlays(team, season) {
			if !p.Kind.Scrimmage() {
				continue
			}
			allowed.add(float64(p.YardsGained))
		}
	}

	return model.YardsBreakdown{
		PerPlay:        perPlay.mean(),
		AllowedPerPlay: allowed.mean(),
		PerPassAttempt: perPass.mean(),
		PerCarry:       perCarry.mean(),
		AfterCatch:     afterCatch.mean(),
		ExplosiveRate:  explosive.pct(),
	}
}
