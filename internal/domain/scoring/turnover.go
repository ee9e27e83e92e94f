package scoring

import (
	"context"

	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
)

// Turnover normalisation window: a 1.5% turnover rate per scrimmage
// play maps to 100, 4.0% maps to 0. Lower is better, so the scale is
// inverted.
const (
	turnoverRateBest  = 1.5
	turnoverRateRange = 2.5
)

// TurnoverScorer scores ball security per scrimmage play.
type TurnoverScorer struct {
	src PlaySource
}

// NewTurnoverScorer creates a turnover scorer over the given play
// source.
func NewTurnoverScorer(src PlaySource) *TurnoverScorer {
	return &TurnoverScorer{src: src}
}

// Score computes the team's turnover component.
func (s *TurnoverScorer) Score(
	ctx context.Context,
	team types.TeamID,
	weightsBySeason map[int]float64,
) (model.ComponentScore, model.TurnoverBreakdown, error) {
	if err := checkCtx(ctx); err != nil {
		return model.ComponentScore{}, model.TurnoverBreakdown{}, err
	}

	turnoverRate, hasData := blend(weightsBySeason, func(season int) (float64, bool) {
		var r rate
		for p := range s.src.OffensePlays(team, season) {
			if !p.Kind.Scrimmage() {
				continue
			}
			r.add(p.Turnover())
		}
		if r.count == 0 {
			return 0, false
		}
		return r.pct(), true
	})

	breakdown := s.breakdown(team, weightsBySeason)
	if err := checkFinite(
		breakdown.InterceptionRate, breakdown.FumbleLostRate, breakdown.TakeawayRate,
		breakdown.RedZone, breakdown.ThirdDown, breakdown.TwoMinute,
	); err != nil {
		return model.ComponentScore{}, model.TurnoverBreakdown{}, err
	}

	if !hasData {
		return model.ComponentScore{Score: model.NeutralScore, InsufficientData: true}, breakdown, nil
	}

	if err := checkFinite(turnoverRate); err != nil {
		return model.ComponentScore{}, model.TurnoverBreakdown{}, err
	}

	score := clamp(100-(turnoverRate-turnoverRateBest)/turnoverRateRange*100, 0, 100)
	return model.ComponentScore{Score: score}, breakdown, nil
}

func (s *TurnoverScorer) breakdown(team types.TeamID, weightsBySeason map[int]float64) model.TurnoverBreakdown {
	var interceptions, fumbles, takeaways, redZone, thirdDown, twoMinute rate

	for _, season := range sortedSeasons(weightsBySeason) {
		for p := range s.src.OffensePlays(team, season) {
			if !p.Kind.Scrimmage() {
				continue
			}
			if p.Kind == types.PlayPass {
				interceptions.add(p.Interception)
			}
			// Touches are run and pass attempts; kneels and spikes
			// cannot lose the ball.
			if p.Kind == types.PlayPass || p.Kind == types.PlayRun {
				fumbles.add(p.FumbleLost)
			}
			if p.RedZone() {
				redZone.add(p.Turnover())
			}
			if p.ThirdDown() {
				thirdDown.add(p.Turnover())
			}
			if p.TwoMinute() {
				twoMinute.add(p.Turnover())
			}
		}
		for p := range s.src.DefensePlays(team, season) {
			if !p.Kind.Scrimmage() {
				continue
			}
			takeaways.add(p.Turnover())
		}
	}

	return model.TurnoverBreakdown{
		InterceptionRate: interceptions.pct(),
		FumbleLostRate:   fumbles.pct(),
		TakeawayRate:     takeaways.pct(),
		RedZone:          redZone.pct(),
		ThirdDown:        thirdDown.pct(),
		TwoMinute:        twoMinute.pct(),
	}
}
