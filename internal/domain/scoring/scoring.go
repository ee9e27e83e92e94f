// Package scoring reduces play-by-play rows into the four normalised
// component scores (EPA, success rate, yardage, turnover) and
// aggregates them into a raw team score.
//
// Every scorer follows the same three-step shape: a by-season raw
// statistic, a progressive blend across seasons, and a normalisation
// to 0..100. Scorers stream over the play store; they never
// materialise per-play intermediate slices.
package scoring

import (
	"context"
	"iter"
	"math"
	"sort"

	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
)

// PlaySource is the slice of the play store the scorers need.
// Iterators must be finite and restartable.
type PlaySource interface {
	OffensePlays(team types.TeamID, season int) iter.Seq[model.PlayRow]
	DefensePlays(team types.TeamID, season int) iter.Seq[model.PlayRow]
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// checkFinite returns ErrNonFinite if any value is NaN or infinite.
// Non-finite intermediates mean the snapshot is corrupt; they are
// never smoothed over.
func checkFinite(vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFinite
		}
	}
	return nil
}

// sortedSeasons lists the weighted seasons in ascending order. Float
// accumulation order is part of the bit-identical output contract, so
// map iteration order must never leak into a sum.
func sortedSeasons(weightsBySeason map[int]float64) []int {
	seasons := make([]int, 0, len(weightsBySeason))
	for season, w := range weightsBySeason {
		if w > 0 {
			seasons = append(seasons, season)
		}
	}
	sort.Ints(seasons)
	return seasons
}

// blend combines per-season statistics using the progressive weights,
// renormalising over the seasons that actually produced a value. The
// second result is false when no season had data.
func blend(weightsBySeason map[int]float64, stat func(season int) (float64, bool)) (float64, bool) {
	var sum, weightSum float64
	for _, season := range sortedSeasons(weightsBySeason) {
		v, ok := stat(season)
		if !ok {
			continue
		}
		w := weightsBySeason[season]
		sum += w * v
		weightSum += w
	}
	if weightSum == 0 {
		return 0, false
	}
	return sum / weightSum, true
}

// meanRatio is a streaming numerator/denominator accumulator shared by
// the breakdown computations. A zero denominator yields 0, never an
// error: empty subsets degrade diagnostics, not scores.
type meanRatio struct {
	sum   float64
	count int
}

func (m *meanRatio) add(v float64) {
	m.sum += v
	m.count++
}

func (m *meanRatio) mean() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

// rate returns 100 * hits / count as a percentage.
type rate struct {
	hits  int
	count int
}

func (r *rate) add(hit bool) {
	if hit {
		r.hits++
	}
	r.count++
}

func (r *rate) pct() float64 {
	if r.count == 0 {
		return 0
	}
	return 100 * float64(r.hits) / float64(r.count)
}

// checkCtx converts context cancellation into ErrCancelled so the app
// layer can surface it as the Cancelled error code.
func checkCtx(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ErrCancelled
	default:
		return nil
	}
}
