// Package app wires the scoring core into the prediction service the
// adapters depend on: snapshot installation, preflight validation, and
// the fixed C11 -> C2 -> C5 -> C6 -> C7 -> C8 -> C9 -> C10 pipeline.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/okian/rivers/internal/adapters/repository"
	"github.com/okian/rivers/internal/domain/injury"
	"github.com/okian/rivers/internal/domain/matchup"
	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/scoring"
	"github.com/okian/rivers/internal/domain/types"
	"github.com/okian/rivers/internal/domain/weather"
	"github.com/okian/rivers/internal/domain/weights"
	"github.com/okian/rivers/pkg/logger"
	"github.com/okian/rivers/pkg/metrics"
)

// Request identifies one matchup to predict.
type Request struct {
	Home   types.TeamID
	Away   types.TeamID
	Week   int
	Season int
	// Weather is optional; nil scores neutrally.
	Weather *model.WeatherContext
}

// Engine is the prediction service. It scores matchups against an
// immutable snapshot that is swapped atomically between batches; the
// scoring path itself takes no locks.
type Engine struct {
	snap atomic.Pointer[repository.Snapshot]

	logger logger.Logger
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New constructs an Engine. No snapshot is installed yet; predictions
// fail with ErrNotReady until InstallSnapshot is called.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logger.Get().Named("engine")
	}
	return e
}

// InstallSnapshot atomically replaces the active snapshot. In-flight
// predictions keep the snapshot they started with.
func (e *Engine) InstallSnapshot(ctx context.Context, snap *repository.Snapshot) {
	e.snap.Store(snap)
	metrics.RecordSnapshotInstall(snap.Plays.Len(), len(snap.Plays.Seasons()), len(snap.Plays.Teams()))
	e.logger.Info(ctx, "snapshot installed",
		logger.Int("plays", snap.Plays.Len()),
		logger.Int("seasons", len(snap.Plays.Seasons())),
		logger.Int("teams", len(snap.Plays.Teams())),
		logger.Int("injuries", snap.Injuries.Len()),
	)
}

// Snapshot returns the active snapshot, or nil before the first
// install.
func (e *Engine) Snapshot() *repository.Snapshot { return e.snap.Load() }

// Ready reports whether a usable snapshot is installed.
func (e *Engine) Ready(_ context.Context) bool {
	snap := e.snap.Load()
	return snap != nil && !snap.Corrupted()
}

// Teams lists the teams in the active snapshot.
func (e *Engine) Teams(ctx context.Context) []types.TeamID {
	snap := e.snap.Load()
	if snap == nil {
		return nil
	}
	return snap.Plays.Teams()
}

// Predict scores one matchup. The same snapshot and inputs always
// produce bit-identical output.
func (e *Engine) Predict(ctx context.Context, req Request) (model.Prediction, error) {
	start := time.Now()

	snap := e.snap.Load()
	if snap == nil {
		metrics.RecordPredictionError("not_ready")
		return model.Prediction{}, fmt.Errorf("%w: no snapshot installed", ErrNotReady)
	}
	if snap.Corrupted() {
		metrics.RecordPredictionError("not_ready")
		return model.Prediction{}, fmt.Errorf("%w: snapshot invalidated by earlier corruption", ErrNotReady)
	}

	if err := validate(snap, req); err != nil {
		metrics.RecordPredictionError(errCode(err))
		return model.Prediction{}, err
	}

	wts, err := weights.ForWeek(req.Week, req.Season)
	if err != nil {
		// validate already bounds the week; this is unreachable with a
		// passing preflight.
		metrics.RecordPredictionError("not_ready")
		return model.Prediction{}, fmt.Errorf("%w: %v", ErrNotReady, err)
	}

	homeSide, homeDiag, err := e.scoreTeam(ctx, snap, req.Home, req.Away, wts)
	if err != nil {
		return model.Prediction{}, e.scoringError(ctx, snap, err)
	}
	awaySide, awayDiag, err := e.scoreTeam(ctx, snap, req.Away, req.Home, wts)
	if err != nil {
		return model.Prediction{}, e.scoringError(ctx, snap, err)
	}

	impact := injury.NewEngine(snap.Grades)
	homeSide.InjuryDeduction = e.teamInjuryDeduction(ctx, impact, snap, req.Home)
	awaySide.InjuryDeduction = e.teamInjuryDeduction(ctx, impact, snap, req.Away)

	homeSide.WeatherScore = weather.Score(req.Weather)
	awaySide.WeatherScore = homeSide.WeatherScore

	homeSide.RawScore = scoring.Aggregate(homeSide)
	awaySide.RawScore = scoring.Aggregate(awaySide)

	outcome := matchup.Combine(
		matchup.Side{Team: req.Home, RawScore: homeSide.RawScore, InjuryDeduction: homeSide.InjuryDeduction},
		matchup.Side{Team: req.Away, RawScore: awaySide.RawScore, InjuryDeduction: awaySide.InjuryDeduction},
	)

	p := model.Prediction{
		Home:            req.Home,
		Away:            req.Away,
		Week:            req.Week,
		Season:          req.Season,
		HomeScore:       outcome.HomeScore,
		AwayScore:       outcome.AwayScore,
		Winner:          outcome.Winner,
		Confidence:      outcome.Confidence,
		HomeComponents:  homeSide,
		AwayComponents:  awaySide,
		HomeDiagnostics: homeDiag,
		AwayDiagnostics: awayDiag,
	}

	metrics.RecordPrediction(p.Confidence)
	metrics.RecordPredictionLatency(float64(time.Since(start).Milliseconds()))
	e.logger.Debug(ctx, "prediction served",
		logger.String("home", string(req.Home)),
		logger.String("away", string(req.Away)),
		logger.String("winner", string(p.Winner)),
		logger.Float64("confidence", p.Confidence),
	)

	return p, nil
}

// scoreTeam runs the four component scorers for one side and fills the
// matchup delta against the opponent. Cancellation is checked at every
// scorer boundary.
func (e *Engine) scoreTeam(
	ctx context.Context,
	snap *repository.Snapshot,
	team, opponent types.TeamID,
	wts map[int]float64,
) (model.ComponentSet, model.Diagnostics, error) {
	var cs model.ComponentSet
	var diag model.Diagnostics
	var err error

	gradeAverages := snap.Grades.PositionAverages(team)

	cs.EPA, diag.EPA, err = scoring.NewEPAScorer(snap.Plays).Score(ctx, team, wts, gradeAverages)
	if err != nil {
		return cs, diag, err
	}
	cs.Success, diag.Success, err = scoring.NewSuccessScorer(snap.Plays).Score(ctx, team, wts)
	if err != nil {
		return cs, diag, err
	}
	cs.Yards, diag.Yards, err = scoring.NewYardsScorer(snap.Plays).Score(ctx, team, wts)
	if err != nil {
		return cs, diag, err
	}
	cs.Turnover, diag.Turnover, err = scoring.NewTurnoverScorer(snap.Plays).Score(ctx, team, wts)
	if err != nil {
		return cs, diag, err
	}

	offGrades, _ := snap.Grades.TeamGrades(team)
	defGrades, _ := snap.Grades.TeamGrades(opponent)
	cs.MatchupDelta = matchup.Delta(offGrades, defGrades)

	return cs, diag, nil
}

// teamInjuryDeduction computes a team's deduction and logs entries the
// engine skipped for unknown statuses.
func (e *Engine) teamInjuryDeduction(
	ctx context.Context,
	impact *injury.Engine,
	snap *repository.Snapshot,
	team types.TeamID,
) float64 {
	total, entries := impact.TeamImpact(team, snap.Injuries.TeamInjuries(team))
	for _, entry := range entries {
		if entry.Skipped == "unknown status" {
			e.logger.Warn(ctx, "skipping injury entry with unknown status",
				logger.String("team", string(team)),
				logger.String("player", entry.Player),
			)
		}
	}
	return total
}

// scoringError maps scorer failures onto the boundary error kinds and
// invalidates the snapshot on corruption.
func (e *Engine) scoringError(ctx context.Context, snap *repository.Snapshot, err error) error {
	switch {
	case errors.Is(err, scoring.ErrNonFinite):
		snap.MarkCorrupt()
		metrics.RecordPredictionError("data_corruption")
		e.logger.Error(ctx, "snapshot invalidated by non-finite arithmetic", logger.Error(err))
		return fmt.Errorf("%w: %v", ErrDataCorruption, err)
	case errors.Is(err, scoring.ErrCancelled):
		metrics.RecordPredictionError("cancelled")
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	default:
		metrics.RecordPredictionError("internal")
		return err
	}
}

// errCode labels boundary errors for metrics.
func errCode(err error) string {
	switch {
	case errors.Is(err, ErrUnknownTeam):
		return "unknown_team"
	case errors.Is(err, ErrNotReady):
		return "not_ready"
	case errors.Is(err, ErrDataCorruption):
		return "data_corruption"
	case errors.Is(err, ErrCancelled):
		return "cancelled"
	default:
		return "internal"
	}
}
