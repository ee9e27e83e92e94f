package app

import (
	"fmt"
	"math"

	"github.com/okian/rivers/internal/adapters/repository"
	"github.com/okian/rivers/internal/domain/types"
	"github.com/okian/rivers/internal/domain/weights"
	"github.com/okian/rivers/pkg/metrics"
)

// Preflight thresholds.
const (
	minPlaysPerTeam  = 100
	weightsTolerance = 1e-9
)

// validate runs the preflight checks. It rejects the request before
// any scoring work: every store must be populated and both teams
// resolvable.
func validate(snap *repository.Snapshot, req Request) error {
	if req.Week < weights.MinWeek || req.Week > weights.MaxWeek {
		metrics.RecordValidationFailure("week_range")
		return fmt.Errorf("%w: week %d out of range [%d, %d]", ErrNotReady, req.Week, weights.MinWeek, weights.MaxWeek)
	}

	if len(snap.Plays.Seasons()) == 0 {
		metrics.RecordValidationFailure("no_seasons")
		return fmt.Errorf("%w: no seasons loaded", ErrNotReady)
	}

	for _, team := range []types.TeamID{req.Home, req.Away} {
		if !snap.Grades.HasTeam(team) && snap.Plays.OffensePlayCount(team) == 0 {
			metrics.RecordValidationFailure("unknown_team")
			return fmt.Errorf("%w: %s", ErrUnknownTeam, team)
		}
		if n := snap.Plays.OffensePlayCount(team); n < minPlaysPerTeam {
			metrics.RecordValidationFailure("insufficient_plays")
			return fmt.Errorf("%w: team %s has %d plays, need %d", ErrNotReady, team, n, minPlaysPerTeam)
		}
		if !snap.Grades.HasTeam(team) {
			metrics.RecordValidationFailure("unresolved_grades")
			return fmt.Errorf("%w: no grades for team %s", ErrNotReady, team)
		}
		// The injury store cannot fail a lookup; touching it here keeps
		// the preflight contract explicit.
		_ = snap.Injuries.TeamInjuries(team)
	}

	wts, err := weights.ForWeek(req.Week, req.Season)
	if err != nil {
		metrics.RecordValidationFailure("weights")
		return fmt.Errorf("%w: %v", ErrNotReady, err)
	}
	sum := 0.0
	for _, w := range wts {
		sum += w
	}
	if math.Abs(sum-1.0) > weightsTolerance {
		metrics.RecordValidationFailure("weights_sum")
		return fmt.Errorf("%w: progressive weights sum to %v", ErrNotReady, sum)
	}

	return nil
}
