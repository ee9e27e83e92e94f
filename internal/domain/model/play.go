// Package model contains domain models passed between layers.
package model

import "github.com/okian/rivers/internal/domain/types"

// PlayRow is one immutable scrimmage or special-teams play. Optional
// numeric fields carry an explicit presence flag (epa and friends) or
// a sentinel documented on the field (-1 for yards-to-go and timings,
// 0 for down).
type PlayRow struct {
	GameID  string // opaque identifier grouping plays of one game
	Season  int
	Week    int // 1..22
	PosTeam types.TeamID
	DefTeam types.TeamID
	Kind    types.PlayKind

	Down        int // 1..4, 0 when not applicable
	YardsToGo   int // -1 when absent
	Yardline100 int // yards to opponent goal line, 0..100
	YardsGained int

	EPA    float64
	HasEPA bool
	// Success is true iff EPA > 0 on a scrimmage play.
	Success bool

	Interception bool
	FumbleLost   bool

	AirYards           float64
	HasAirYards        bool
	YardsAfterCatch    float64
	HasYardsAfterCatch bool
	QBEPA              float64
	HasQBEPA           bool

	QuarterSecondsRemaining int // -1 when absent
	GameSecondsRemaining    int // -1 when absent
}

// RedZone reports whether the play started inside the opponent 20.
func (p *PlayRow) RedZone() bool { return p.Yardline100 <= 20 }

// GoalLine reports whether the play started inside the opponent 5.
func (p *PlayRow) GoalLine() bool { return p.Yardline100 <= 5 }

// ThirdDown reports whether the play was a third-down snap.
func (p *PlayRow) ThirdDown() bool { return p.Down == 3 }

// TwoMinute reports whether the play ran inside a two-minute window of
// either the quarter or the game.
func (p *PlayRow) TwoMinute() bool {
	return (p.QuarterSecondsRemaining >= 0 && p.QuarterSecondsRemaining <= 120) ||
		(p.GameSecondsRemaining >= 0 && p.GameSecondsRemaining <= 120)
}

// Turnover reports whether the offense lost the ball on the play.
func (p *PlayRow) Turnover() bool { return p.Interception || p.FumbleLost }
