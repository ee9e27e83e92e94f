package model

import "github.com/okian/rivers/internal/domain/types"

// NeutralGrade is the fallback for any grade lookup miss. Neutral
// defaults bias matchups toward 50/50 rather than guessing intent.
const NeutralGrade = 50.0

// Grade is an optional 0..100 quality grade. The zero value is an
// unknown grade.
type Grade struct {
	Value float64
	Valid bool
}

// GradeOf wraps a known grade value.
func GradeOf(v float64) Grade { return Grade{Value: v, Valid: true} }

// Or returns the grade value, or def when the grade is unknown.
func (g Grade) Or(def float64) float64 {
	if g.Valid {
		return g.Value
	}
	return def
}

// TeamGrades holds per-unit quality grades for one team. Unknown
// fields stay zero-valued and resolve to NeutralGrade in the matchup
// adjuster.
type TeamGrades struct {
	Team types.TeamID

	// Offensive skills.
	Passing      Grade
	Rushing      Grade
	Receiving    Grade
	PassBlocking Grade
	RunBlocking  Grade

	// Defensive skills.
	PassRush   Grade
	RunDefense Grade
	Coverage   Grade
	Tackling   Grade

	// Overall rollups.
	OverallOffense Grade
	OverallDefense Grade
}

// PlayerGrade is one graded player on a team's roster, ordered within
// a position group by the grade store.
type PlayerGrade struct {
	Team     types.TeamID
	Position types.Position
	Player   string
	Grade    float64
}
