// Package matchup combines opposing unit grades into a head-to-head
// score delta and fuses the per-team raw scores into a final
// prediction.
package matchup

import (
	"github.com/okian/rivers/internal/domain/model"
)

// Unit-matchup coefficients. Each term pits an offensive unit against
// the defensive unit that lines up across from it.
const (
	weightOverall      = 0.30
	weightPassing      = 0.25
	weightRushing      = 0.20
	weightReceiving    = 0.15
	weightPassBlocking = 0.10
)

// Delta returns the signed grade delta of one side's offense against
// the other side's defense, in grade units (typical range -30..+30).
// Missing grades resolve to the neutral 50.
func Delta(off, def model.TeamGrades) float64 {
	n := model.NeutralGrade
	return weightOverall*(off.OverallOffense.Or(n)-def.OverallDefense.Or(n)) +
		weightPassing*(off.Passing.Or(n)-def.Coverage.Or(n)) +
		weightRushing*(off.Rushing.Or(n)-def.RunDefense.Or(n)) +
		weightReceiving*(off.Receiving.Or(n)-def.Coverage.Or(n)) +
		weightPassBlocking*(off.PassBlocking.Or(n)-def.PassRush.Or(n))
}
