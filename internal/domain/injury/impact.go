// Package injury converts a team's injury report into a direct
// win-probability deduction. Each qualifying entry contributes
// base-impact x backup-adjustment x status-multiplier; the team total
// is capped so pathological reports cannot zero a team out.
package injury

import (
	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
)

// Engine parameters.
const (
	// TeamCap bounds the summed win-probability deduction per team.
	TeamCap = 0.40

	// defaultStarterGrade stands in for an ungraded injured starter.
	defaultStarterGrade = 70.0
	// backupGradeDrop derives a backup grade from the starter's when
	// no backup is graded.
	backupGradeDrop = 15.0
)

// GradeLookup is the slice of the grade store the engine needs.
type GradeLookup interface {
	StarterGrade(team types.TeamID, pos types.Position, player string) model.Grade
	BackupGrade(team types.TeamID, pos types.Position, injured string) model.Grade
}

// EntryImpact records what one injury entry contributed, for
// diagnostics. Skipped entries carry a reason and zero impact.
type EntryImpact struct {
	Player   string             `json:"player"`
	Position types.Position     `json:"-"`
	Status   types.InjuryStatus `json:"-"`
	Impact   float64            `json:"impact"`
	Skipped  string             `json:"skipped,omitempty"`
}

// statusMultiplier maps report status to how certain the absence is.
// QUESTIONABLE counts as healthy on every path.
func statusMultiplier(s types.InjuryStatus) (float64, bool) {
	switch s {
	case types.StatusOut, types.StatusIR:
		return 1.00, true
	case types.StatusDoubtful:
		return 0.80, true
	case types.StatusPUP, types.StatusNFI:
		return 0.90, true
	case types.StatusQuestionable:
		return 0.00, true
	default:
		return 0, false
	}
}

// baseImpact selects the per-entry base deduction from the position
// family and the injured player's own grade.
func baseImpact(pos types.Position, grade float64) float64 {
	switch pos.Family() {
	case types.FamilyQB:
		switch {
		case grade >= 85:
			return 0.20
		case grade >= 75:
			return 0.15
		case grade >= 65:
			return 0.10
		default:
			return 0.08
		}
	case types.FamilySkill:
		switch {
		case grade >= 85:
			return 0.05
		case grade >= 75:
			return 0.03
		case grade >= 65:
			return 0.02
		default:
			return 0.01
		}
	case types.FamilyOffensiveLine:
		var base float64
		switch {
		case grade >= 85:
			base = 0.020
		case grade >= 75:
			base = 0.015
		case grade >= 65:
			base = 0.010
		default:
			base = 0.005
		}
		switch pos {
		case types.C:
			return base * 0.8
		case types.OG:
			return base * 0.6
		default: // OT
			return base
		}
	case types.FamilyDefense:
		switch {
		case grade >= 85:
			return 0.020
		case grade >= 75:
			return 0.010
		default:
			return 0.005
		}
	default: // special teams and unknown positions
		return 0.005
	}
}

// backupAdjustment selects how much of the base impact the backup
// absorbs. Smaller means more absorbed.
func backupAdjustment(pos types.Position, backupGrade float64) float64 {
	switch pos.Family() {
	case types.FamilyQB:
		switch {
		case backupGrade >= 75:
			return 0.3
		case backupGrade >= 65:
			return 0.5
		default:
			return 0.7
		}
	case types.FamilySkill:
		switch {
		case backupGrade >= 75:
			return 0.4
		case backupGrade >= 65:
			return 0.6
		default:
			return 0.8
		}
	case types.FamilyOffensiveLine, types.FamilyDefense:
		switch {
		case backupGrade >= 75:
			return 0.3
		case backupGrade >= 65:
			return 0.5
		default:
			return 0.7
		}
	default:
		return 0.8
	}
}

// Engine computes per-team injury deductions against a grade lookup.
type Engine struct {
	grades GradeLookup
}

// NewEngine creates an injury-impact engine.
func NewEngine(grades GradeLookup) *Engine {
	return &Engine{grades: grades}
}

// TeamImpact reduces a team's injury entries to a capped
// win-probability deduction plus per-entry diagnostics. An empty list
// yields exactly zero.
func (e *Engine) TeamImpact(team types.TeamID, entries []model.InjuryEntry) (float64, []EntryImpact) {
	if len(entries) == 0 {
		return 0, nil
	}

	total := 0.0
	impacts := make([]EntryImpact, 0, len(entries))

	for i := range entries {
		entry := &entries[i]
		impact := EntryImpact{Player: entry.Player, Position: entry.Position, Status: entry.Status}

		mu, known := statusMultiplier(entry.Status)
		switch {
		case !known:
			impact.Skipped = "unknown status"
		case entry.Status == types.StatusQuestionable:
			impact.Skipped = "questionable counts as healthy"
		case entry.LongTerm:
			impact.Skipped = "long-term injury"
		case entry.SeasonStart:
			impact.Skipped = "predates season start"
		default:
			starter := e.grades.StarterGrade(team, entry.Position, entry.Player).Or(defaultStarterGrade)
			backup := e.grades.BackupGrade(team, entry.Position, entry.Player).Or(starter - backupGradeDrop)

			alpha := backupAdjustment(entry.Position, backup)
			if entry.RookieBackup {
				alpha /= 2
			}

			impact.Impact = baseImpact(entry.Position, starter) * alpha * mu
			total += impact.Impact
		}

		impacts = append(impacts, impact)
	}

	if total > TeamCap {
		total = TeamCap
	}
	return total, impacts
}
