package model

import "github.com/okian/rivers/internal/domain/types"

// InjuryEntry is one row of a team's current injury report. The date
// predicates (LongTerm, SeasonStart) and the depth-chart flag
// (RookieBackup) are resolved by the loader; the impact engine
// consumes them as booleans and never does date arithmetic.
type InjuryEntry struct {
	Team     types.TeamID
	Player   string
	Position types.Position
	Status   types.InjuryStatus
	Note     string

	// LongTerm marks an injury known to predate the game week by two
	// months or more.
	LongTerm bool
	// SeasonStart marks an injury that began before the season opener.
	SeasonStart bool
	// RookieBackup marks the replacement as an ungraded rookie making
	// a first start.
	RookieBackup bool
}
