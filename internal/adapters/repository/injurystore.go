package repository

import (
	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
)

// InjuryStore holds the current injury report keyed by team. Date
// predicates are resolved by the loader before entries reach this
// store, so readers never do date arithmetic.
type InjuryStore struct {
	byTeam map[types.TeamID][]model.InjuryEntry
	total  int
}

// NewInjuryStore indexes injury entries by team.
func NewInjuryStore(entries []model.InjuryEntry) *InjuryStore {
	s := &InjuryStore{byTeam: make(map[types.TeamID][]model.InjuryEntry)}
	for _, e := range entries {
		s.byTeam[e.Team] = append(s.byTeam[e.Team], e)
		s.total++
	}
	return s
}

// TeamInjuries returns a team's current injury entries. The slice is
// possibly empty and must not be mutated.
func (s *InjuryStore) TeamInjuries(team types.TeamID) []model.InjuryEntry {
	return s.byTeam[team]
}

// Len is the total number of entries loaded.
func (s *InjuryStore) Len() int { return s.total }
