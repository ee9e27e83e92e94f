package repository

import (
	"sort"
	"strings"

	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
)

// GradeStore resolves team-unit and per-player quality grades. It is
// immutable after construction.
type GradeStore struct {
	teams map[types.TeamID]model.TeamGrades
	// players[team][position] is sorted by grade descending, so the
	// backup for an injured player is the first other entry.
	players map[types.TeamID][types.NumPositions][]model.PlayerGrade
}

// NewGradeStore indexes team grades and player grades.
func NewGradeStore(teamGrades []model.TeamGrades, playerGrades []model.PlayerGrade) *GradeStore {
	g := &GradeStore{
		teams:   make(map[types.TeamID]model.TeamGrades, len(teamGrades)),
		players: make(map[types.TeamID][types.NumPositions][]model.PlayerGrade),
	}
	for _, tg := range teamGrades {
		g.teams[tg.Team] = tg
	}
	for _, pg := range playerGrades {
		group := g.players[pg.Team]
		group[pg.Position] = append(group[pg.Position], pg)
		g.players[pg.Team] = group
	}
	for team, group := range g.players {
		for pos := range group {
			sort.SliceStable(group[pos], func(i, j int) bool {
				return group[pos][i].Grade > group[pos][j].Grade
			})
		}
		g.players[team] = group
	}
	return g
}

// HasTeam reports whether the store can resolve the team identifier.
func (g *GradeStore) HasTeam(team types.TeamID) bool {
	if _, ok := g.teams[team]; ok {
		return true
	}
	_, ok := g.players[team]
	return ok
}

// TeamGrades returns the per-unit grades for a team. The second result
// is false when the team has no unit grades; callers fall back to
// neutral values.
func (g *GradeStore) TeamGrades(team types.TeamID) (model.TeamGrades, bool) {
	tg, ok := g.teams[team]
	return tg, ok
}

// StarterGrade looks up the named player's own grade at a position.
// When the player is not graded the result is invalid and the caller
// applies its documented default.
func (g *GradeStore) StarterGrade(team types.TeamID, pos types.Position, player string) model.Grade {
	for _, pg := range g.players[team][pos] {
		if strings.EqualFold(pg.Player, player) {
			return model.GradeOf(pg.Grade)
		}
	}
	return model.Grade{}
}

// BackupGrade returns the grade of the best player at a position other
// than the named injured player. Invalid when no such player is
// graded.
func (g *GradeStore) BackupGrade(team types.TeamID, pos types.Position, injured string) model.Grade {
	for _, pg := range g.players[team][pos] {
		if strings.EqualFold(pg.Player, injured) {
			continue
		}
		return model.GradeOf(pg.Grade)
	}
	return model.Grade{}
}

// PositionAverages returns the mean grade of each graded position
// group on a team, for the EPA grade adjustment. Nil when the team has
// no graded players.
func (g *GradeStore) PositionAverages(team types.TeamID) map[types.Position]float64 {
	group, ok := g.players[team]
	if !ok {
		return nil
	}
	out := make(map[types.Position]float64)
	for pos := range group {
		if len(group[pos]) == 0 {
			continue
		}
		sum := 0.0
		for _, pg := range group[pos] {
			sum += pg.Grade
		}
		out[types.Position(pos)] = sum / float64(len(group[pos]))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
