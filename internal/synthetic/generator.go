// Package synthetic generates deterministic snapshot data for tests,
// benchmarks, and local runs. The same seed always yields the same
// plays, grades, and injuries.
package synthetic

import (
	"fmt"
	"math/rand"

	"github.com/okian/rivers/internal/adapters/repository"
	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
)

// Default generation constants.
const (
	defaultSeed           = 42
	defaultPlaysPerSeason = 900 // roughly a team's offensive snaps in a season
)

// defaultTeams is a small slate that exercises both conference
// directions without generating a full league.
var defaultTeams = []types.TeamID{"BUF", "MIA", "KC", "SF", "PHI", "DAL", "BAL", "DET"}

// Generator produces synthetic snapshot data.
type Generator struct {
	rng            *rand.Rand
	teams          []types.TeamID
	seasons        []int
	playsPerSeason int
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed fixes the random seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic seed for reproducible data
	}
}

// WithTeams overrides the generated team slate.
func WithTeams(teams []types.TeamID) Option {
	return func(g *Generator) {
		if len(teams) >= 2 {
			g.teams = teams
		}
	}
}

// WithSeasons sets the seasons generated.
func WithSeasons(seasons []int) Option {
	return func(g *Generator) {
		if len(seasons) > 0 {
			g.seasons = seasons
		}
	}
}

// WithPlaysPerSeason sets offensive plays per team and season.
func WithPlaysPerSeason(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.playsPerSeason = n
		}
	}
}

// NewGenerator creates a generator with deterministic defaults.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rng:            rand.New(rand.NewSource(defaultSeed)), //nolint:gosec // deterministic seed for reproducible data
		teams:          defaultTeams,
		seasons:        []int{2023, 2024, 2025},
		playsPerSeason: defaultPlaysPerSeason,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Plays generates play rows for every team and season. Each team gets
// a stable quality tilt so matchups are not coin flips.
func (g *Generator) Plays() []model.PlayRow {
	var plays []model.PlayRow
	for _, season := range g.seasons {
		for ti, team := range g.teams {
			opponent := g.teams[(ti+1)%len(g.teams)]
			// Tilt in [-0.1, +0.1] by roster slot.
			tilt := (float64(ti)/float64(len(g.teams)-1) - 0.5) * 0.2
			for i := 0; i < g.playsPerSeason; i++ {
				plays = append(plays, g.play(team, opponent, season, i, tilt))
			}
		}
	}
	return plays
}

func (g *Generator) play(team, opponent types.TeamID, season, i int, tilt float64) model.PlayRow {
	kind := types.PlayRun
	if g.rng.Float64() < 0.55 {
		kind = types.PlayPass
	}

	epa := g.rng.NormFloat64()*0.45 + tilt
	yards := int(g.rng.NormFloat64()*6 + 5 + tilt*10)
	if yards < -10 {
		yards = -10
	}

	p := model.PlayRow{
		GameID:                  fmt.Sprintf("%d_%s_%02d", season, team, i/70),
		Season:                  season,
		Week:                    i/70 + 1,
		PosTeam:                 team,
		DefTeam:                 opponent,
		Kind:                    kind,
		Down:                    g.rng.Intn(4) + 1,
		YardsToGo:               g.rng.Intn(10) + 1,
		Yardline100:             g.rng.Intn(99) + 1,
		YardsGained:             yards,
		EPA:                     epa,
		HasEPA:                  true,
		Success:                 epa > 0,
		QuarterSecondsRemaining: g.rng.Intn(900),
		GameSecondsRemaining:    g.rng.Intn(3600),
	}

	if kind == types.PlayPass {
		p.Interception = g.rng.Float64() < 0.022
		p.AirYards, p.HasAirYards = float64(g.rng.Intn(25)), true
		p.YardsAfterCatch, p.HasYardsAfterCatch = float64(g.rng.Intn(12)), true
		p.QBEPA, p.HasQBEPA = epa, true
	} else {
		p.FumbleLost = g.rng.Float64() < 0.008
	}
	return p
}

// TeamGrades generates per-unit grades spread across the quality
// ladder.
func (g *Generator) TeamGrades() []model.TeamGrades {
	grades := make([]model.TeamGrades, len(g.teams))
	for i, team := range g.teams {
		base := 55 + float64(i)*30/float64(len(g.teams)-1) // 55..85
		jitter := func() model.Grade { return model.GradeOf(base + g.rng.Float64()*8 - 4) }
		grades[i] = model.TeamGrades{
			Team:           team,
			Passing:        jitter(),
			Rushing:        jitter(),
			Receiving:      jitter(),
			PassBlocking:   jitter(),
			RunBlocking:    jitter(),
			PassRush:       jitter(),
			RunDefense:     jitter(),
			Coverage:       jitter(),
			Tackling:       jitter(),
			OverallOffense: jitter(),
			OverallDefense: jitter(),
		}
	}
	return grades
}

// PlayerGrades generates a starter and backup for the key positions on
// every team.
func (g *Generator) PlayerGrades() []model.PlayerGrade {
	positions := []types.Position{types.QB, types.RB, types.WR, types.TE, types.OT, types.CB, types.DE}
	var grades []model.PlayerGrade
	for i, team := range g.teams {
		base := 55 + float64(i)*30/float64(len(g.teams)-1)
		for _, pos := range positions {
			starter := base + g.rng.Float64()*10
			grades = append(grades,
				model.PlayerGrade{Team: team, Position: pos, Player: fmt.Sprintf("%s %s1", team, pos), Grade: starter},
				model.PlayerGrade{Team: team, Position: pos, Player: fmt.Sprintf("%s %s2", team, pos), Grade: starter - 12 - g.rng.Float64()*8},
			)
		}
	}
	return grades
}

// Injuries generates a sparse injury report: roughly one entry per
// team, skewed toward questionable tags.
func (g *Generator) Injuries() []model.InjuryEntry {
	statuses := []types.InjuryStatus{
		types.StatusQuestionable, types.StatusQuestionable,
		types.StatusOut, types.StatusDoubtful,
	}
	var injuries []model.InjuryEntry
	for _, team := range g.teams {
		if g.rng.Float64() < 0.3 {
			continue
		}
		pos := []types.Position{types.QB, types.WR, types.OT, types.CB}[g.rng.Intn(4)]
		injuries = append(injuries, model.InjuryEntry{
			Team:     team,
			Player:   fmt.Sprintf("%s %s1", team, pos),
			Position: pos,
			Status:   statuses[g.rng.Intn(len(statuses))],
			Note:     "synthetic",
		})
	}
	return injuries
}

// Snapshot bundles generated data into a ready snapshot.
func (g *Generator) Snapshot() *repository.Snapshot {
	return repository.NewSnapshot(
		repository.NewPlayStore(g.Plays()),
		repository.NewGradeStore(g.TeamGrades(), g.PlayerGrades()),
		repository.NewInjuryStore(g.Injuries()),
	)
}
