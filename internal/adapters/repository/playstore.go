// Package repository holds the read-only data snapshot the prediction
// engine scores against: play-by-play rows, quality grades, and the
// current injury report.
package repository

import (
	"iter"
	"sort"

	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
)

// teamSeason keys the per-team, per-season column blocks.
type teamSeason struct {
	team   types.TeamID
	season int
}

// block stores the plays of one (pos_team, season) pair as contiguous
// columns. Component scorers stream over these without materialising
// filtered row sets.
type block struct {
	gameID  []string
	week    []uint8
	defTeam []types.TeamID
	kind    []types.PlayKind

	down        []int8
	yardsToGo   []int16
	yardline100 []int8
	yardsGained []int16

	epa    []float64
	hasEPA []bool

	success      []bool
	interception []bool
	fumbleLost   []bool

	airYards           []float64
	hasAirYards        []bool
	yardsAfterCatch    []float64
	hasYardsAfterCatch []bool
	qbEPA              []float64
	hasQBEPA           []bool

	quarterSeconds []int16
	gameSeconds    []int16
}

func (b *block) append(p *model.PlayRow) {
	b.gameID = append(b.gameID, p.GameID)
	b.week = append(b.week, uint8(p.Week))
	b.defTeam = append(b.defTeam, p.DefTeam)
	b.kind = append(b.kind, p.Kind)
	b.down = append(b.down, int8(p.Down))
	b.yardsToGo = append(b.yardsToGo, int16(p.YardsToGo))
	b.yardline100 = append(b.yardline100, int8(p.Yardline100))
	b.yardsGained = append(b.yardsGained, int16(p.YardsGained))
	b.epa = append(b.epa, p.EPA)
	b.hasEPA = append(b.hasEPA, p.HasEPA)
	b.success = append(b.success, p.Success)
	b.interception = append(b.interception, p.Interception)
	b.fumbleLost = append(b.fumbleLost, p.FumbleLost)
	b.airYards = append(b.airYards, p.AirYards)
	b.hasAirYards = append(b.hasAirYards, p.HasAirYards)
	b.yardsAfterCatch = append(b.yardsAfterCatch, p.YardsAfterCatch)
	b.hasYardsAfterCatch = append(b.hasYardsAfterCatch, p.HasYardsAfterCatch)
	b.qbEPA = append(b.qbEPA, p.QBEPA)
	b.hasQBEPA = append(b.hasQBEPA, p.HasQBEPA)
	b.quarterSeconds = append(b.quarterSeconds, int16(p.QuarterSecondsRemaining))
	b.gameSeconds = append(b.gameSeconds, int16(p.GameSecondsRemaining))
}

func (b *block) len() int { return len(b.kind) }

// row reassembles the i-th play of a block as a PlayRow value.
func (b *block) row(team types.TeamID, season, i int) model.PlayRow {
	return model.PlayRow{
		GameID:                  b.gameID[i],
		Season:                  season,
		Week:                    int(b.week[i]),
		PosTeam:                 team,
		DefTeam:                 b.defTeam[i],
		Kind:                    b.kind[i],
		Down:                    int(b.down[i]),
		YardsToGo:               int(b.yardsToGo[i]),
		Yardline100:             int(b.yardline100[i]),
		YardsGained:             int(b.yardsGained[i]),
		EPA:                     b.epa[i],
		HasEPA:                  b.hasEPA[i],
		Success:                 b.success[i],
		Interception:            b.interception[i],
		FumbleLost:              b.fumbleLost[i],
		AirYards:                b.airYards[i],
		HasAirYards:             b.hasAirYards[i],
		YardsAfterCatch:         b.yardsAfterCatch[i],
		HasYardsAfterCatch:      b.hasYardsAfterCatch[i],
		QBEPA:                   b.qbEPA[i],
		HasQBEPA:                b.hasQBEPA[i],
		QuarterSecondsRemaining: int(b.quarterSeconds[i]),
		GameSecondsRemaining:    int(b.gameSeconds[i]),
	}
}

// rowRef locates one play inside an offense block, for the defense
// index.
type rowRef struct {
	key teamSeason
	idx int32
}

// PlayStore is the columnar play-row store. It is immutable after
// construction; every iterator it hands out is finite and restartable
// with cost proportional to the rows it yields.
type PlayStore struct {
	offense map[teamSeason]*block
	defense map[teamSeason][]rowRef
	seasons []int
	teams   []types.TeamID
	total   int
}

// NewPlayStore builds the columnar store and its per-team, per-season
// offense and defense indexes from raw rows.
func NewPlayStore(rows []model.PlayRow) *PlayStore {
	s := &PlayStore{
		offense: make(map[teamSeason]*block),
		defense: make(map[teamSeason][]rowRef),
	}

	seasonSet := make(map[int]struct{})
	teamSet := make(map[types.TeamID]struct{})

	for i := range rows {
		p := &rows[i]
		key := teamSeason{team: p.PosTeam, season: p.Season}
		b, ok := s.offense[key]
		if !ok {
			b = &block{}
			s.offense[key] = b
		}
		defKey := teamSeason{team: p.DefTeam, season: p.Season}
		s.defense[defKey] = append(s.defense[defKey], rowRef{key: key, idx: int32(b.len())})
		b.append(p)

		seasonSet[p.Season] = struct{}{}
		teamSet[p.PosTeam] = struct{}{}
		teamSet[p.DefTeam] = struct{}{}
		s.total++
	}

	for season := range seasonSet {
		s.seasons = append(s.seasons, season)
	}
	sort.Ints(s.seasons)
	for team := range teamSet {
		s.teams = append(s.teams, team)
	}
	sort.Slice(s.teams, func(i, j int) bool { return s.teams[i] < s.teams[j] })

	return s
}

// Filter selects play rows. Zero-valued fields match everything.
type Filter struct {
	PosTeam   types.TeamID
	DefTeam   types.TeamID
	Season    int
	Predicate func(*model.PlayRow) bool
}

// Where returns a restartable iterator over the rows matching f,
// routed through the narrowest available index. Iteration order is
// stable across passes but otherwise unspecified.
func (s *PlayStore) Where(f Filter) iter.Seq[model.PlayRow] {
	switch {
	case f.PosTeam != "":
		return s.offenseSeq(f)
	case f.DefTeam != "":
		return s.defenseSeq(f)
	default:
		return s.scanSeq(f)
	}
}

// OffensePlays iterates a team's offensive plays for one season.
func (s *PlayStore) OffensePlays(team types.TeamID, season int) iter.Seq[model.PlayRow] {
	return s.Where(Filter{PosTeam: team, Season: season})
}

// DefensePlays iterates the plays a team defended in one season.
func (s *PlayStore) DefensePlays(team types.TeamID, season int) iter.Seq[model.PlayRow] {
	return s.Where(Filter{DefTeam: team, Season: season})
}

func (s *PlayStore) offenseSeq(f Filter) iter.Seq[model.PlayRow] {
	return func(yield func(model.PlayRow) bool) {
		for _, season := range s.seasons {
			if f.Season != 0 && season != f.Season {
				continue
			}
			key := teamSeason{team: f.PosTeam, season: season}
			b, ok := s.offense[key]
			if !ok {
				continue
			}
			for i := 0; i < b.len(); i++ {
				if f.DefTeam != "" && b.defTeam[i] != f.DefTeam {
					continue
				}
				p := b.row(f.PosTeam, season, i)
				if f.Predicate != nil && !f.Predicate(&p) {
					continue
				}
				if !yield(p) {
					return
				}
			}
		}
	}
}

func (s *PlayStore) defenseSeq(f Filter) iter.Seq[model.PlayRow] {
	return func(yield func(model.PlayRow) bool) {
		for _, season := range s.seasons {
			if f.Season != 0 && season != f.Season {
				continue
			}
			refs := s.defense[teamSeason{team: f.DefTeam, season: season}]
			for _, ref := range refs {
				b := s.offense[ref.key]
				p := b.row(ref.key.team, season, int(ref.idx))
				if f.Predicate != nil && !f.Predicate(&p) {
					continue
				}
				if !yield(p) {
					return
				}
			}
		}
	}
}

func (s *PlayStore) scanSeq(f Filter) iter.Seq[model.PlayRow] {
	return func(yield func(model.PlayRow) bool) {
		for _, season := range s.seasons {
			if f.Season != 0 && season != f.Season {
				continue
			}
			for _, team := range s.teams {
				b, ok := s.offense[teamSeason{team: team, season: season}]
				if !ok {
					continue
				}
				for i := 0; i < b.len(); i++ {
					p := b.row(team, season, i)
					if f.Predicate != nil && !f.Predicate(&p) {
						continue
					}
					if !yield(p) {
						return
					}
				}
			}
		}
	}
}

// Seasons lists the seasons loaded, ascending.
func (s *PlayStore) Seasons() []int { return s.seasons }

// Teams lists every team seen on either side of a play.
func (s *PlayStore) Teams() []types.TeamID { return s.teams }

// Len is the total number of rows loaded.
func (s *PlayStore) Len() int { return s.total }

// OffensePlayCount counts a team's offensive plays across all loaded
// seasons, for preflight validation.
func (s *PlayStore) OffensePlayCount(team types.TeamID) int {
	n := 0
	for _, season := range s.seasons {
		if b, ok := s.offense[teamSeason{team: team, season: season}]; ok {
			n += b.len()
		}
	}
	return n
}
