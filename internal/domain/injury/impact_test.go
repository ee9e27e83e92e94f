package injury_test

import (
	"testing"

	"github.com/okian/rivers/internal/adapters/repository"
	"github.com/okian/rivers/internal/domain/injury"
	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// grades builds a grade store with one graded starter and backup QB.
func grades(starter, backup float64) *repository.GradeStore {
	return repository.NewGradeStore(nil, []model.PlayerGrade{
		{Team: "AAA", Position: types.QB, Player: "Star QB", Grade: starter},
		{Team: "AAA", Position: types.QB, Player: "Backup QB", Grade: backup},
	})
}

func out(player string, pos types.Position) model.InjuryEntry {
	return model.InjuryEntry{Team: "AAA", Player: player, Position: pos, Status: types.StatusOut}
}

func TestTeamImpact(t *testing.T) {
	Convey("Given an elite QB with a poor backup", t, func() {
		engine := injury.NewEngine(grades(90, 60))

		Convey("When the starter is OUT", func() {
			total, entries := engine.TeamImpact("AAA", []model.InjuryEntry{out("Star QB", types.QB)})

			Convey("Then the deduction should be 0.20 x 0.7 x 1.0", func() {
				So(total, ShouldAlmostEqual, 0.14, 1e-12)
				So(entries, ShouldHaveLength, 1)
				So(entries[0].Impact, ShouldAlmostEqual, 0.14, 1e-12)
			})
		})

		Convey("When the starter is only QUESTIONABLE", func() {
			e := out("Star QB", types.QB)
			e.Status = types.StatusQuestionable
			total, entries := engine.TeamImpact("AAA", []model.InjuryEntry{e})

			Convey("Then the deduction should be exactly zero", func() {
				So(total, ShouldEqual, 0)
				So(entries[0].Skipped, ShouldNotBeEmpty)
			})
		})

		Convey("When the starter is DOUBTFUL", func() {
			e := out("Star QB", types.QB)
			e.Status = types.StatusDoubtful
			total, _ := engine.TeamImpact("AAA", []model.InjuryEntry{e})

			Convey("Then the status multiplier should scale to 80%", func() {
				So(total, ShouldAlmostEqual, 0.14*0.8, 1e-12)
			})
		})
	})

	Convey("Given a good backup behind the elite starter", t, func() {
		engine := injury.NewEngine(grades(90, 78))

		Convey("When the starter is OUT", func() {
			total, _ := engine.TeamImpact("AAA", []model.InjuryEntry{out("Star QB", types.QB)})

			Convey("Then the backup should absorb most of the impact", func() {
				So(total, ShouldAlmostEqual, 0.20*0.3, 1e-12)
			})
		})
	})

	Convey("Given a pathological injury report", t, func() {
		engine := injury.NewEngine(grades(90, 60))
		var entries []model.InjuryEntry
		for i := 0; i < 10; i++ {
			entries = append(entries, out("Star QB", types.QB))
		}

		Convey("When ten OUT quarterbacks pile up", func() {
			total, _ := engine.TeamImpact("AAA", entries)

			Convey("Then the team cap should bind at 0.40", func() {
				So(total, ShouldEqual, 0.40)
			})
		})
	})

	Convey("Given entries the engine must skip", t, func() {
		engine := injury.NewEngine(grades(90, 60))

		Convey("When an injury is long-term", func() {
			e := out("Star QB", types.QB)
			e.LongTerm = true
			total, entries := engine.TeamImpact("AAA", []model.InjuryEntry{e})

			So(total, ShouldEqual, 0)
			So(entries[0].Skipped, ShouldEqual, "long-term injury")
		})

		Convey("When an injury predates the season", func() {
			e := out("Star QB", types.QB)
			e.SeasonStart = true
			total, _ := engine.TeamImpact("AAA", []model.InjuryEntry{e})

			So(total, ShouldEqual, 0)
		})

		Convey("When the status is unknown", func() {
			e := out("Star QB", types.QB)
			e.Status = types.StatusUnknown
			total, entries := engine.TeamImpact("AAA", []model.InjuryEntry{e})

			So(total, ShouldEqual, 0)
			So(entries[0].Skipped, ShouldEqual, "unknown status")
		})
	})

	Convey("Given position-family selection", t, func() {
		engine := injury.NewEngine(repository.NewGradeStore(nil, nil))

		Convey("When an ungraded skill player is OUT", func() {
			// Starter defaults to 70, backup to 55: base 0.02, alpha 0.8.
			total, _ := engine.TeamImpact("AAA", []model.InjuryEntry{out("Some WR", types.WR)})
			So(total, ShouldAlmostEqual, 0.02*0.8, 1e-12)
		})

		Convey("When a guard is OUT", func() {
			// OL base at grade 70 is 0.010, scaled by 0.6 for OG.
			total, _ := engine.TeamImpact("AAA", []model.InjuryEntry{out("Some OG", types.OG)})
			So(total, ShouldAlmostEqual, 0.010*0.6*0.7, 1e-12)
		})

		Convey("When the position is unknown", func() {
			total, _ := engine.TeamImpact("AAA", []model.InjuryEntry{out("Mystery Man", types.PositionUnknown)})

			Convey("Then it should price like a special-teamer", func() {
				So(total, ShouldAlmostEqual, 0.005*0.8, 1e-12)
			})
		})

		Convey("When the backup is an ungraded rookie first starter", func() {
			e := out("Some WR", types.WR)
			e.RookieBackup = true
			plain, _ := engine.TeamImpact("AAA", []model.InjuryEntry{out("Some WR", types.WR)})
			rookie, _ := engine.TeamImpact("AAA", []model.InjuryEntry{e})

			Convey("Then the backup adjustment should be halved", func() {
				So(rookie, ShouldAlmostEqual, plain/2, 1e-12)
			})
		})
	})

	Convey("Given an empty injury list", t, func() {
		engine := injury.NewEngine(grades(90, 60))

		Convey("When computing the team impact", func() {
			total, entries := engine.TeamImpact("AAA", nil)

			Convey("Then the deduction should be exactly zero", func() {
				So(total, ShouldEqual, 0)
				So(entries, ShouldBeNil)
			})
		})
	})
}
