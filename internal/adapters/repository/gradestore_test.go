package repository_test

import (
	"testing"

	"github.com/okian/rivers/internal/adapters/repository"
	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGradeStore(t *testing.T) {
	Convey("Given a grade store with a graded roster", t, func() {
		store := repository.NewGradeStore(
			[]model.TeamGrades{{
				Team:           "BUF",
				OverallOffense: model.GradeOf(88),
				Passing:        model.GradeOf(90),
			}},
			[]model.PlayerGrade{
				{Team: "BUF", Position: types.QB, Player: "Josh Allen", Grade: 90},
				{Team: "BUF", Position: types.QB, Player: "Mitch Trubisky", Grade: 60},
				{Team: "BUF", Position: types.WR, Player: "Khalil Shakir", Grade: 78},
			},
		)

		Convey("When resolving teams", func() {
			Convey("Then graded teams resolve and others do not", func() {
				So(store.HasTeam("BUF"), ShouldBeTrue)
				So(store.HasTeam("MIA"), ShouldBeFalse)
			})
		})

		Convey("When looking up unit grades", func() {
			tg, ok := store.TeamGrades("BUF")

			Convey("Then known fields are present and missing ones invalid", func() {
				So(ok, ShouldBeTrue)
				So(tg.Passing.Or(50), ShouldEqual, 90)
				So(tg.Coverage.Valid, ShouldBeFalse)
				So(tg.Coverage.Or(50), ShouldEqual, 50)
			})
		})

		Convey("When looking up a starter grade", func() {
			Convey("Then the named player's grade is returned", func() {
				So(store.StarterGrade("BUF", types.QB, "Josh Allen").Or(70), ShouldEqual, 90)
			})

			Convey("And an ungraded player is invalid", func() {
				g := store.StarterGrade("BUF", types.QB, "Nobody")
				So(g.Valid, ShouldBeFalse)
			})
		})

		Convey("When looking up a backup grade", func() {
			Convey("Then the best remaining player at the position is used", func() {
				So(store.BackupGrade("BUF", types.QB, "Josh Allen").Or(0), ShouldEqual, 60)
			})

			Convey("And a position with a single player has no backup", func() {
				So(store.BackupGrade("BUF", types.WR, "Khalil Shakir").Valid, ShouldBeFalse)
			})
		})

		Convey("When averaging position groups", func() {
			avgs := store.PositionAverages("BUF")

			Convey("Then each graded group should average its players", func() {
				So(avgs[types.QB], ShouldEqual, 75)
				So(avgs[types.WR], ShouldEqual, 78)
				So(avgs, ShouldHaveLength, 2)
			})

			Convey("And an ungraded team should yield nil", func() {
				So(store.PositionAverages("MIA"), ShouldBeNil)
			})
		})
	})
}
