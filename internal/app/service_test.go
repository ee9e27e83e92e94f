package app_test

import (
	"context"
	"math"
	"os"
	"testing"

	"github.com/okian/rivers/internal/adapters/repository"
	"github.com/okian/rivers/internal/app"
	"github.com/okian/rivers/internal/domain/matchup"
	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
	"github.com/okian/rivers/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// fixturePlays builds n scrimmage plays per team with the given EPA,
// yardage and interception count, enough to clear preflight.
func fixturePlays(team, opp types.TeamID, n int, epa float64, yards, interceptions int) []model.PlayRow {
	plays := make([]model.PlayRow, 0, n)
	for i := 0; i < n; i++ {
		plays = append(plays, model.PlayRow{
			GameID: "g1", Season: 2025, Week: 1,
			PosTeam: team, DefTeam: opp, Kind: types.PlayPass,
			Down: 1, YardsToGo: 10, Yardline100: 50, YardsGained: yards,
			EPA: epa, HasEPA: true, Success: epa > 0,
			Interception:            i < interceptions,
			QuarterSecondsRemaining: 800, GameSecondsRemaining: 3000,
		})
	}
	return plays
}

func neutralGrades(team types.TeamID) model.TeamGrades {
	g := model.GradeOf(70.0)
	return model.TeamGrades{
		Team: team, Passing: g, Rushing: g, Receiving: g,
		PassBlocking: g, RunBlocking: g, PassRush: g, RunDefense: g,
		Coverage: g, Tackling: g, OverallOffense: g, OverallDefense: g,
	}
}

// lopsidedSnapshot pairs a dominant AAA with a struggling BBB.
func lopsidedSnapshot(injuries []model.InjuryEntry) *repository.Snapshot {
	plays := append(
		fixturePlays("AAA", "BBB", 100, 0.5, 10, 0),
		fixturePlays("BBB", "AAA", 100, -0.5, 2, 3)...,
	)
	return repository.NewSnapshot(
		repository.NewPlayStore(plays),
		repository.NewGradeStore(
			[]model.TeamGrades{neutralGrades("AAA"), neutralGrades("BBB")},
			nil,
		),
		repository.NewInjuryStore(injuries),
	)
}

func newEngine(snap *repository.Snapshot) *app.Engine {
	e := app.New()
	if snap != nil {
		e.InstallSnapshot(context.Background(), snap)
	}
	return e
}

func week6(home, away types.TeamID) app.Request {
	return app.Request{Home: home, Away: away, Week: 6, Season: 2025}
}

func TestPredict(t *testing.T) {
	Convey("Given an engine over a lopsided snapshot", t, func() {
		engine := newEngine(lopsidedSnapshot(nil))
		ctx := context.Background()

		Convey("When predicting the matchup", func() {
			p, err := engine.Predict(ctx, week6("AAA", "BBB"))

			Convey("Then the dominant side should win decisively", func() {
				So(err, ShouldBeNil)
				So(p.Winner, ShouldEqual, types.TeamID("AAA"))
				So(p.Confidence, ShouldBeGreaterThan, 0.95)
			})

			Convey("And outputs should respect their documented bounds", func() {
				So(p.HomeScore, ShouldBeBetweenOrEqual, 0, 100)
				So(p.AwayScore, ShouldBeBetweenOrEqual, 0, 100)
				So(p.Confidence, ShouldBeBetweenOrEqual, 0.5, 1.0)
			})

			Convey("And the components should carry the scenario's scores", func() {
				So(p.HomeComponents.EPA.Score, ShouldEqual, 100)
				So(p.HomeComponents.Success.Score, ShouldEqual, 100)
				So(p.HomeComponents.Yards.Score, ShouldEqual, 100)
				So(p.HomeComponents.Turnover.Score, ShouldEqual, 100)
				So(p.AwayComponents.EPA.Score, ShouldEqual, 0)
				So(p.AwayComponents.Turnover.Score, ShouldAlmostEqual, 40, 1e-9)
			})

			Convey("And with no injuries the away score should equal its raw score", func() {
				So(p.AwayComponents.InjuryDeduction, ShouldEqual, 0)
				So(p.AwayScore, ShouldAlmostEqual, p.AwayComponents.RawScore, 1e-12)
			})

			Convey("And equal grades should cancel to a zero matchup delta", func() {
				So(p.HomeComponents.MatchupDelta, ShouldAlmostEqual, 0, 1e-12)
			})
		})

		Convey("When predicting the same matchup twice", func() {
			p1, err1 := engine.Predict(ctx, week6("AAA", "BBB"))
			p2, err2 := engine.Predict(ctx, week6("AAA", "BBB"))

			Convey("Then the outputs should be bit-identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(p2, ShouldResemble, p1)
			})
		})

		Convey("When swapping home and away", func() {
			ab, err := engine.Predict(ctx, week6("AAA", "BBB"))
			So(err, ShouldBeNil)
			ba, err := engine.Predict(ctx, week6("BBB", "AAA"))
			So(err, ShouldBeNil)

			Convey("Then home field should be the only asymmetry", func() {
				So(ab.HomeComponents, ShouldResemble, ba.AwayComponents)
				So(ab.AwayComponents, ShouldResemble, ba.HomeComponents)
				// Compare on the weaker side, where the 0..100 clamp
				// cannot bind.
				So(ba.HomeScore, ShouldAlmostEqual, ab.AwayScore+matchup.HomeFieldAdvantage, 1e-12)
			})
		})

		Convey("When the game is played in a dome", func() {
			req := week6("AAA", "BBB")
			req.Weather = &model.WeatherContext{Venue: types.VenueDome, WindMPH: 40}
			p, err := engine.Predict(ctx, req)

			Convey("Then the weather contribution should be exactly neutral", func() {
				So(err, ShouldBeNil)
				So(p.HomeComponents.WeatherScore, ShouldEqual, 50)
				So(p.AwayComponents.WeatherScore, ShouldEqual, 50)
			})
		})

		Convey("When the request is cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := engine.Predict(cancelled, week6("AAA", "BBB"))

			Convey("Then it should fail with the cancelled kind", func() {
				So(err, ShouldWrap, app.ErrCancelled)
			})
		})
	})
}

func TestPredictInjuries(t *testing.T) {
	Convey("Given an elite starter on the injury report", t, func() {
		ctx := context.Background()
		starter := model.PlayerGrade{Team: "AAA", Position: types.QB, Player: "Star QB", Grade: 90}
		backup := model.PlayerGrade{Team: "AAA", Position: types.QB, Player: "Backup QB", Grade: 60}

		snapshotWith := func(status types.InjuryStatus) *repository.Snapshot {
			plays := append(
				fixturePlays("AAA", "BBB", 100, 0.1, 5, 0),
				fixturePlays("BBB", "AAA", 100, 0.1, 5, 0)...,
			)
			return repository.NewSnapshot(
				repository.NewPlayStore(plays),
				repository.NewGradeStore(
					[]model.TeamGrades{neutralGrades("AAA"), neutralGrades("BBB")},
					[]model.PlayerGrade{starter, backup},
				),
				repository.NewInjuryStore([]model.InjuryEntry{{
					Team: "AAA", Player: "Star QB", Position: types.QB, Status: status,
				}}),
			)
		}

		Convey("When the starter is OUT", func() {
			p, err := newEngine(snapshotWith(types.StatusOut)).Predict(ctx, week6("AAA", "BBB"))

			Convey("Then the home deduction should follow the impact tables", func() {
				So(err, ShouldBeNil)
				So(p.HomeComponents.InjuryDeduction, ShouldAlmostEqual, 0.14, 1e-12)
				So(p.HomeScore, ShouldAlmostEqual,
					(p.HomeComponents.RawScore+matchup.HomeFieldAdvantage)*(1-0.14), 1e-12)
			})
		})

		Convey("When the starter is QUESTIONABLE", func() {
			hurt, err := newEngine(snapshotWith(types.StatusQuestionable)).Predict(ctx, week6("AAA", "BBB"))
			So(err, ShouldBeNil)

			// The grade store changes the EPA adjustment, so compare
			// against the same snapshot with no injuries at all.
			healthySnap := snapshotWith(types.StatusQuestionable)
			healthy, err := newEngine(repository.NewSnapshot(
				healthySnap.Plays, healthySnap.Grades, repository.NewInjuryStore(nil),
			)).Predict(ctx, week6("AAA", "BBB"))
			So(err, ShouldBeNil)

			Convey("Then the output should match a healthy report exactly", func() {
				So(hurt, ShouldResemble, healthy)
			})
		})
	})
}

func TestPredictPreflight(t *testing.T) {
	Convey("Given engines with incomplete snapshots", t, func() {
		ctx := context.Background()

		Convey("When no snapshot is installed", func() {
			_, err := app.New().Predict(ctx, week6("AAA", "BBB"))

			Convey("Then it should fail with not-ready", func() {
				So(err, ShouldWrap, app.ErrNotReady)
			})
		})

		Convey("When a team is missing from every store", func() {
			_, err := newEngine(lopsidedSnapshot(nil)).Predict(ctx, week6("AAA", "ZZZ"))

			Convey("Then it should fail with unknown-team", func() {
				So(err, ShouldWrap, app.ErrUnknownTeam)
			})
		})

		Convey("When a team has too few plays", func() {
			plays := append(
				fixturePlays("AAA", "BBB", 100, 0.1, 5, 0),
				fixturePlays("BBB", "AAA", 40, 0.1, 5, 0)...,
			)
			snap := repository.NewSnapshot(
				repository.NewPlayStore(plays),
				repository.NewGradeStore([]model.TeamGrades{neutralGrades("AAA"), neutralGrades("BBB")}, nil),
				repository.NewInjuryStore(nil),
			)
			_, err := newEngine(snap).Predict(ctx, week6("AAA", "BBB"))

			Convey("Then it should fail with not-ready", func() {
				So(err, ShouldWrap, app.ErrNotReady)
			})
		})

		Convey("When the week is out of range", func() {
			req := week6("AAA", "BBB")
			req.Week = 23
			_, err := newEngine(lopsidedSnapshot(nil)).Predict(ctx, req)

			Convey("Then it should fail with not-ready", func() {
				So(err, ShouldWrap, app.ErrNotReady)
			})
		})
	})
}

func TestPredictDataCorruption(t *testing.T) {
	Convey("Given a snapshot with a NaN EPA hiding in the rows", t, func() {
		ctx := context.Background()
		plays := append(
			fixturePlays("AAA", "BBB", 100, 0.1, 5, 0),
			fixturePlays("BBB", "AAA", 100, 0.1, 5, 0)...,
		)
		plays[7].EPA = math.NaN()
		snap := repository.NewSnapshot(
			repository.NewPlayStore(plays),
			repository.NewGradeStore([]model.TeamGrades{neutralGrades("AAA"), neutralGrades("BBB")}, nil),
			repository.NewInjuryStore(nil),
		)
		engine := newEngine(snap)

		Convey("When predicting over the corrupt rows", func() {
			_, err := engine.Predict(ctx, week6("AAA", "BBB"))

			Convey("Then it should fail with data-corruption", func() {
				So(err, ShouldWrap, app.ErrDataCorruption)
			})

			Convey("And the snapshot should be invalidated for later requests", func() {
				_, err := engine.Predict(ctx, week6("AAA", "BBB"))
				So(err, ShouldWrap, app.ErrNotReady)
				So(engine.Ready(ctx), ShouldBeFalse)
			})
		})
	})
}

func TestPredictBatch(t *testing.T) {
	Convey("Given an engine over a lopsided snapshot", t, func() {
		engine := newEngine(lopsidedSnapshot(nil))
		ctx := context.Background()

		Convey("When predicting a slate with one bad matchup", func() {
			reqs := []app.Request{
				week6("AAA", "BBB"),
				week6("AAA", "ZZZ"),
				week6("BBB", "AAA"),
			}
			results, err := engine.PredictBatch(ctx, reqs, 2)

			Convey("Then results should come back in request order", func() {
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 3)
				So(results[0].Err, ShouldBeNil)
				So(results[0].Prediction.Home, ShouldEqual, types.TeamID("AAA"))
				So(results[2].Err, ShouldBeNil)
				So(results[2].Prediction.Home, ShouldEqual, types.TeamID("BBB"))
			})

			Convey("And the bad matchup should fail alone", func() {
				So(results[1].Err, ShouldWrap, app.ErrUnknownTeam)
			})

			Convey("And batch results should match single predictions", func() {
				single, err := engine.Predict(ctx, week6("AAA", "BBB"))
				So(err, ShouldBeNil)
				So(results[0].Prediction, ShouldResemble, single)
			})
		})

		Convey("When predicting an empty slate", func() {
			results, err := engine.PredictBatch(ctx, nil, 2)

			Convey("Then nothing should happen", func() {
				So(err, ShouldBeNil)
				So(results, ShouldBeNil)
			})
		})
	})
}
