package weights_test

import (
	"math"
	"testing"

	"github.com/okian/rivers/internal/domain/weights"
	. "github.com/smartystreets/goconvey/convey"
)

func TestForWeek(t *testing.T) {
	Convey("Given the progressive weighting schedule", t, func() {
		Convey("When asking for week 1 of 2025", func() {
			w, err := weights.ForWeek(1, 2025)

			Convey("Then it should blend three seasons", func() {
				So(err, ShouldBeNil)
				So(w, ShouldHaveLength, 3)
				So(w[2025], ShouldEqual, 0.88)
				So(w[2024], ShouldEqual, 0.10)
				So(w[2023], ShouldEqual, 0.02)
			})
		})

		Convey("When asking for week 4", func() {
			w, err := weights.ForWeek(4, 2025)

			Convey("Then the two-seasons-back weight should be omitted", func() {
				So(err, ShouldBeNil)
				So(w, ShouldHaveLength, 2)
				So(w[2025], ShouldEqual, 0.96)
				So(w[2024], ShouldEqual, 0.04)
			})
		})

		Convey("When asking for week 6", func() {
			w, err := weights.ForWeek(6, 2025)

			Convey("Then the current season should stand alone", func() {
				So(err, ShouldBeNil)
				So(w, ShouldHaveLength, 1)
				So(w[2025], ShouldEqual, 1.0)
			})
		})

		Convey("When asking for weeks past the table", func() {
			Convey("Then the schedule should saturate at full current weight", func() {
				for week := 7; week <= weights.MaxWeek; week++ {
					w, err := weights.ForWeek(week, 2025)
					So(err, ShouldBeNil)
					So(w, ShouldHaveLength, 1)
					So(w[2025], ShouldEqual, 1.0)
				}
			})
		})

		Convey("When summing the weights of every legal week", func() {
			Convey("Then each week should sum to one within 1e-9", func() {
				for week := weights.MinWeek; week <= weights.MaxWeek; week++ {
					w, err := weights.ForWeek(week, 2025)
					So(err, ShouldBeNil)
					sum := 0.0
					for _, v := range w {
						So(v, ShouldBeGreaterThanOrEqualTo, 0)
						So(v, ShouldBeLessThanOrEqualTo, 1)
						sum += v
					}
					So(math.Abs(sum-1.0), ShouldBeLessThan, 1e-9)
				}
			})
		})

		Convey("When asking for an out-of-range week", func() {
			Convey("Then it should fail", func() {
				_, err := weights.ForWeek(0, 2025)
				So(err, ShouldNotBeNil)
				_, err = weights.ForWeek(23, 2025)
				So(err, ShouldNotBeNil)
			})
		})
	})
}
