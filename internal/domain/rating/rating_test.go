package rating_test

import (
	"testing"

	rating "github.com/okian/solvemap/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClip(t *testing.T) {
	Convey("Given the difficulty clipping function", t, func() {
		Convey("When the difficulty is at or above the floor", func() {
			Convey("Then it should pass through, rounded", func() {
				So(rating.Clip(400), ShouldEqual, 400)
				So(rating.Clip(800), ShouldEqual, 800)
				So(rating.Clip(1234.4), ShouldEqual, 1234)
				So(rating.Clip(1234.5), ShouldEqual, 1235)
			})
		})

		Convey("When the difficulty is below the floor", func() {
			Convey("Then it should compress into a bounded positive range", func() {
				So(rating.Clip(0), ShouldEqual, 147)
				So(rating.Clip(-400), ShouldEqual, 54)
				So(rating.Clip(399), ShouldBeLessThan, 400)
				So(rating.Clip(-10000), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When comparing nearby inputs", func() {
			Convey("Then the output should be monotonically non-decreasing", func() {
				prev := rating.Clip(-2000)
				for d := -1990.0; d <= 3000; d += 10 {
					cur := rating.Clip(d)
					So(cur, ShouldBeGreaterThanOrEqualTo, prev)
					prev = cur
				}
			})
		})
	})
}

func TestToCodeforces(t *testing.T) {
	Convey("Given the rating conversion", t, func() {
		Convey("When converting known difficulties", func() {
			Convey("Then it should produce the calibrated ratings", func() {
				So(rating.ToCodeforces(800), ShouldEqual, 1316)
				So(rating.ToCodeforces(1200), ShouldEqual, 1619)
				So(rating.ToCodeforces(2000), ShouldEqual, 2224)
			})
		})

		Convey("When converting sub-floor difficulties", func() {
			Convey("Then the result should stay finite and positive", func() {
				So(rating.ToCodeforces(0), ShouldEqual, 822)
				So(rating.ToCodeforces(-5000), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When comparing increasing inputs", func() {
			Convey("Then the output should never decrease", func() {
				prev := rating.ToCodeforces(-1000)
				for d := -950.0; d <= 4500; d += 50 {
					cur := rating.ToCodeforces(d)
					So(cur, ShouldBeGreaterThanOrEqualTo, prev)
					prev = cur
				}
			})
		})
	})
}
