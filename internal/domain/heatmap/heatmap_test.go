package heatmap_test

import (
	"testing"
	"time"

	difficulty "github.com/okian/solvemap/internal/domain/difficulty"
	heatmap "github.com/okian/solvemap/internal/domain/heatmap"
	"github.com/okian/solvemap/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func solved(solvedAt, diff string) model.SolvedProblem {
	return model.SolvedProblem{
		ProblemURL: "https://codeforces.com/contest/1/problem/A",
		Difficulty: diff,
		SolvedAt:   solvedAt,
	}
}

func TestParseMode(t *testing.T) {
	Convey("Given the mode parser", t, func() {
		Convey("When parsing known names", func() {
			Convey("Then count and the empty string should map to count mode", func() {
				m, err := heatmap.ParseMode("")
				So(err, ShouldBeNil)
				So(m, ShouldEqual, heatmap.ModeCount)

				m, err = heatmap.ParseMode("count")
				So(err, ShouldBeNil)
				So(m, ShouldEqual, heatmap.ModeCount)
			})

			Convey("Then difficulty should map to max-difficulty mode", func() {
				m, err := heatmap.ParseMode("difficulty")
				So(err, ShouldBeNil)
				So(m, ShouldEqual, heatmap.ModeMaxDifficulty)
			})
		})

		Convey("When parsing an unknown name", func() {
			_, err := heatmap.ParseMode("rainbow")

			Convey("Then it should return ErrUnknownMode", func() {
				So(err, ShouldEqual, heatmap.ErrUnknownMode)
			})
		})
	})
}

func TestFold(t *testing.T) {
	Convey("Given solve records on overlapping dates", t, func() {
		records := []model.SolvedProblem{
			solved("2024-01-01 10:00:00", "1500"),
			solved("2024-01-01 22:30:00", "2500"),
			solved("2024-01-02 08:00:00", "abc"),
		}

		Convey("When folding in count mode", func() {
			values := heatmap.Fold(records, heatmap.ModeCount)

			Convey("Then each date should count all its records", func() {
				So(values, ShouldResemble, map[string]int{
					"2024-01-01": 2,
					"2024-01-02": 1,
				})
			})
		})

		Convey("When folding in difficulty mode", func() {
			values := heatmap.Fold(records, heatmap.ModeMaxDifficulty)

			Convey("Then the max difficulty per date should decide the level", func() {
				So(values["2024-01-01"], ShouldEqual, difficulty.Level(2500))
			})

			Convey("And records without a numeric difficulty should be ignored", func() {
				_, ok := values["2024-01-02"]
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When folding twice", func() {
			first := heatmap.Fold(records, heatmap.ModeCount)
			second := heatmap.Fold(records, heatmap.ModeCount)

			Convey("Then the result should be identical", func() {
				So(second, ShouldResemble, first)
			})
		})
	})
}

func TestWeekStart(t *testing.T) {
	Convey("Given dates across a week", t, func() {
		Convey("When rounding back to the week start", func() {
			Convey("Then every day should land on its Sunday", func() {
				// 2024-01-07 is a Sunday.
				sunday := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
				for offset := 0; offset < 7; offset++ {
					d := sunday.AddDate(0, 0, offset)
					So(heatmap.WeekStart(d), ShouldResemble, sunday)
				}
			})

			Convey("Then time-of-day should be dropped", func() {
				d := time.Date(2024, 1, 9, 23, 59, 59, 0, time.UTC)
				So(heatmap.WeekStart(d), ShouldResemble, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC))
			})
		})
	})
}

func TestAggregate(t *testing.T) {
	Convey("Given records within a one-week window starting mid-week", t, func() {
		// 2024-01-01 is a Monday; the grid week starts 2023-12-31.
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
		records := []model.SolvedProblem{
			solved("2024-01-01 10:00:00", "1500"),
			solved("2024-01-01 22:30:00", "2500"),
			solved("2024-01-02 08:00:00", "1200"),
		}

		Convey("When aggregating in count mode", func() {
			grid := heatmap.Aggregate(records, start, end, heatmap.ModeCount)

			Convey("Then the grid should cover two week columns", func() {
				So(grid.Weeks, ShouldHaveLength, 2)
				So(grid.Weeks[0], ShouldHaveLength, heatmap.DaysPerWeek)
			})

			Convey("Then boundary days should be present but out of range", func() {
				first := grid.Weeks[0][0]
				So(first.Date, ShouldEqual, "2023-12-31")
				So(first.InRange, ShouldBeFalse)
				So(first.Value, ShouldEqual, 0)
				So(first.Color, ShouldBeEmpty)

				last := grid.Weeks[1][6]
				So(last.Date, ShouldEqual, "2024-01-13")
				So(last.InRange, ShouldBeFalse)
			})

			Convey("Then in-range cells should carry values and colors", func() {
				monday := grid.Weeks[0][1]
				So(monday.Date, ShouldEqual, "2024-01-01")
				So(monday.InRange, ShouldBeTrue)
				So(monday.Value, ShouldEqual, 2)
				So(monday.Color, ShouldEqual, "#216e39")

				tuesday := grid.Weeks[0][2]
				So(tuesday.Value, ShouldEqual, 1)
				So(tuesday.Color, ShouldEqual, "#30a14e")
			})

			Convey("Then empty in-range cells should use the neutral color", func() {
				wednesday := grid.Weeks[0][3]
				So(wednesday.InRange, ShouldBeTrue)
				So(wednesday.Value, ShouldEqual, 0)
				So(wednesday.Color, ShouldEqual, difficulty.NeutralColor)
			})

			Convey("Then the max value and mode should be reported", func() {
				So(grid.MaxValue, ShouldEqual, 2)
				So(grid.Mode, ShouldEqual, "count")
			})

			Convey("Then one month label should anchor at the first week", func() {
				So(grid.MonthLabels, ShouldHaveLength, 1)
				So(grid.MonthLabels[0].Label, ShouldEqual, "Jan")
				So(grid.MonthLabels[0].WeekIndex, ShouldEqual, 0)
			})
		})

		Convey("When aggregating in difficulty mode", func() {
			grid := heatmap.Aggregate(records, start, end, heatmap.ModeMaxDifficulty)

			Convey("Then the severity level should pick the color directly", func() {
				monday := grid.Weeks[0][1]
				So(monday.Value, ShouldEqual, difficulty.Level(2500))
				So(monday.Color, ShouldEqual, difficulty.Color(difficulty.Level(2500)))
				So(grid.Mode, ShouldEqual, "difficulty")
			})
		})

		Convey("When aggregating twice", func() {
			first := heatmap.Aggregate(records, start, end, heatmap.ModeCount)
			second := heatmap.Aggregate(records, start, end, heatmap.ModeCount)

			Convey("Then the grids should be identical", func() {
				So(second, ShouldResemble, first)
			})
		})

		Convey("When no records fall inside the window", func() {
			grid := heatmap.Aggregate(nil, start, end, heatmap.ModeCount)

			Convey("Then every in-range cell should be empty and neutral", func() {
				So(grid.MaxValue, ShouldEqual, 0)
				for _, week := range grid.Weeks {
					for _, cell := range week {
						if cell.InRange {
							So(cell.Value, ShouldEqual, 0)
							So(cell.Color, ShouldEqual, difficulty.NeutralColor)
						}
					}
				}
			})
		})
	})

	Convey("Given a window spanning a month boundary", t, func() {
		start := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

		Convey("When aggregating", func() {
			grid := heatmap.Aggregate(nil, start, end, heatmap.ModeCount)

			Convey("Then both months should be labeled in order", func() {
				So(grid.MonthLabels, ShouldHaveLength, 2)
				So(grid.MonthLabels[0].Label, ShouldEqual, "Jan")
				So(grid.MonthLabels[1].Label, ShouldEqual, "Feb")
				So(grid.MonthLabels[1].WeekIndex, ShouldBeGreaterThan, grid.MonthLabels[0].WeekIndex)
			})
		})
	})

	Convey("Given custom palette options", t, func() {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
		records := []model.SolvedProblem{solved("2024-01-01 10:00:00", "1500")}

		Convey("When overriding the colors and empty color", func() {
			grid := heatmap.Aggregate(records, start, end, heatmap.ModeCount,
				heatmap.WithColors([]string{"#111111"}),
				heatmap.WithEmptyColor("#222222"),
			)

			Convey("Then the overrides should apply", func() {
				So(grid.Weeks[0][1].Color, ShouldEqual, "#111111")
				So(grid.Weeks[0][2].Color, ShouldEqual, "#222222")
			})
		})

		Convey("When overriding the index function", func() {
			grid := heatmap.Aggregate(records, start, end, heatmap.ModeCount,
				heatmap.WithColorIndex(func(_, _ int) int { return -1 }),
			)

			Convey("Then a negative index should fall back to the empty color", func() {
				So(grid.Weeks[0][1].Color, ShouldEqual, difficulty.NeutralColor)
			})
		})
	})
}
