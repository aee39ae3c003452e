// Package heatmap buckets date-stamped solve records into a week-aligned
// calendar grid with month anchors and a discrete color scale.
//
// Aggregation is a pure function of (records, window, mode): re-running it
// yields an identical grid. Dates with no records are implicitly zero.
package heatmap

import (
	"errors"
	"strconv"
	"time"

	"github.com/okian/solvemap/internal/domain/difficulty"
	"github.com/okian/solvemap/internal/domain/model"
)

// DaysPerWeek is the grid height. Weeks start on Sunday.
const DaysPerWeek = 7

// Mode selects how records folding onto the same date combine.
type Mode int

const (
	// ModeCount counts records per date.
	ModeCount Mode = iota
	// ModeMaxDifficulty keeps the maximum numeric difficulty per date and
	// renders it as a severity level. Records without a parseable
	// difficulty are ignored.
	ModeMaxDifficulty
)

// ErrUnknownMode reports an unrecognized mode name.
var ErrUnknownMode = errors.New("unknown heatmap mode")

// ParseMode maps a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "count":
		return ModeCount, nil
	case "difficulty":
		return ModeMaxDifficulty, nil
	default:
		return ModeCount, ErrUnknownMode
	}
}

// String returns the wire name of the mode.
func (m Mode) String() string {
	if m == ModeMaxDifficulty {
		return "difficulty"
	}
	return "count"
}

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Cell is one day of the grid. Days that fall inside a boundary week but
// outside the requested window are structurally present with InRange false;
// they carry no value and no color.
type Cell struct {
	Date    string `json:"date"`
	Value   int    `json:"value"`
	InRange bool   `json:"in_range"`
	Color   string `json:"color,omitempty"`
}

// Week is a column of DaysPerWeek cells, Sunday first.
type Week []Cell

// MonthLabel anchors a month name at the week where that month first
// becomes visible.
type MonthLabel struct {
	Label     string `json:"label"`
	WeekIndex int    `json:"week_index"`
}

// Grid is the aggregation result consumed by a rendering layer.
type Grid struct {
	Weeks       []Week       `json:"weeks"`
	MonthLabels []MonthLabel `json:"month_labels"`
	MaxValue    int          `json:"max_value"`
	Mode        string       `json:"mode"`
}

// IndexFunc maps a non-zero cell value and the maximum observed value to an
// index into the color palette.
type IndexFunc func(value, maxValue int) int

type aggregator struct {
	colors     []string
	emptyColor string
	indexFn    IndexFunc
}

// Option applies a configuration option to the aggregator.
type Option func(*aggregator)

// WithColors sets the palette used for non-zero cells.
func WithColors(colors []string) Option {
	return func(a *aggregator) {
		if len(colors) > 0 {
			a.colors = colors
		}
	}
}

// WithEmptyColor sets the color for in-range zero-value cells.
func WithEmptyColor(color string) Option {
	return func(a *aggregator) {
		if color != "" {
			a.emptyColor = color
		}
	}
}

// WithColorIndex overrides the default ratio-based color index derivation.
func WithColorIndex(fn IndexFunc) Option {
	return func(a *aggregator) {
		if fn != nil {
			a.indexFn = fn
		}
	}
}

// DefaultCountColors is the count-mode palette, lightest to darkest.
func DefaultCountColors() []string {
	return []string{"#9be9a8", "#40c463", "#30a14e", "#216e39"}
}

func difficultyColors() []string {
	colors := make([]string, difficulty.Levels)
	for lvl := 1; lvl <= difficulty.Levels; lvl++ {
		colors[lvl-1] = difficulty.Color(lvl)
	}
	return colors
}

// defaultIndex scales value linearly against the observed maximum and
// clamps into the palette.
func defaultIndex(value, maxValue, numColors int) int {
	if maxValue <= 0 {
		return 0
	}
	idx := value * numColors / maxValue
	if idx > numColors-1 {
		idx = numColors - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Fold reduces records to a per-date value map. Only dates with at least
// one qualifying record appear; time-of-day is dropped.
func Fold(records []model.SolvedProblem, mode Mode) map[string]int {
	values := make(map[string]int)
	switch mode {
	case ModeMaxDifficulty:
		maxByDate := make(map[string]int)
		for _, p := range records {
			r, err := strconv.Atoi(p.Difficulty)
			if err != nil {
				continue
			}
			date := p.SolvedDate()
			if r > maxByDate[date] {
				maxByDate[date] = r
			}
		}
		for date, r := range maxByDate {
			values[date] = difficulty.Level(r)
		}
	default:
		for _, p := range records {
			values[p.SolvedDate()]++
		}
	}
	return values
}

// WeekStart rounds a date back to the Sunday of its week.
func WeekStart(d time.Time) time.Time {
	d = truncateToDay(d)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func truncateToDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// Aggregate builds the calendar grid for records over [start, end].
func Aggregate(records []model.SolvedProblem, start, end time.Time, mode Mode, opts ...Option) Grid {
	a := &aggregator{
		colors:     DefaultCountColors(),
		emptyColor: difficulty.NeutralColor,
	}
	if mode == ModeMaxDifficulty {
		a.colors = difficultyColors()
		// Cell values are severity levels already; the level is the index.
		a.indexFn = func(value, _ int) int { return value - 1 }
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.indexFn == nil {
		a.indexFn = func(value, maxValue int) int {
			return defaultIndex(value, maxValue, len(a.colors))
		}
	}

	startDay := truncateToDay(start)
	endDay := truncateToDay(end)
	values := Fold(records, mode)

	maxValue := 0
	for _, v := range values {
		if v > maxValue {
			maxValue = v
		}
	}

	weeks := buildWeeks(WeekStart(startDay), startDay, endDay)
	for wi := range weeks {
		for di := range weeks[wi] {
			cell := &weeks[wi][di]
			if !cell.InRange {
				continue
			}
			cell.Value = values[cell.Date]
			cell.Color = a.colorFor(cell.Value, maxValue)
		}
	}

	return Grid{
		Weeks:       weeks,
		MonthLabels: monthAnchors(weeks),
		MaxValue:    maxValue,
		Mode:        mode.String(),
	}
}

func (a *aggregator) colorFor(value, maxValue int) string {
	if value == 0 {
		return a.emptyColor
	}
	idx := a.indexFn(value, maxValue)
	if idx >= len(a.colors) {
		idx = len(a.colors) - 1
	}
	if idx < 0 {
		return a.emptyColor
	}
	return a.colors[idx]
}

// buildWeeks lays out consecutive 7-day weeks covering [gridStart, endDay],
// marking each day's range membership. Pure date math; no values yet.
func buildWeeks(gridStart, startDay, endDay time.Time) []Week {
	var weeks []Week
	cur := gridStart
	for !cur.After(endDay) {
		week := make(Week, DaysPerWeek)
		for i := 0; i < DaysPerWeek; i++ {
			week[i] = Cell{
				Date:    cur.Format("2006-01-02"),
				InRange: !cur.Before(startDay) && !cur.After(endDay),
			}
			cur = cur.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// monthAnchors emits one label per month transition, anchored at the week
// whose first in-range day enters the new month. The first week with any
// in-range day always emits a label.
func monthAnchors(weeks []Week) []MonthLabel {
	var labels []MonthLabel
	prevMonth := ""
	for wi, week := range weeks {
		for _, cell := range week {
			if !cell.InRange {
				continue
			}
			month := cell.Date[5:7]
			if month != prevMonth {
				prevMonth = month
				idx, _ := strconv.Atoi(month)
				labels = append(labels, MonthLabel{
					Label:     monthNames[idx-1],
					WeekIndex: wi,
				})
			}
			break
		}
	}
	return labels
}
