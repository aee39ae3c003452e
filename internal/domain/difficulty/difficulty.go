// Package difficulty buckets a Codeforces-scale rating into discrete
// severity levels with a fixed display color per level.
package difficulty

// Levels is the number of severity levels. Level 0 means "no data" and is
// not produced by Level; it only exists for the neutral color.
const Levels = 7

// Rating breakpoints; a rating below breakpoints[i] maps to level i+1.
var breakpoints = [Levels - 1]int{1200, 1400, 1600, 1900, 2100, 2400}

// NeutralColor is used for level 0 (no data).
const NeutralColor = "#ebedf0"

var colors = [Levels + 1]string{
	NeutralColor,
	"#9ca3af", // gray
	"#22c55e", // green
	"#06b6d4", // cyan
	"#3b82f6", // blue
	"#a855f7", // purple
	"#f97316", // orange
	"#ef4444", // red
}

// Level maps a rating to a severity level in [1, Levels]. Total and
// order-preserving: r1 < r2 implies Level(r1) <= Level(r2).
func Level(rating int) int {
	for i, b := range breakpoints {
		if rating < b {
			return i + 1
		}
	}
	return Levels
}

// Color returns the display color for a level. Out-of-range levels fall
// back to the neutral color.
func Color(level int) string {
	if level < 0 || level > Levels {
		return NeutralColor
	}
	return colors[level]
}
