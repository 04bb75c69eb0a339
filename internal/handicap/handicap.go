// Package handicap computes the handicap figure for a completed round.
//
// Two mutually exclusive methods exist. Courses with both a course rating
// and a slope rating use the official WHS formula; every other course
// falls back to a simple 18-hole scaling. All results are rounded to one
// decimal place.
package handicap

import (
	"math"

	"github.com/greenside/greenside/internal/models"
)

// Result is the outcome of a handicap calculation. Exactly one field is
// non-nil.
type Result struct {
	// ScoreDifferential is the WHS-method figure:
	// (total - courseRating) * 113 / slopeRating.
	ScoreDifferential *float64

	// SimpleHandicap is the unrated-course figure:
	// (total - par) * 18 / holes.
	SimpleHandicap *float64
}

// Compute calculates the handicap figure for a total score on a course.
//
// The WHS method requires both ratings; a course with only one of the two
// is treated as unrated. Pure function: no state, no I/O. The caller
// guarantees holes >= 1 and, when present, slopeRating != 0 (course
// validation enforces both at creation time).
func Compute(total int, course models.Course) Result {
	if course.Rated() {
		diff := round1((float64(total) - *course.CourseRating) * 113 / float64(*course.SlopeRating))
		return Result{ScoreDifferential: &diff}
	}

	simple := round1(float64(total-course.Par) * 18 / float64(course.Holes))
	return Result{SimpleHandicap: &simple}
}

// Round1 rounds to one decimal place, half away from zero. Exported for
// the stats aggregation, which reports averages at the same precision.
func Round1(v float64) float64 {
	return round1(v)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
