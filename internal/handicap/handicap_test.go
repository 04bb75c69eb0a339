package handicap

import (
	"math"
	"testing"

	"github.com/greenside/greenside/internal/models"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		total        int
		course       models.Course
		wantDiff     *float64
		wantSimple   *float64
	}{
		{
			name:       "unrated 18-hole course uses simple method",
			total:      85,
			course:     models.Course{Holes: 18, Par: 72},
			wantSimple: fptr(13.0),
		},
		{
			name:     "rated course uses WHS method",
			total:    85,
			course:   models.Course{Holes: 18, Par: 72, CourseRating: fptr(72.5), SlopeRating: iptr(130)},
			wantDiff: fptr(10.9), // (85 - 72.5) * 113 / 130 = 10.865..., rounds up
		},
		{
			name:       "unrated 9-hole course scales to 18 holes",
			total:      50,
			course:     models.Course{Holes: 9, Par: 36},
			wantSimple: fptr(28.0),
		},
		{
			name:       "course rating without slope rating falls back to simple",
			total:      85,
			course:     models.Course{Holes: 18, Par: 72, CourseRating: fptr(72.5)},
			wantSimple: fptr(13.0),
		},
		{
			name:       "slope rating without course rating falls back to simple",
			total:      85,
			course:     models.Course{Holes: 18, Par: 72, SlopeRating: iptr(130)},
			wantSimple: fptr(13.0),
		},
		{
			name:     "score below course rating gives negative differential",
			total:    70,
			course:   models.Course{Holes: 18, Par: 72, CourseRating: fptr(72.5), SlopeRating: iptr(113)},
			wantDiff: fptr(-2.5),
		},
		{
			name:       "score below par gives negative simple handicap",
			total:      70,
			course:     models.Course{Holes: 18, Par: 72},
			wantSimple: fptr(-2.0),
		},
		{
			name:     "result rounded to one decimal place",
			total:    90,
			course:   models.Course{Holes: 18, Par: 72, CourseRating: fptr(71.3), SlopeRating: iptr(123)},
			wantDiff: fptr(17.2), // (90 - 71.3) * 113 / 123 = 17.178...
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.total, tt.course)

			if (got.ScoreDifferential == nil) != (tt.wantDiff == nil) {
				t.Fatalf("ScoreDifferential = %v, want %v", got.ScoreDifferential, tt.wantDiff)
			}
			if (got.SimpleHandicap == nil) != (tt.wantSimple == nil) {
				t.Fatalf("SimpleHandicap = %v, want %v", got.SimpleHandicap, tt.wantSimple)
			}
			if got.ScoreDifferential != nil && got.SimpleHandicap != nil {
				t.Fatal("both handicap figures set, want exactly one")
			}

			if tt.wantDiff != nil && math.Abs(*got.ScoreDifferential-*tt.wantDiff) > 1e-9 {
				t.Errorf("ScoreDifferential = %v, want %v", *got.ScoreDifferential, *tt.wantDiff)
			}
			if tt.wantSimple != nil && math.Abs(*got.SimpleHandicap-*tt.wantSimple) > 1e-9 {
				t.Errorf("SimpleHandicap = %v, want %v", *got.SimpleHandicap, *tt.wantSimple)
			}
		})
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	course := models.Course{Holes: 18, Par: 72, CourseRating: fptr(72.5), SlopeRating: iptr(130)}

	first := Compute(85, course)
	second := Compute(85, course)

	if *first.ScoreDifferential != *second.ScoreDifferential {
		t.Errorf("repeated calls differ: %v vs %v", *first.ScoreDifferential, *second.ScoreDifferential)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{10.865, 10.9},
		{10.84, 10.8},
		{13.0, 13.0},
		{-2.45, -2.5}, // half away from zero
		{0.05, 0.1},
	}

	for _, tt := range tests {
		if got := Round1(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
