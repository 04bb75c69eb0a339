package models

// Score represents a completed, finalized round.
//
// Exactly one of ScoreDifferential and SimpleHandicap is non-nil: the WHS
// score differential when the course was rated at completion time, the
// simple handicap otherwise.
type Score struct {
	// ID is the unique identifier for the score (UUID format).
	ID string `json:"id"`

	// UserID is the user who played the round.
	UserID string `json:"user_id"`

	// CourseID is the course the round was played on.
	CourseID string `json:"course_id"`

	// Total is the total stroke count for the round.
	Total int `json:"total"`

	// Date is the day the round was played, ISO format (YYYY-MM-DD).
	Date string `json:"date"`

	// ScoreDifferential is the WHS-method handicap figure, nil when the
	// simple method was used.
	ScoreDifferential *float64 `json:"score_differential"`

	// SimpleHandicap is the fallback handicap figure for unrated courses,
	// nil when the WHS method was used.
	SimpleHandicap *float64 `json:"simple_handicap"`

	// CreatedAt is the Unix timestamp when the score was recorded.
	CreatedAt int64 `json:"created_at"`
}

// Handicap returns whichever handicap figure is set.
func (s Score) Handicap() float64 {
	if s.ScoreDifferential != nil {
		return *s.ScoreDifferential
	}
	if s.SimpleHandicap != nil {
		return *s.SimpleHandicap
	}
	return 0
}

// ScoreWithCourse is a Score joined with the display fields of its course,
// as listed on the dashboard.
type ScoreWithCourse struct {
	Score
	CourseName  string `json:"course_name"`
	CourseHoles int    `json:"course_holes"`
	CoursePar   int    `json:"course_par"`
}
