package models

// Course represents a golf course owned by one user.
//
// A course is either "rated" (both CourseRating and SlopeRating set) or
// "unrated". Handicap calculation treats a course with only one of the two
// as unrated and falls back to the simple method.
type Course struct {
	// ID is the unique identifier for the course (UUID format).
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"user_id"`

	// Name is the display name of the course (e.g., "Smørum Pay & Play").
	Name string `json:"name"`

	// Holes is the number of holes, typically 9 or 18. Always >= 1.
	Holes int `json:"holes"`

	// Par is the total par across all holes. Always >= 1.
	Par int `json:"par"`

	// CourseRating is the official WHS course rating, nil for unrated
	// courses.
	CourseRating *float64 `json:"course_rating"`

	// SlopeRating is the official WHS slope rating in [55, 155], nil for
	// unrated courses.
	SlopeRating *int `json:"slope_rating"`

	// CreatedAt is the Unix timestamp when the course was created.
	CreatedAt int64 `json:"created_at"`
}

// Rated reports whether the course carries both official ratings.
func (c Course) Rated() bool {
	return c.CourseRating != nil && c.SlopeRating != nil
}
