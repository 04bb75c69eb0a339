package models

// HoleScore is one hole on an active round's scorecard.
type HoleScore struct {
	// Hole is the hole number, 1-based, unique within a round.
	Hole int `json:"hole"`

	// Par is the par assigned to this hole at round start. Frozen: it is
	// never recomputed from the course record afterwards.
	Par int `json:"par"`

	// Strokes is the entered stroke count, nil while the hole has not been
	// played yet.
	Strokes *int `json:"strokes"`
}

// ActiveRound is a persisted in-progress round. It is created on the first
// autosave after course selection, updated on every subsequent autosave,
// and deleted when the round is completed or discarded.
//
// The course name, hole count and par are denormalized here so a paused
// round survives later edits to the course record.
type ActiveRound struct {
	// ID is assigned by the store on first insert (UUID format). Empty
	// until the round has been persisted once.
	ID string `json:"id"`

	// UserID is the user playing the round.
	UserID string `json:"user_id"`

	// CourseID references the course record the snapshot was taken from.
	CourseID string `json:"course_id"`

	// CourseName, CourseHoles and CoursePar are the course snapshot frozen
	// at round start.
	CourseName  string `json:"course_name"`
	CourseHoles int    `json:"course_holes"`
	CoursePar   int    `json:"course_par"`

	// Holes is the ordered scorecard, exactly CourseHoles entries numbered
	// 1..CourseHoles.
	Holes []HoleScore `json:"holes"`

	// CreatedAt is the Unix timestamp of course selection.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last autosave.
	UpdatedAt int64 `json:"updated_at"`
}
