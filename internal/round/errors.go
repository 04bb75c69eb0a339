package round

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCourseSelected is returned by operations that require an
	// in-progress round.
	ErrNoCourseSelected = errors.New("no course selected")

	// ErrRoundFinished is returned when operating on a session that has
	// already been completed or discarded.
	ErrRoundFinished = errors.New("round already finished")

	// ErrInvalidHole is returned when a stroke entry names a hole outside
	// the scorecard.
	ErrInvalidHole = errors.New("hole number out of range")

	// ErrInvalidStrokes is returned when a stroke entry is not a positive
	// number.
	ErrInvalidStrokes = errors.New("strokes must be at least 1")

	// ErrInvalidDate is returned when a completion date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
)

// IncompleteRoundError reports a completion attempt with unfilled holes.
// Remaining is the number of holes still missing a stroke entry, so the
// caller can tell the user exactly how much of the round is left.
type IncompleteRoundError struct {
	Remaining int
}

func (e *IncompleteRoundError) Error() string {
	return fmt.Sprintf("round incomplete: %d holes missing strokes", e.Remaining)
}
