// Package round implements the live scorecard: a state machine covering
// course selection, per-hole stroke entry with debounced autosave,
// pause/resume of persisted rounds, and the transition to a finalized
// score or to deletion.
//
// A session is driven by one caller at a time; the only asynchronous
// element is the debounced autosave callback, so a mutex guards the
// session state. A round always ends in exactly one terminal state:
// saved as a completed score, or discarded.
package round

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/greenside/greenside/internal/handicap"
	"github.com/greenside/greenside/internal/metrics"
	"github.com/greenside/greenside/internal/models"
	"github.com/greenside/greenside/internal/storage"
)

// DefaultDebounce is the autosave debounce window: stroke entries within
// this window of each other collapse into a single write.
const DefaultDebounce = time.Second

const persistAttempts = 3

// Store is the round persistence collaborator.
type Store interface {
	UpsertActiveRound(ctx context.Context, round *models.ActiveRound) error
	DeleteActiveRound(ctx context.Context, roundID string) error
}

// ScoreSink receives the completed score produced by a finished round.
type ScoreSink interface {
	InsertScore(ctx context.Context, score *models.Score) error
}

// State identifies where a session is in its lifecycle.
type State int

const (
	// StateNoCourse means no round is underway in memory. A persisted
	// round may still exist for later resume.
	StateNoCourse State = iota

	// StateInProgress means a course is selected and strokes are being
	// entered.
	StateInProgress

	// StateCompleted is terminal: the score was inserted and the
	// persisted round deleted.
	StateCompleted

	// StateDiscarded is terminal: the round was deleted without a score.
	StateDiscarded
)

func (s State) String() string {
	switch s {
	case StateNoCourse:
		return "no_course"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	case StateDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// Session is a single user's live round.
type Session struct {
	userID  string
	store   Store
	sink    ScoreSink
	flusher FlushScheduler

	retryDelay time.Duration

	mu           sync.Mutex
	state        State
	current      *models.ActiveRound
	courseRating *float64
	slopeRating  *int
	dirty        bool
}

// Option configures a Session.
type Option func(*Session)

// WithFlushScheduler replaces the wall-clock autosave scheduler, used by
// tests to fire flushes deterministically.
func WithFlushScheduler(f FlushScheduler) Option {
	return func(s *Session) { s.flusher = f }
}

// WithRetryDelay sets the pause between persistence retry attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(s *Session) { s.retryDelay = d }
}

// NewSession creates a session in StateNoCourse.
func NewSession(userID string, store Store, sink ScoreSink, opts ...Option) *Session {
	s := &Session{
		userID:     userID,
		store:      store,
		sink:       sink,
		flusher:    NewTimerScheduler(DefaultDebounce),
		retryDelay: 100 * time.Millisecond,
		state:      StateNoCourse,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectCourse starts a fresh round on the course. A prior selection
// that was never persisted is replaced outright; one that already holds
// a persisted identity is flushed first so it stays resumable. Persisted
// rounds for other courses are untouched (resuming those is a separate
// action).
//
// Per-hole par is the course par divided evenly across the holes, rounded
// half up and applied uniformly; the per-hole pars may not sum exactly to
// the course par when it does not divide evenly. Accepted, not corrected.
func (s *Session) SelectCourse(ctx context.Context, course models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateCompleted || s.state == StateDiscarded {
		return ErrRoundFinished
	}
	if err := s.stashCurrentLocked(ctx); err != nil {
		return err
	}

	parPerHole := int(math.Round(float64(course.Par) / float64(course.Holes)))
	holes := make([]models.HoleScore, course.Holes)
	for i := range holes {
		holes[i] = models.HoleScore{Hole: i + 1, Par: parPerHole}
	}

	s.current = &models.ActiveRound{
		UserID:      s.userID,
		CourseID:    course.ID,
		CourseName:  course.Name,
		CourseHoles: course.Holes,
		CoursePar:   course.Par,
		Holes:       holes,
		CreatedAt:   time.Now().Unix(),
	}
	s.courseRating = course.CourseRating
	s.slopeRating = course.SlopeRating
	s.state = StateInProgress
	s.dirty = true

	slog.Info("Round started",
		"user_id", s.userID,
		"course_id", course.ID,
		"holes", course.Holes,
		"par_per_hole", parPerHole,
	)
	return nil
}

// Resume loads a persisted round verbatim: the stored course snapshot and
// hole entries are authoritative, nothing is recomputed. course is the
// current course record, consulted only for the official ratings at
// completion time; pass nil when the course record no longer exists, in
// which case completion falls back to the simple method.
func (s *Session) Resume(ctx context.Context, persisted models.ActiveRound, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateCompleted || s.state == StateDiscarded {
		return ErrRoundFinished
	}
	if err := s.stashCurrentLocked(ctx); err != nil {
		return err
	}

	copied := persisted
	copied.Holes = append([]models.HoleScore(nil), persisted.Holes...)
	s.current = &copied
	s.courseRating = nil
	s.slopeRating = nil
	if course != nil {
		s.courseRating = course.CourseRating
		s.slopeRating = course.SlopeRating
	}
	s.state = StateInProgress
	s.dirty = false

	slog.Info("Round resumed",
		"user_id", s.userID,
		"round_id", persisted.ID,
		"course_id", persisted.CourseID,
		"filled_holes", filled(copied.Holes),
	)
	return nil
}

// EnterStroke records the stroke count for a hole; nil clears the entry.
// The write to the store is debounced: the persisted copy catches up at
// most one debounce window after the last entry.
func (s *Session) EnterStroke(hole int, strokes *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrNoCourseSelected
	}
	if hole < 1 || hole > s.current.CourseHoles {
		return fmt.Errorf("%w: hole %d of %d", ErrInvalidHole, hole, s.current.CourseHoles)
	}
	if strokes != nil && *strokes < 1 {
		return ErrInvalidStrokes
	}

	s.current.Holes[hole-1].Strokes = strokes
	s.dirty = true
	s.scheduleFlushLocked()
	return nil
}

// Pause returns the session to StateNoCourse without deleting the
// persisted round: a paused round stays fetchable for a later Resume.
// Pending autosave state is flushed synchronously first, so the persisted
// copy reflects the last entries. On a flush failure the round stays
// in progress with every entry intact.
func (s *Session) Pause(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrNoCourseSelected
	}
	s.flusher.Stop()
	if s.dirty {
		if err := s.flushLocked(ctx); err != nil {
			s.scheduleFlushLocked() // keep trying in the background
			return err
		}
	}

	slog.Info("Round paused", "user_id", s.userID, "round_id", s.current.ID)
	s.current = nil
	s.courseRating = nil
	s.slopeRating = nil
	s.state = StateNoCourse
	return nil
}

// Complete finalizes the round. Every hole must have a stroke entry;
// otherwise an IncompleteRoundError names how many are missing and the
// session stays in progress. The handicap is computed from the frozen
// course snapshot plus the ratings captured at selection or resume time,
// the score is inserted, and the persisted round is deleted.
//
// A debounced autosave still pending when Complete runs cannot race it:
// the pending flush is cancelled and the score is built from the
// in-memory entries, which are always the latest state.
func (s *Session) Complete(ctx context.Context, date string) (*models.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return nil, ErrNoCourseSelected
	}
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, ErrInvalidDate
		}
	}
	if missing := s.current.CourseHoles - filled(s.current.Holes); missing > 0 {
		return nil, &IncompleteRoundError{Remaining: missing}
	}

	// In-memory state supersedes whatever the debounced write would have
	// persisted.
	s.flusher.Stop()

	total := 0
	for _, h := range s.current.Holes {
		total += *h.Strokes
	}

	course := models.Course{
		ID:           s.current.CourseID,
		Holes:        s.current.CourseHoles,
		Par:          s.current.CoursePar,
		CourseRating: s.courseRating,
		SlopeRating:  s.slopeRating,
	}
	result := handicap.Compute(total, course)

	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	score := &models.Score{
		UserID:            s.userID,
		CourseID:          s.current.CourseID,
		Total:             total,
		Date:              date,
		ScoreDifferential: result.ScoreDifferential,
		SimpleHandicap:    result.SimpleHandicap,
	}

	if err := s.withRetry(ctx, func(ctx context.Context) error {
		return s.sink.InsertScore(ctx, score)
	}); err != nil {
		// Entries stay in memory; the user can retry.
		return nil, fmt.Errorf("failed to save score: %w", err)
	}

	method := "simple"
	if result.ScoreDifferential != nil {
		method = "whs"
	}
	metrics.RoundsCompleted.WithLabelValues(method).Inc()
	slog.Info("Round completed",
		"user_id", s.userID,
		"round_id", s.current.ID,
		"course_id", s.current.CourseID,
		"total", total,
		"method", method,
	)

	roundID := s.current.ID
	s.current = nil
	s.courseRating = nil
	s.slopeRating = nil
	s.state = StateCompleted

	// The score is durable; a failure to clean up the live copy must not
	// undo the completion. ErrNotFound means it was already gone.
	if roundID != "" {
		err := s.withRetry(ctx, func(ctx context.Context) error {
			if err := s.store.DeleteActiveRound(ctx, roundID); err != nil && !errors.Is(err, storage.ErrNotFound) {
				return err
			}
			return nil
		})
		if err != nil {
			return score, fmt.Errorf("score saved but failed to clear live round: %w", err)
		}
	}

	return score, nil
}

// Discard deletes the round without emitting a score. Terminal.
func (s *Session) Discard(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrNoCourseSelected
	}
	s.flusher.Stop()

	if s.current.ID != "" {
		err := s.withRetry(ctx, func(ctx context.Context) error {
			if err := s.store.DeleteActiveRound(ctx, s.current.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
				return err
			}
			return nil
		})
		if err != nil {
			// Stay in progress so nothing is silently lost.
			return fmt.Errorf("failed to delete round: %w", err)
		}
	}

	slog.Info("Round discarded", "user_id", s.userID, "round_id", s.current.ID)
	s.current = nil
	s.courseRating = nil
	s.slopeRating = nil
	s.state = StateDiscarded
	s.dirty = false
	return nil
}

// FlushNow persists the current entries immediately, cancelling any
// pending debounced write.
func (s *Session) FlushNow(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrNoCourseSelected
	}
	s.flusher.Stop()
	return s.flushLocked(ctx)
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a copy of the in-memory round, or nil outside
// StateInProgress.
func (s *Session) Snapshot() *models.ActiveRound {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	copied.Holes = append([]models.HoleScore(nil), s.current.Holes...)
	return &copied
}

// Totals returns the running stroke total, the scorecard par total and
// the number of holes with an entry.
func (s *Session) Totals() (strokes, par, filledHoles int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0, 0, 0
	}
	for _, h := range s.current.Holes {
		par += h.Par
		if h.Strokes != nil {
			strokes += *h.Strokes
			filledHoles++
		}
	}
	return strokes, par, filledHoles
}

// stashCurrentLocked flushes a previously persisted selection before it
// is replaced in memory, keeping it resumable. A selection that never
// acquired a persisted identity is simply dropped.
func (s *Session) stashCurrentLocked(ctx context.Context) error {
	if s.current == nil {
		return nil
	}
	s.flusher.Stop()
	if s.current.ID != "" && s.dirty {
		if err := s.flushLocked(ctx); err != nil {
			return err
		}
	}
	s.current = nil
	s.dirty = false
	return nil
}

// scheduleFlushLocked arms the debounce timer. Rearming cancels the
// previous timer, so rapid entries coalesce into one write.
func (s *Session) scheduleFlushLocked() {
	s.flusher.Schedule(s.backgroundFlush)
}

// backgroundFlush is the debounce callback. A failure here is logged and
// the state stays dirty; the next entry or the pre-complete write-through
// picks it up.
func (s *Session) backgroundFlush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress || !s.dirty {
		return
	}
	if err := s.flushLocked(context.Background()); err != nil {
		slog.Warn("Autosave failed, entries kept in memory",
			"user_id", s.userID,
			"round_id", s.current.ID,
			"error", err,
		)
	}
}

// flushLocked upserts the full round state. The store assigns the round
// ID on the first write; it is bound into the session so every later
// write updates the same record.
func (s *Session) flushLocked(ctx context.Context) error {
	err := s.withRetry(ctx, func(ctx context.Context) error {
		return s.store.UpsertActiveRound(ctx, s.current)
	})
	if err != nil {
		return fmt.Errorf("failed to persist round: %w", err)
	}
	s.dirty = false
	metrics.AutosaveFlushes.Inc()
	return nil
}

// withRetry runs op up to persistAttempts times, pausing retryDelay
// between attempts.
func (s *Session) withRetry(ctx context.Context, op func(context.Context) error) error {
	var err error
	for attempt := 1; attempt <= persistAttempts; attempt++ {
		if err = op(ctx); err == nil {
			return nil
		}
		if attempt == persistAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retryDelay):
		}
	}
	return err
}

func filled(holes []models.HoleScore) int {
	n := 0
	for _, h := range holes {
		if h.Strokes != nil {
			n++
		}
	}
	return n
}
