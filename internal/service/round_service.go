package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/greenside/greenside/internal/models"
	"github.com/greenside/greenside/internal/round"
	"github.com/greenside/greenside/internal/storage"
)

// ErrNoLiveRound is returned by scorecard operations when the user has no
// round underway in memory. Persisted rounds may still exist for resume.
var ErrNoLiveRound = errors.New("no live round")

// RoundService orchestrates live rounds: one in-memory session per user,
// backed by the persisted active-round store for pause/resume. Different
// users' sessions share nothing; per-user serialization is provided by
// the session itself.
type RoundService struct {
	store    storage.Store
	debounce time.Duration

	mu       sync.Mutex
	sessions map[string]*round.Session
}

// NewRoundService creates a RoundService persisting through store and
// autosaving with the given debounce window.
func NewRoundService(store storage.Store, debounce time.Duration) *RoundService {
	if debounce <= 0 {
		debounce = round.DefaultDebounce
	}
	return &RoundService{
		store:    store,
		debounce: debounce,
		sessions: make(map[string]*round.Session),
	}
}

// RoundView is the scorecard payload handlers serve to the UI.
type RoundView struct {
	RoundID      string             `json:"round_id"`
	CourseID     string             `json:"course_id"`
	CourseName   string             `json:"course_name"`
	CourseHoles  int                `json:"course_holes"`
	CoursePar    int                `json:"course_par"`
	Holes        []models.HoleScore `json:"holes"`
	TotalStrokes int                `json:"total_strokes"`
	TotalPar     int                `json:"total_par"`
	ScoreToPar   int                `json:"score_to_par"`
	FilledHoles  int                `json:"filled_holes"`
}

// session returns the user's live session, creating a fresh one when none
// exists or the previous one already reached a terminal state.
func (s *RoundService) session(userID string) *round.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if ok {
		state := sess.State()
		if state != round.StateCompleted && state != round.StateDiscarded {
			return sess
		}
	}
	sess = round.NewSession(userID, s.store, s.store,
		round.WithFlushScheduler(round.NewTimerScheduler(s.debounce)))
	s.sessions[userID] = sess
	return sess
}

// live returns the user's session only if a round is actually underway.
func (s *RoundService) live(userID string) (*round.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok || sess.State() != round.StateInProgress {
		return nil, ErrNoLiveRound
	}
	return sess, nil
}

func (s *RoundService) drop(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Start begins a new round on one of the user's courses. A round already
// underway that has been persisted at least once is flushed and kept
// resumable; an unsaved one is replaced.
func (s *RoundService) Start(ctx context.Context, userID, courseID string) (*RoundView, error) {
	course, err := s.store.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.UserID != userID {
		return nil, storage.ErrNotFound
	}

	sess := s.session(userID)
	if err := sess.SelectCourse(ctx, *course); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// Resume reopens a persisted round exactly as stored. The course record
// is consulted for the official ratings; if it was deleted in the
// meantime the round still resumes and completes with the simple method.
func (s *RoundService) Resume(ctx context.Context, userID, roundID string) (*RoundView, error) {
	persisted, err := s.store.GetActiveRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if persisted.UserID != userID {
		return nil, storage.ErrNotFound
	}

	course, err := s.store.GetCourse(ctx, persisted.CourseID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	sess := s.session(userID)
	if err := sess.Resume(ctx, *persisted, course); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// ListResumable returns the user's persisted in-progress rounds.
func (s *RoundService) ListResumable(ctx context.Context, userID string) ([]models.ActiveRound, error) {
	return s.store.ListActiveRounds(ctx, userID)
}

// Current returns the live scorecard.
func (s *RoundService) Current(userID string) (*RoundView, error) {
	sess, err := s.live(userID)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// EnterStroke records (or clears, with nil) the strokes for a hole and
// returns the updated scorecard.
func (s *RoundService) EnterStroke(userID string, hole int, strokes *int) (*RoundView, error) {
	sess, err := s.live(userID)
	if err != nil {
		return nil, err
	}
	if err := sess.EnterStroke(hole, strokes); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// Pause flushes and closes the live scorecard, keeping the persisted
// round for a later Resume.
func (s *RoundService) Pause(ctx context.Context, userID string) error {
	sess, err := s.live(userID)
	if err != nil {
		return err
	}
	return sess.Pause(ctx)
}

// Complete finalizes the live round into a saved score.
func (s *RoundService) Complete(ctx context.Context, userID, date string) (*models.Score, error) {
	sess, err := s.live(userID)
	if err != nil {
		return nil, err
	}
	score, err := sess.Complete(ctx, date)
	if err != nil && score == nil {
		return nil, err
	}
	// Terminal either way; the session object is spent.
	s.drop(userID)
	if err != nil {
		return score, fmt.Errorf("round completed with cleanup failure: %w", err)
	}
	return score, nil
}

// Discard deletes the live round without a score.
func (s *RoundService) Discard(ctx context.Context, userID string) error {
	sess, err := s.live(userID)
	if err != nil {
		return err
	}
	if err := sess.Discard(ctx); err != nil {
		return err
	}
	s.drop(userID)
	return nil
}

// Shutdown flushes every live session's pending entries so nothing
// typed in the last debounce window is lost on process exit.
func (s *RoundService) Shutdown(ctx context.Context) {
	s.mu.Lock()
	sessions := make([]*round.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		if sess.State() != round.StateInProgress {
			continue
		}
		if err := sess.FlushNow(ctx); err != nil {
			slog.Warn("Failed to flush round on shutdown", "error", err)
		}
	}
}

func (s *RoundService) view(sess *round.Session) *RoundView {
	snap := sess.Snapshot()
	if snap == nil {
		return nil
	}
	strokes, par, filledHoles := sess.Totals()
	return &RoundView{
		RoundID:      snap.ID,
		CourseID:     snap.CourseID,
		CourseName:   snap.CourseName,
		CourseHoles:  snap.CourseHoles,
		CoursePar:    snap.CoursePar,
		Holes:        snap.Holes,
		TotalStrokes: strokes,
		TotalPar:     par,
		ScoreToPar:   strokes - par,
		FilledHoles:  filledHoles,
	}
}
