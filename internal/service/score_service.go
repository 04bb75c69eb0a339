package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/greenside/greenside/internal/handicap"
	"github.com/greenside/greenside/internal/metrics"
	"github.com/greenside/greenside/internal/models"
	"github.com/greenside/greenside/internal/storage"
)

// ErrInvalidScore wraps score validation failures so handlers can map
// them to a 400.
var ErrInvalidScore = errors.New("invalid score")

// recentScoresLimit is how many rounds the dashboard shows by default.
const recentScoresLimit = 5

// ScoreService records completed scores and aggregates handicap
// statistics.
type ScoreService struct {
	store storage.Store
}

// NewScoreService creates a new ScoreService with the given storage
// backend.
func NewScoreService(store storage.Store) *ScoreService {
	return &ScoreService{store: store}
}

// Preview computes the handicap a score would receive on a course,
// without persisting anything. Used by the add-score form to show the
// figure as the user types.
func (s *ScoreService) Preview(ctx context.Context, userID, courseID string, total int) (handicap.Result, error) {
	if total < 1 {
		return handicap.Result{}, fmt.Errorf("%w: total must be at least 1", ErrInvalidScore)
	}
	course, err := s.store.GetCourse(ctx, courseID)
	if err != nil {
		return handicap.Result{}, err
	}
	if course.UserID != userID {
		return handicap.Result{}, storage.ErrNotFound
	}
	return handicap.Compute(total, *course), nil
}

// Record validates and persists a manually entered score, computing its
// handicap figure from the course as it stands today.
func (s *ScoreService) Record(ctx context.Context, userID, courseID string, total int, date string) (*models.Score, error) {
	if total < 1 {
		return nil, fmt.Errorf("%w: total must be at least 1", ErrInvalidScore)
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidScore)
	}

	course, err := s.store.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.UserID != userID {
		return nil, storage.ErrNotFound
	}

	result := handicap.Compute(total, *course)
	score := &models.Score{
		UserID:            userID,
		CourseID:          courseID,
		Total:             total,
		Date:              date,
		ScoreDifferential: result.ScoreDifferential,
		SimpleHandicap:    result.SimpleHandicap,
	}
	if err := s.store.InsertScore(ctx, score); err != nil {
		return nil, fmt.Errorf("failed to record score: %w", err)
	}

	metrics.ScoresRecorded.Inc()
	return score, nil
}

// List returns the user's scores, newest first, joined with course
// display fields. limit <= 0 applies the dashboard default.
func (s *ScoreService) List(ctx context.Context, userID string, limit int) ([]models.ScoreWithCourse, error) {
	if limit <= 0 {
		limit = recentScoresLimit
	}
	return s.store.ListScores(ctx, userID, limit)
}

// Stats summarizes the user's handicap history for the dashboard.
type Stats struct {
	// LatestHandicap is the figure from the most recent round, nil with
	// no rounds on record.
	LatestHandicap *float64 `json:"latest_handicap"`

	// BestHandicap is the lowest figure on record.
	BestHandicap *float64 `json:"best_handicap"`

	// AverageHandicap is the mean figure across all rounds, rounded to
	// one decimal place like every other handicap in the system.
	AverageHandicap *float64 `json:"average_handicap"`

	// TotalRounds counts all recorded rounds.
	TotalRounds int `json:"total_rounds"`
}

// GetStats aggregates all of the user's scores.
func (s *ScoreService) GetStats(ctx context.Context, userID string) (*Stats, error) {
	scores, err := s.store.ListScores(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}
	if len(scores) == 0 {
		return &Stats{}, nil
	}

	latest := scores[0].Handicap()
	best := latest
	sum := 0.0
	for _, sc := range scores {
		h := sc.Handicap()
		if h < best {
			best = h
		}
		sum += h
	}
	avg := handicap.Round1(sum / float64(len(scores)))

	return &Stats{
		LatestHandicap:  &latest,
		BestHandicap:    &best,
		AverageHandicap: &avg,
		TotalRounds:     len(scores),
	}, nil
}
