package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/greenside/greenside/internal/models"
)

// InsertScore persists a completed score to the database.
func (s *SQLiteStore) InsertScore(ctx context.Context, score *models.Score) error {
	// Generate ID if not set
	if score.ID == "" {
		score.ID = uuid.New().String()
	}
	if score.CreatedAt == 0 {
		score.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (id, user_id, course_id, total, date, score_differential, simple_handicap, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		score.ID, score.UserID, score.CourseID, score.Total, score.Date,
		score.ScoreDifferential, score.SimpleHandicap, score.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert score: %w", err)
	}

	return nil
}

// ListScores returns the user's scores joined with course display fields,
// newest date first.
func (s *SQLiteStore) ListScores(ctx context.Context, userID string, limit int) ([]models.ScoreWithCourse, error) {
	query := `
		SELECT s.id, s.user_id, s.course_id, s.total, s.date,
		       s.score_differential, s.simple_handicap, s.created_at,
		       c.name, c.holes, c.par
		FROM scores s
		JOIN courses c ON c.id = s.course_id
		WHERE s.user_id = ?
		ORDER BY s.date DESC, s.created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	defer rows.Close()

	var scores []models.ScoreWithCourse
	for rows.Next() {
		var sc models.ScoreWithCourse
		if err := rows.Scan(&sc.ID, &sc.UserID, &sc.CourseID, &sc.Total, &sc.Date,
			&sc.ScoreDifferential, &sc.SimpleHandicap, &sc.CreatedAt,
			&sc.CourseName, &sc.CourseHoles, &sc.CoursePar); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		scores = append(scores, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scores: %w", err)
	}

	return scores, nil
}
