package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/greenside/greenside/internal/models"
	"github.com/greenside/greenside/internal/storage"
)

// UpsertActiveRound writes the full round state. On the first write the
// round has no ID yet: one is assigned here and bound into the model, so
// every later write updates the same row (insert-then-update, never a
// duplicate insert). The scorecard rows are replaced wholesale.
func (s *SQLiteStore) UpsertActiveRound(ctx context.Context, round *models.ActiveRound) error {
	if round.ID == "" {
		round.ID = uuid.New().String()
	}
	if round.CreatedAt == 0 {
		round.CreatedAt = time.Now().Unix()
	}
	round.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO active_rounds (id, user_id, course_id, course_name, course_holes, course_par, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at`,
		round.ID, round.UserID, round.CourseID, round.CourseName,
		round.CourseHoles, round.CoursePar, round.CreatedAt, round.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert active round: %w", err)
	}

	// Replace the scorecard with the latest full entry list.
	_, err = tx.ExecContext(ctx, "DELETE FROM active_round_holes WHERE round_id = ?", round.ID)
	if err != nil {
		return fmt.Errorf("failed to clear scorecard: %w", err)
	}

	for _, h := range round.Holes {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO active_round_holes (round_id, hole, par, strokes) VALUES (?, ?, ?, ?)",
			round.ID, h.Hole, h.Par, h.Strokes,
		)
		if err != nil {
			return fmt.Errorf("failed to insert hole %d: %w", h.Hole, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetActiveRound retrieves a persisted round in full, including its
// scorecard in hole order.
func (s *SQLiteStore) GetActiveRound(ctx context.Context, roundID string) (*models.ActiveRound, error) {
	round := &models.ActiveRound{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, course_id, course_name, course_holes, course_par, created_at, updated_at
		 FROM active_rounds WHERE id = ?`,
		roundID,
	).Scan(&round.ID, &round.UserID, &round.CourseID, &round.CourseName,
		&round.CourseHoles, &round.CoursePar, &round.CreatedAt, &round.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active round: %w", err)
	}

	holes, err := s.getScorecard(ctx, round.ID)
	if err != nil {
		return nil, err
	}
	round.Holes = holes

	return round, nil
}

// ListActiveRounds returns the user's persisted in-progress rounds, most
// recently updated first.
func (s *SQLiteStore) ListActiveRounds(ctx context.Context, userID string) ([]models.ActiveRound, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, course_id, course_name, course_holes, course_par, created_at, updated_at
		 FROM active_rounds WHERE user_id = ? ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active rounds: %w", err)
	}
	defer rows.Close()

	var rounds []models.ActiveRound
	for rows.Next() {
		var round models.ActiveRound
		if err := rows.Scan(&round.ID, &round.UserID, &round.CourseID, &round.CourseName,
			&round.CourseHoles, &round.CoursePar, &round.CreatedAt, &round.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan active round: %w", err)
		}
		rounds = append(rounds, round)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate active rounds: %w", err)
	}

	for i := range rounds {
		holes, err := s.getScorecard(ctx, rounds[i].ID)
		if err != nil {
			return nil, err
		}
		rounds[i].Holes = holes
	}

	return rounds, nil
}

// DeleteActiveRound removes a persisted round and its scorecard.
func (s *SQLiteStore) DeleteActiveRound(ctx context.Context, roundID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM active_rounds WHERE id = ?", roundID)
	if err != nil {
		return fmt.Errorf("failed to delete active round: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// getScorecard loads the ordered hole entries for a round.
func (s *SQLiteStore) getScorecard(ctx context.Context, roundID string) ([]models.HoleScore, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT hole, par, strokes FROM active_round_holes WHERE round_id = ? ORDER BY hole",
		roundID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get scorecard: %w", err)
	}
	defer rows.Close()

	var holes []models.HoleScore
	for rows.Next() {
		var h models.HoleScore
		if err := rows.Scan(&h.Hole, &h.Par, &h.Strokes); err != nil {
			return nil, fmt.Errorf("failed to scan hole: %w", err)
		}
		holes = append(holes, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holes: %w", err)
	}

	return holes, nil
}
