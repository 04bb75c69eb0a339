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

// CreateCourse persists a new course to the database.
func (s *SQLiteStore) CreateCourse(ctx context.Context, course *models.Course) error {
	// Generate ID if not set
	if course.ID == "" {
		course.ID = uuid.New().String()
	}
	if course.CreatedAt == 0 {
		course.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO courses (id, user_id, name, holes, par, course_rating, slope_rating, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		course.ID, course.UserID, course.Name, course.Holes, course.Par,
		course.CourseRating, course.SlopeRating, course.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert course: %w", err)
	}

	return nil
}

// GetCourse retrieves a course by ID.
func (s *SQLiteStore) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	course := &models.Course{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, holes, par, course_rating, slope_rating, created_at
		 FROM courses WHERE id = ?`,
		courseID,
	).Scan(&course.ID, &course.UserID, &course.Name, &course.Holes, &course.Par,
		&course.CourseRating, &course.SlopeRating, &course.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return course, nil
}

// ListCourses returns all courses owned by the user, ordered by name.
func (s *SQLiteStore) ListCourses(ctx context.Context, userID string) ([]models.Course, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name, holes, par, course_rating, slope_rating, created_at
		 FROM courses WHERE user_id = ? ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.UserID, &course.Name, &course.Holes,
			&course.Par, &course.CourseRating, &course.SlopeRating, &course.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}

	return courses, nil
}

// UpdateCourse updates an existing course.
func (s *SQLiteStore) UpdateCourse(ctx context.Context, course *models.Course) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE courses SET name = ?, holes = ?, par = ?, course_rating = ?, slope_rating = ?
		 WHERE id = ?`,
		course.Name, course.Holes, course.Par, course.CourseRating, course.SlopeRating,
		course.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// DeleteCourse removes a course and, via cascade, its scores.
func (s *SQLiteStore) DeleteCourse(ctx context.Context, courseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM courses WHERE id = ?", courseID)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
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
