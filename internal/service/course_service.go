// Package service implements the application services behind the HTTP
// handlers: course management, score recording and statistics, live
// round orchestration, and authentication.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/greenside/greenside/internal/models"
	"github.com/greenside/greenside/internal/storage"
)

// ErrInvalidCourse wraps course validation failures so handlers can map
// them to a 400.
var ErrInvalidCourse = errors.New("invalid course")

// CourseService manages the user's courses.
type CourseService struct {
	store storage.Store
}

// NewCourseService creates a new CourseService with the given storage
// backend.
func NewCourseService(store storage.Store) *CourseService {
	return &CourseService{store: store}
}

// validateCourse enforces the invariants handicap calculation relies on:
// holes >= 1, par >= 1, slope rating within the official [55, 155] band
// when present.
func validateCourse(course *models.Course) error {
	if strings.TrimSpace(course.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCourse)
	}
	if course.Holes < 1 {
		return fmt.Errorf("%w: holes must be at least 1", ErrInvalidCourse)
	}
	if course.Par < 1 {
		return fmt.Errorf("%w: par must be at least 1", ErrInvalidCourse)
	}
	if course.CourseRating != nil && *course.CourseRating <= 0 {
		return fmt.Errorf("%w: course rating must be positive", ErrInvalidCourse)
	}
	if course.SlopeRating != nil && (*course.SlopeRating < 55 || *course.SlopeRating > 155) {
		return fmt.Errorf("%w: slope rating must be between 55 and 155", ErrInvalidCourse)
	}
	return nil
}

// Create validates and persists a new course for the user.
//
// A course with only one of the two official ratings is stored as given;
// it simply routes to the simple handicap method at calculation time.
func (s *CourseService) Create(ctx context.Context, userID string, course *models.Course) error {
	course.UserID = userID
	if err := validateCourse(course); err != nil {
		return err
	}
	if err := s.store.CreateCourse(ctx, course); err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// List returns the user's courses ordered by name.
func (s *CourseService) List(ctx context.Context, userID string) ([]models.Course, error) {
	return s.store.ListCourses(ctx, userID)
}

// Get returns one of the user's courses. A course owned by someone else
// reports storage.ErrNotFound, same as a missing one.
func (s *CourseService) Get(ctx context.Context, userID, courseID string) (*models.Course, error) {
	course, err := s.store.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return course, nil
}

// Update validates and saves changes to one of the user's courses.
// Rounds already underway keep the snapshot taken when they started.
func (s *CourseService) Update(ctx context.Context, userID string, course *models.Course) error {
	existing, err := s.Get(ctx, userID, course.ID)
	if err != nil {
		return err
	}
	course.UserID = existing.UserID
	course.CreatedAt = existing.CreatedAt
	if err := validateCourse(course); err != nil {
		return err
	}
	if err := s.store.UpdateCourse(ctx, course); err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	return nil
}

// Delete removes one of the user's courses and its scores.
func (s *CourseService) Delete(ctx context.Context, userID, courseID string) error {
	if _, err := s.Get(ctx, userID, courseID); err != nil {
		return err
	}
	if err := s.store.DeleteCourse(ctx, courseID); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}
