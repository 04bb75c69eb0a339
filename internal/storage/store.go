// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/greenside/greenside/internal/models"
)

// ErrNotFound is returned when a requested record does not exist. Deleting
// an already-deleted record also reports it, so callers can treat the
// condition as a benign "already gone" outcome.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for all persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateCourse persists a new course. The course.ID field will be
	// populated by the store.
	CreateCourse(ctx context.Context, course *models.Course) error

	// GetCourse retrieves a course by ID. Returns ErrNotFound if it does
	// not exist.
	GetCourse(ctx context.Context, courseID string) (*models.Course, error)

	// ListCourses returns all courses owned by the user, ordered by name.
	ListCourses(ctx context.Context, userID string) ([]models.Course, error)

	// UpdateCourse updates an existing course. Returns ErrNotFound if it
	// does not exist.
	UpdateCourse(ctx context.Context, course *models.Course) error

	// DeleteCourse removes a course. Returns ErrNotFound if it does not
	// exist.
	DeleteCourse(ctx context.Context, courseID string) error

	// InsertScore persists a completed score. The score.ID field will be
	// populated by the store.
	InsertScore(ctx context.Context, score *models.Score) error

	// ListScores returns the user's scores joined with course display
	// fields, newest date first. limit <= 0 means no limit.
	ListScores(ctx context.Context, userID string, limit int) ([]models.ScoreWithCourse, error)

	// UpsertActiveRound inserts the round on first write, assigning
	// round.ID, and replaces the stored scorecard on every write after
	// that.
	UpsertActiveRound(ctx context.Context, round *models.ActiveRound) error

	// GetActiveRound retrieves a persisted round in full, including its
	// scorecard. Returns ErrNotFound if it does not exist.
	GetActiveRound(ctx context.Context, roundID string) (*models.ActiveRound, error)

	// ListActiveRounds returns the user's persisted in-progress rounds,
	// most recently updated first.
	ListActiveRounds(ctx context.Context, userID string) ([]models.ActiveRound, error)

	// DeleteActiveRound removes a persisted round. Returns ErrNotFound if
	// it does not exist.
	DeleteActiveRound(ctx context.Context, roundID string) error

	// CreateUser inserts a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns nil, nil when no
	// user has that email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns nil, nil when the user
	// does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
