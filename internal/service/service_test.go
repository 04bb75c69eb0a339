package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/greenside/greenside/internal/models"
	"github.com/greenside/greenside/internal/storage/sqlite"
)

// newTestStore opens a real SQLite store in a temp directory so service
// tests exercise the full persistence path.
func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func createCourse(t *testing.T, svc *CourseService, userID string, course models.Course) *models.Course {
	t.Helper()

	if err := svc.Create(context.Background(), userID, &course); err != nil {
		t.Fatalf("Failed to create course: %v", err)
	}
	return &course
}
