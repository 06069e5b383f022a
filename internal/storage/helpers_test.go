// ABOUTME: Shared fixtures for storage tests.
// ABOUTME: Opens throwaway databases and inserts small template/workout trees.
package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/reps/internal/models"
)

// setupTestDB creates a test database in a temp directory.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "reps.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func mustExercise(t *testing.T, q Repository, name string, kind models.MeasuredIn) *models.Exercise {
	t.Helper()
	e := models.NewExercise(name, kind)
	if err := q.CreateExercise(context.Background(), e); err != nil {
		t.Fatalf("CreateExercise(%q) failed: %v", name, err)
	}
	return e
}

func mustTemplate(t *testing.T, q Repository, name string) *models.Template {
	t.Helper()
	tmpl := &models.Template{Name: name, CreatedAt: time.Now()}
	if err := q.CreateTemplate(context.Background(), tmpl); err != nil {
		t.Fatalf("CreateTemplate(%q) failed: %v", name, err)
	}
	return tmpl
}

func mustTemplateGroup(t *testing.T, q Repository, templateID, exerciseID int64, index int) *models.TemplateSetGroup {
	t.Helper()
	g := &models.TemplateSetGroup{
		TemplateID:          templateID,
		ExerciseID:          exerciseID,
		Index:               index,
		RestDurationSeconds: models.DefaultRestDurationSeconds,
	}
	if err := q.InsertTemplateSetGroup(context.Background(), g); err != nil {
		t.Fatalf("InsertTemplateSetGroup failed: %v", err)
	}
	return g
}

func mustTemplateSet(t *testing.T, q Repository, g *models.TemplateSetGroup, index int, setType models.SetType) *models.TemplateSet {
	t.Helper()
	s := &models.TemplateSet{
		TemplateSetGroupID: g.ID,
		TemplateID:         g.TemplateID,
		ExerciseID:         g.ExerciseID,
		Index:              index,
		Type:               setType,
	}
	if err := q.InsertTemplateSet(context.Background(), s); err != nil {
		t.Fatalf("InsertTemplateSet failed: %v", err)
	}
	return s
}

func mustWorkout(t *testing.T, q Repository, templateID int64, startedAt time.Time) *models.Workout {
	t.Helper()
	w := &models.Workout{TemplateID: templateID, StartedAt: startedAt}
	if err := q.InsertWorkout(context.Background(), w); err != nil {
		t.Fatalf("InsertWorkout failed: %v", err)
	}
	return w
}

func mustSetGroup(t *testing.T, q Repository, workoutID, exerciseID int64, index int) *models.SetGroup {
	t.Helper()
	g := &models.SetGroup{
		WorkoutID:           workoutID,
		ExerciseID:          exerciseID,
		Index:               index,
		RestDurationSeconds: models.DefaultRestDurationSeconds,
	}
	if err := q.InsertSetGroup(context.Background(), g); err != nil {
		t.Fatalf("InsertSetGroup failed: %v", err)
	}
	return g
}

func mustSet(t *testing.T, q Repository, g *models.SetGroup, index int) *models.Set {
	t.Helper()
	s := &models.Set{
		SetGroupID: g.ID,
		WorkoutID:  g.WorkoutID,
		ExerciseID: g.ExerciseID,
		Index:      index,
		Type:       models.SetWorking,
	}
	if err := q.InsertSet(context.Background(), s); err != nil {
		t.Fatalf("InsertSet failed: %v", err)
	}
	return s
}

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }
