// ABOUTME: Tests for repository CRUD against a real SQLite database.
// ABOUTME: Covers constraints, scoping, cascades and nested fetch ordering.
package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harperreed/reps/internal/models"
)

func TestCreateAndGetExercise(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	e := mustExercise(t, db, "Bench Press", models.MeasuredRepsAndWeight)
	if e.ID == 0 {
		t.Fatal("expected ID to be set")
	}

	got, err := db.GetExercise(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetExercise failed: %v", err)
	}
	if got.Name != "Bench Press" {
		t.Errorf("Name = %q, want %q", got.Name, "Bench Press")
	}
	if got.MeasuredIn != models.MeasuredRepsAndWeight {
		t.Errorf("MeasuredIn = %s, want reps_and_weight", got.MeasuredIn)
	}
}

func TestExerciseNameUniqueIgnoringCase(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	mustExercise(t, db, "Squat", models.MeasuredRepsAndWeight)

	err := db.CreateExercise(ctx, models.NewExercise("sQuAt", models.MeasuredReps))
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	found, err := db.FindExerciseByName(ctx, " SQUAT ")
	if err != nil {
		t.Fatalf("FindExerciseByName failed: %v", err)
	}
	if found.Name != "Squat" {
		t.Errorf("Name = %q, want Squat", found.Name)
	}
}

func TestExerciseMeasuredInCheck(t *testing.T) {
	db := setupTestDB(t)

	err := db.CreateExercise(context.Background(), models.NewExercise("Rowing", models.MeasuredIn("meters")))
	if err == nil {
		t.Fatal("expected check constraint failure")
	}
}

func TestListExercisesSortedByName(t *testing.T) {
	db := setupTestDB(t)

	mustExercise(t, db, "Squat", models.MeasuredRepsAndWeight)
	mustExercise(t, db, "Bench Press", models.MeasuredRepsAndWeight)
	mustExercise(t, db, "Plank", models.MeasuredDuration)

	exercises, err := db.ListExercises(context.Background())
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	want := []string{"Bench Press", "Plank", "Squat"}
	if len(exercises) != len(want) {
		t.Fatalf("got %d exercises, want %d", len(exercises), len(want))
	}
	for i, name := range want {
		if exercises[i].Name != name {
			t.Errorf("exercises[%d] = %q, want %q", i, exercises[i].Name, name)
		}
	}
}

func TestGetNotFound(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.GetExercise(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetExercise err = %v, want ErrNotFound", err)
	}
	if _, err := db.GetTemplate(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetTemplate err = %v, want ErrNotFound", err)
	}
	if _, err := db.GetWorkout(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetWorkout err = %v, want ErrNotFound", err)
	}
	if _, err := db.CurrentWorkout(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("CurrentWorkout err = %v, want ErrNotFound", err)
	}
	if err := db.RenameTemplate(ctx, 42, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RenameTemplate err = %v, want ErrNotFound", err)
	}
}

func TestTemplateNameUnique(t *testing.T) {
	db := setupTestDB(t)

	mustTemplate(t, db, "Push Day")
	err := db.CreateTemplate(context.Background(), &models.Template{Name: "Push Day", CreatedAt: time.Now()})
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
}

func TestListTemplatesPaged(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"C", "A", "B", "D"} {
		mustTemplate(t, db, name)
	}

	page, err := db.ListTemplates(ctx, 1, 2)
	if err != nil {
		t.Fatalf("ListTemplates failed: %v", err)
	}
	if len(page) != 2 || page[0].Name != "B" || page[1].Name != "C" {
		t.Errorf("page = %+v, want [B C]", page)
	}
}

func TestTemplateGroupIndexUniquePerTemplate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	e := mustExercise(t, db, "Squat", models.MeasuredRepsAndWeight)
	a := mustTemplate(t, db, "A")
	b := mustTemplate(t, db, "B")
	mustTemplateGroup(t, db, a.ID, e.ID, 0)
	mustTemplateGroup(t, db, b.ID, e.ID, 0) // same index, other parent

	dup := &models.TemplateSetGroup{TemplateID: a.ID, ExerciseID: e.ID, Index: 0}
	if err := db.InsertTemplateSetGroup(ctx, dup); !IsUniqueViolation(err) {
		t.Errorf("expected unique violation, got %v", err)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tmpl := mustTemplate(t, db, "A")
	g := &models.TemplateSetGroup{TemplateID: tmpl.ID, ExerciseID: 999, Index: 0}
	err := db.InsertTemplateSetGroup(ctx, g)
	if !IsForeignKeyViolation(err) {
		t.Errorf("expected foreign key violation, got %v", err)
	}

	w := &models.Workout{TemplateID: 999, StartedAt: time.Now()}
	if err := db.InsertWorkout(ctx, w); !IsForeignKeyViolation(err) {
		t.Errorf("expected foreign key violation, got %v", err)
	}
}

func TestGetTemplateTreeSorted(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	squat := mustExercise(t, db, "Squat", models.MeasuredRepsAndWeight)
	plank := mustExercise(t, db, "Plank", models.MeasuredDuration)
	tmpl := mustTemplate(t, db, "Legs")

	// Insert out of order on purpose.
	second := mustTemplateGroup(t, db, tmpl.ID, plank.ID, 1)
	first := mustTemplateGroup(t, db, tmpl.ID, squat.ID, 0)
	mustTemplateSet(t, db, first, 2, models.SetWorking)
	mustTemplateSet(t, db, first, 0, models.SetWarmup)
	mustTemplateSet(t, db, first, 1, models.SetWorking)
	mustTemplateSet(t, db, second, 0, models.SetWorking)

	tree, err := db.GetTemplateTree(ctx, tmpl.ID)
	if err != nil {
		t.Fatalf("GetTemplateTree failed: %v", err)
	}
	if len(tree.SetGroups) != 2 {
		t.Fatalf("got %d groups, want 2", len(tree.SetGroups))
	}
	if tree.SetGroups[0].ID != first.ID || tree.SetGroups[1].ID != second.ID {
		t.Error("groups not sorted by index")
	}
	if tree.SetGroups[0].Exercise == nil || tree.SetGroups[0].Exercise.Name != "Squat" {
		t.Error("expected exercise to be loaded")
	}
	sets := tree.SetGroups[0].Sets
	if len(sets) != 3 {
		t.Fatalf("got %d sets, want 3", len(sets))
	}
	for i, s := range sets {
		if s.Index != i {
			t.Errorf("sets[%d].Index = %d", i, s.Index)
		}
	}
	if sets[0].Type != models.SetWarmup {
		t.Errorf("sets[0].Type = %s, want warmup", sets[0].Type)
	}
}

func TestDeleteTemplateCascadesStructure(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	e := mustExercise(t, db, "Squat", models.MeasuredRepsAndWeight)
	tmpl := mustTemplate(t, db, "Legs")
	g := mustTemplateGroup(t, db, tmpl.ID, e.ID, 0)
	mustTemplateSet(t, db, g, 0, models.SetWorking)

	if err := db.DeleteTemplate(ctx, tmpl.ID); err != nil {
		t.Fatalf("DeleteTemplate failed: %v", err)
	}
	sets, err := db.ListTemplateSets(ctx, g.ID)
	if err != nil {
		t.Fatalf("ListTemplateSets failed: %v", err)
	}
	if len(sets) != 0 {
		t.Errorf("expected sets to cascade, got %d", len(sets))
	}
}

func TestDeleteTemplateWithWorkoutRestricted(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tmpl := mustTemplate(t, db, "Legs")
	mustWorkout(t, db, tmpl.ID, time.Now())

	if err := db.DeleteTemplate(ctx, tmpl.ID); err == nil {
		t.Fatal("expected delete to be rejected while a workout references the template")
	}
	n, err := db.CountWorkoutsForTemplate(ctx, tmpl.ID)
	if err != nil {
		t.Fatalf("CountWorkoutsForTemplate failed: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestDeleteWorkoutCascade(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	e := mustExercise(t, db, "Squat", models.MeasuredRepsAndWeight)
	tmpl := mustTemplate(t, db, "Legs")
	w := mustWorkout(t, db, tmpl.ID, time.Now())
	g := mustSetGroup(t, db, w.ID, e.ID, 0)
	s := mustSet(t, db, g, 0)

	if err := db.DeleteWorkout(ctx, w.ID); err != nil {
		t.Fatalf("DeleteWorkout failed: %v", err)
	}
	if _, err := db.GetSet(ctx, w.ID, s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSet err = %v, want ErrNotFound", err)
	}
	if _, err := db.GetTemplate(ctx, tmpl.ID); err != nil {
		t.Errorf("template should survive workout deletion: %v", err)
	}
}

func TestCurrentWorkout(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tmpl := mustTemplate(t, db, "Legs")
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	older := mustWorkout(t, db, tmpl.ID, base)
	newer := mustWorkout(t, db, tmpl.ID, base.Add(time.Hour))

	got, err := db.CurrentWorkout(ctx)
	if err != nil {
		t.Fatalf("CurrentWorkout failed: %v", err)
	}
	if got.ID != newer.ID {
		t.Errorf("current = %d, want %d", got.ID, newer.ID)
	}
	if got.Template == nil || got.Template.Name != "Legs" {
		t.Errorf("expected template summary, got %+v", got.Template)
	}

	finished := base.Add(2 * time.Hour)
	if err := db.SetWorkoutFinishedAt(ctx, newer.ID, &finished); err != nil {
		t.Fatalf("SetWorkoutFinishedAt failed: %v", err)
	}
	got, err = db.CurrentWorkout(ctx)
	if err != nil {
		t.Fatalf("CurrentWorkout failed: %v", err)
	}
	if got.ID != older.ID {
		t.Errorf("current = %d, want %d", got.ID, older.ID)
	}
}

func TestUpdateSetProgress(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	e := mustExercise(t, db, "Bench", models.MeasuredRepsAndWeight)
	tmpl := mustTemplate(t, db, "Push")
	w := mustWorkout(t, db, tmpl.ID, time.Now())
	g := mustSetGroup(t, db, w.ID, e.ID, 0)
	s := mustSet(t, db, g, 0)

	done := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m := models.Metrics{Reps: intp(8), Weight: floatp(82.5)}
	if err := db.UpdateSetProgress(ctx, s.ID, m, &done); err != nil {
		t.Fatalf("UpdateSetProgress failed: %v", err)
	}

	got, err := db.GetSet(ctx, w.ID, s.ID)
	if err != nil {
		t.Fatalf("GetSet failed: %v", err)
	}
	if got.Reps == nil || *got.Reps != 8 {
		t.Errorf("Reps = %v, want 8", got.Reps)
	}
	if got.Weight == nil || *got.Weight != 82.5 {
		t.Errorf("Weight = %v, want 82.5", got.Weight)
	}
	if got.Duration != nil {
		t.Errorf("Duration = %v, want nil", *got.Duration)
	}
	if got.FinishedAt == nil || !got.FinishedAt.Equal(done) {
		t.Errorf("FinishedAt = %v, want %v", got.FinishedAt, done)
	}
}

func TestSetMetricCheckConstraints(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	e := mustExercise(t, db, "Pull-ups", models.MeasuredReps)
	tmpl := mustTemplate(t, db, "Pull")
	w := mustWorkout(t, db, tmpl.ID, time.Now())
	g := mustSetGroup(t, db, w.ID, e.ID, 0)
	s := mustSet(t, db, g, 0)

	if err := db.UpdateSetProgress(ctx, s.ID, models.Metrics{Reps: intp(0)}, nil); err == nil {
		t.Error("expected reps = 0 to be rejected")
	}
}

func TestGetSetScopedToWorkout(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	e := mustExercise(t, db, "Squat", models.MeasuredRepsAndWeight)
	tmpl := mustTemplate(t, db, "Legs")
	w1 := mustWorkout(t, db, tmpl.ID, time.Now())
	w2 := mustWorkout(t, db, tmpl.ID, time.Now())
	s := mustSet(t, db, mustSetGroup(t, db, w1.ID, e.ID, 0), 0)

	if _, err := db.GetSet(ctx, w2.ID, s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSet across workouts err = %v, want ErrNotFound", err)
	}
}

func TestInsertSetsBulk(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	e := mustExercise(t, db, "Squat", models.MeasuredRepsAndWeight)
	tmpl := mustTemplate(t, db, "Legs")
	w := mustWorkout(t, db, tmpl.ID, time.Now())
	g := mustSetGroup(t, db, w.ID, e.ID, 0)

	sets := []models.Set{
		{SetGroupID: g.ID, WorkoutID: w.ID, ExerciseID: e.ID, Index: 0, Type: models.SetWarmup},
		{SetGroupID: g.ID, WorkoutID: w.ID, ExerciseID: e.ID, Index: 1, Type: models.SetWorking},
	}
	if err := db.InsertSets(ctx, sets); err != nil {
		t.Fatalf("InsertSets failed: %v", err)
	}
	if err := db.InsertSets(ctx, nil); err != nil {
		t.Errorf("InsertSets(nil) = %v, want nil", err)
	}

	got, err := db.ListSets(ctx, g.ID)
	if err != nil {
		t.Fatalf("ListSets failed: %v", err)
	}
	if len(got) != 2 || got[0].Type != models.SetWarmup || got[1].Type != models.SetWorking {
		t.Errorf("sets = %+v", got)
	}
}

func TestDBClose(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestDBCloseNilDB(t *testing.T) {
	d := &DB{db: nil}
	if err := d.Close(); err != nil {
		t.Errorf("Close on nil db should not error: %v", err)
	}
}

func TestWithAuthToken(t *testing.T) {
	tests := []struct {
		url, token, want string
	}{
		{"libsql://db.turso.io", "", "libsql://db.turso.io"},
		{"libsql://db.turso.io", "tok", "libsql://db.turso.io?authToken=tok"},
		{"libsql://db.turso.io?authToken=keep", "tok", "libsql://db.turso.io?authToken=keep"},
	}
	for _, tt := range tests {
		got, err := withAuthToken(tt.url, tt.token)
		if err != nil {
			t.Fatalf("withAuthToken(%q) failed: %v", tt.url, err)
		}
		if got != tt.want {
			t.Errorf("withAuthToken(%q, %q) = %q, want %q", tt.url, tt.token, got, tt.want)
		}
	}
}

func TestIsRemoteURL(t *testing.T) {
	tests := []struct {
		target string
		want   bool
	}{
		{"libsql://db.turso.io", true},
		{"https://db.turso.io", true},
		{"/home/me/reps.db", false},
		{"~/backup/reps.db", false},
		{"reps.db", false},
	}
	for _, tt := range tests {
		if got := IsRemoteURL(tt.target); got != tt.want {
			t.Errorf("IsRemoteURL(%q) = %v, want %v", tt.target, got, tt.want)
		}
	}
}
