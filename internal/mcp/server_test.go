// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Handlers are called directly against a real SQLite database.
package mcp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/reps/internal/metrics"
	"github.com/harperreed/reps/internal/models"
	"github.com/harperreed/reps/internal/storage"
	"github.com/harperreed/reps/internal/training"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupTestServer creates a server backed by a test database in a temp directory.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "reps.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := training.NewService(db, training.WithMetrics(metrics.NewTestManager()))
	server, err := NewServer(svc, db)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

// seedWorkout creates Running and a Cardio template with one set, then starts it.
func seedWorkout(t *testing.T, s *Server) (templateID, workoutID int64) {
	t.Helper()
	ctx := context.Background()

	_, ex, err := s.handleAddExercise(ctx, nil, addExerciseInput{Name: "Running", MeasuredIn: "duration"})
	if err != nil {
		t.Fatalf("add_exercise failed: %v", err)
	}
	_, tmpl, err := s.handleCreateTemplate(ctx, nil, createTemplateInput{Name: "Cardio"})
	if err != nil {
		t.Fatalf("create_template failed: %v", err)
	}
	_, group, err := s.handleAddTemplateSetGroup(ctx, nil, addTemplateSetGroupInput{TemplateID: tmpl.ID, ExerciseID: ex.ID})
	if err != nil {
		t.Fatalf("add_template_set_group failed: %v", err)
	}
	if _, _, err := s.handleAddTemplateSet(ctx, nil, templateGroupInput{TemplateID: tmpl.ID, SetGroupID: group.ID}); err != nil {
		t.Fatalf("add_template_set failed: %v", err)
	}
	_, w, err := s.handleStartWorkout(ctx, nil, templateIDInput{TemplateID: tmpl.ID})
	if err != nil {
		t.Fatalf("start_workout failed: %v", err)
	}
	return tmpl.ID, w.ID
}

func TestNewServer(t *testing.T) {
	server := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.svc == nil {
		t.Error("Expected non-nil service")
	}
}

func TestHandleAddExercise(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     addExerciseInput
		wantErr   bool
		errSubstr string
	}{
		{name: "valid", input: addExerciseInput{Name: "Squat", MeasuredIn: "reps_and_weight"}},
		{name: "duplicate ignoring case", input: addExerciseInput{Name: "squat", MeasuredIn: "reps"}, wantErr: true, errSubstr: "already exists"},
		{name: "unknown kind", input: addExerciseInput{Name: "Swim", MeasuredIn: "laps"}, wantErr: true, errSubstr: "Measured in"},
		{name: "blank name", input: addExerciseInput{Name: "  ", MeasuredIn: "reps"}, wantErr: true, errSubstr: "Name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := server.handleAddExercise(ctx, nil, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Error %q should contain %q", err.Error(), tt.errSubstr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if out.ID == 0 {
				t.Error("Expected non-zero ID")
			}
		})
	}
}

func TestHandleListExercisesEmpty(t *testing.T) {
	server := setupTestServer(t)

	_, out, err := server.handleListExercises(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatalf("list_exercises failed: %v", err)
	}
	m, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("Expected map output, got %T", out)
	}
	if _, ok := m["message"]; !ok {
		t.Error("Expected a message for an empty catalog")
	}
}

func TestTemplateTools(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	templateID, _ := seedWorkout(t, server)

	_, list, err := server.handleListTemplates(ctx, nil, pageInput{})
	if err != nil {
		t.Fatalf("list_templates failed: %v", err)
	}
	if len(list.Templates) != 1 || list.Templates[0].Name != "Cardio" {
		t.Errorf("list_templates = %+v, want one Cardio template", list.Templates)
	}

	_, got, err := server.handleGetTemplate(ctx, nil, templateIDInput{TemplateID: templateID})
	if err != nil {
		t.Fatalf("get_template failed: %v", err)
	}
	tmpl, ok := got.(*models.Template)
	if !ok {
		t.Fatalf("Expected *models.Template, got %T", got)
	}
	if len(tmpl.SetGroups) != 1 || len(tmpl.SetGroups[0].Sets) != 1 {
		t.Errorf("Unexpected template structure: %+v", tmpl)
	}

	if _, _, err := server.handleRenameTemplate(ctx, nil, renameTemplateInput{TemplateID: templateID, Name: "Long Run"}); err != nil {
		t.Fatalf("rename_template failed: %v", err)
	}

	_, _, err = server.handleDeleteTemplate(ctx, nil, templateIDInput{TemplateID: templateID})
	if err == nil || !strings.Contains(err.Error(), "has workouts") {
		t.Errorf("delete_template error = %v, want has workouts conflict", err)
	}

	_, _, err = server.handleGetTemplate(ctx, nil, templateIDInput{TemplateID: 999})
	if err == nil {
		t.Error("Expected error for missing template")
	}
}

func TestHandleMoveTemplateSetGroupDirection(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	templateID, _ := seedWorkout(t, server)

	_, tmpl, _ := server.handleGetTemplate(ctx, nil, templateIDInput{TemplateID: templateID})
	groupID := tmpl.(*models.Template).SetGroups[0].ID

	if _, _, err := server.handleMoveTemplateSetGroup(ctx, nil, templateGroupInput{TemplateID: templateID, SetGroupID: groupID, Direction: "up"}); err != nil {
		t.Errorf("Moving the only group should be a no-op, got %v", err)
	}
	if _, _, err := server.handleMoveTemplateSetGroup(ctx, nil, templateGroupInput{TemplateID: templateID, SetGroupID: groupID, Direction: "left"}); err == nil {
		t.Error("Expected error for invalid direction")
	}
}

func TestHandleToggleSetComplete(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	_, workoutID := seedWorkout(t, server)

	_, got, err := server.handleGetWorkout(ctx, nil, workoutIDInput{WorkoutID: workoutID})
	if err != nil {
		t.Fatalf("get_workout failed: %v", err)
	}
	setID := got.(*models.Workout).SetGroups[0].Sets[0].ID

	_, _, err = server.handleToggleSetComplete(ctx, nil, setMetricsInput{WorkoutID: workoutID, SetID: setID})
	if err == nil || !strings.Contains(err.Error(), "Duration is required") {
		t.Fatalf("toggle without duration error = %v", err)
	}

	if _, _, err := server.handleToggleSetComplete(ctx, nil, setMetricsInput{WorkoutID: workoutID, SetID: setID, Duration: "1800"}); err != nil {
		t.Fatalf("toggle_set_complete failed: %v", err)
	}

	_, got, _ = server.handleGetWorkout(ctx, nil, workoutIDInput{WorkoutID: workoutID})
	set := got.(*models.Workout).SetGroups[0].Sets[0]
	if set.FinishedAt == nil || set.Duration == nil || *set.Duration != 1800 {
		t.Errorf("Set not completed with duration: %+v", set)
	}

	_, _, err = server.handleUpdateSetMetrics(ctx, nil, setMetricsInput{WorkoutID: workoutID, SetID: setID, Duration: "zero"})
	if err == nil {
		t.Error("Expected validation error for non-numeric duration")
	}
}

func TestWorkoutLifecycle(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	_, workoutID := seedWorkout(t, server)

	_, cur, err := server.handleCurrentWorkout(ctx, nil, struct{}{})
	if err != nil {
		t.Fatalf("current_workout failed: %v", err)
	}
	if w, ok := cur.(*models.Workout); !ok || w.ID != workoutID {
		t.Fatalf("current_workout = %v, want workout %d", cur, workoutID)
	}

	_, list, err := server.handleListWorkouts(ctx, nil, pageInput{})
	if err != nil {
		t.Fatalf("list_workouts failed: %v", err)
	}
	if len(list.Workouts) != 1 || list.Workouts[0].Template != "Cardio" || list.Workouts[0].FinishedAt != "" {
		t.Errorf("list_workouts = %+v", list.Workouts)
	}

	if _, _, err := server.handleToggleWorkoutComplete(ctx, nil, workoutIDInput{WorkoutID: workoutID}); err != nil {
		t.Fatalf("toggle_workout_complete failed: %v", err)
	}
	_, cur, _ = server.handleCurrentWorkout(ctx, nil, struct{}{})
	if _, ok := cur.(map[string]any); !ok {
		t.Errorf("Expected no current workout, got %T", cur)
	}

	_, md, err := server.handleWorkoutMarkdown(ctx, nil, workoutIDInput{WorkoutID: workoutID})
	if err != nil {
		t.Fatalf("workout_markdown failed: %v", err)
	}
	if !strings.Contains(md.Markdown, "# Cardio") || !strings.Contains(md.Markdown, "Running") {
		t.Errorf("Unexpected markdown:\n%s", md.Markdown)
	}

	if _, _, err := server.handleDeleteWorkout(ctx, nil, workoutIDInput{WorkoutID: workoutID}); err != nil {
		t.Fatalf("delete_workout failed: %v", err)
	}
	if _, _, err := server.handleGetWorkout(ctx, nil, workoutIDInput{WorkoutID: workoutID}); err == nil {
		t.Error("Expected error for deleted workout")
	}
	if _, _, err := server.handleToggleWorkoutComplete(ctx, nil, workoutIDInput{WorkoutID: workoutID}); err == nil {
		t.Error("Expected error toggling a deleted workout")
	}
}

func TestWorkoutStructureTools(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	_, workoutID := seedWorkout(t, server)

	_, ex, err := server.handleAddExercise(ctx, nil, addExerciseInput{Name: "Plank", MeasuredIn: "duration"})
	if err != nil {
		t.Fatalf("add_exercise failed: %v", err)
	}
	_, group, err := server.handleAddSetGroup(ctx, nil, addSetGroupInput{WorkoutID: workoutID, ExerciseID: ex.ID})
	if err != nil {
		t.Fatalf("add_set_group failed: %v", err)
	}
	_, set, err := server.handleAddSet(ctx, nil, setGroupInput{WorkoutID: workoutID, SetGroupID: group.ID})
	if err != nil {
		t.Fatalf("add_set failed: %v", err)
	}
	if _, _, err := server.handleMoveSetGroup(ctx, nil, setGroupInput{WorkoutID: workoutID, SetGroupID: group.ID, Direction: "up"}); err != nil {
		t.Fatalf("move_set_group failed: %v", err)
	}

	_, got, _ := server.handleGetWorkout(ctx, nil, workoutIDInput{WorkoutID: workoutID})
	w := got.(*models.Workout)
	if w.SetGroups[0].ID != group.ID {
		t.Errorf("Expected Plank group first after move, got %+v", w.SetGroups[0])
	}

	if _, _, err := server.handleRemoveSet(ctx, nil, setInput{WorkoutID: workoutID, SetGroupID: group.ID, SetID: set.ID}); err != nil {
		t.Fatalf("remove_set failed: %v", err)
	}
	if _, _, err := server.handleRemoveSetGroup(ctx, nil, setGroupInput{WorkoutID: workoutID, SetGroupID: group.ID}); err != nil {
		t.Fatalf("remove_set_group failed: %v", err)
	}
	if _, _, err := server.handleRemoveSetGroup(ctx, nil, setGroupInput{WorkoutID: workoutID, SetGroupID: group.ID}); err == nil {
		t.Error("Expected error removing a missing set-group")
	}
}

func TestCurrentWorkoutResource(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	result, err := server.handleCurrentWorkoutResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("resource failed: %v", err)
	}
	if !strings.Contains(result.Contents[0].Text, "No workout in progress") {
		t.Errorf("Unexpected empty resource: %q", result.Contents[0].Text)
	}

	seedWorkout(t, server)
	result, err = server.handleCurrentWorkoutResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("resource failed: %v", err)
	}
	if result.Contents[0].MIMEType != "text/markdown" {
		t.Errorf("MIMEType = %q, want text/markdown", result.Contents[0].MIMEType)
	}
	if !strings.Contains(result.Contents[0].Text, "Status: in progress") {
		t.Errorf("Expected in-progress workout, got:\n%s", result.Contents[0].Text)
	}
}

func TestCatalogResources(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	seedWorkout(t, server)

	result, err := server.handleTemplatesResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("templates resource failed: %v", err)
	}
	if !strings.Contains(result.Contents[0].Text, `"Cardio"`) {
		t.Errorf("Expected Cardio in templates resource, got %s", result.Contents[0].Text)
	}

	result, err = server.handleExercisesResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("exercises resource failed: %v", err)
	}
	if !strings.Contains(result.Contents[0].Text, `"duration"`) {
		t.Errorf("Expected measured_in in exercises resource, got %s", result.Contents[0].Text)
	}
}
